package gateway

import "time"

// Clock est injectée partout où le gateway lit l'heure, pour que les tests
// avancent le temps sans dormir
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock retourne l'horloge murale
func SystemClock() Clock {
	return systemClock{}
}
