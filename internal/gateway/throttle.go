package gateway

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle est la barrière process-wide devant le provider: au plus un
// appel en vol, et un intervalle minimum entre deux appels. Un refus n'est
// jamais une erreur dure; le caller retombe sur le cache.
type Throttle struct {
	mu       sync.Mutex
	inFlight bool
	limiter  *rate.Limiter
	clock    Clock
}

func NewThrottle(minInterval time.Duration, clock Clock) *Throttle {
	if clock == nil {
		clock = SystemClock()
	}

	return &Throttle{
		// burst 1: le premier appel passe, le suivant attend minInterval
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
		clock:   clock,
	}
}

// TryAcquire tente de réserver un appel provider. Le check inFlight et la
// consommation du token forment une seule section critique: aucun caller
// ne peut observer un état à moitié mis à jour.
func (t *Throttle) TryAcquire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inFlight {
		return false
	}

	if !t.limiter.AllowN(t.clock.Now(), 1) {
		return false
	}

	t.inFlight = true
	return true
}

// Release libère le verrou d'appel. À appeler sur chaque chemin de sortie
// d'un appel provider, succès comme échec.
func (t *Throttle) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight = false
}
