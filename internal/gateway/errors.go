package gateway

import "errors"

var (
	// ErrRateLimited: le throttle a refusé l'appel provider. Toujours
	// récupérable; le caller réessaie plus tard ou accepte le cache.
	ErrRateLimited = errors.New("provider call rate limited")

	// ErrJobNotFound: identifiant inconnu, sans entrée de cache
	ErrJobNotFound = errors.New("job not found")
)
