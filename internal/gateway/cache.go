package gateway

import (
	"sync"
	"time"

	"github.com/POWERVHD/Viducate-backend/pkg/models"
)

// JobCache associe un talk id à son dernier état connu. Pur stockage:
// la politique de fraîcheur vit dans le Service. Pas d'éviction; le
// nombre de jobs est borné par le trafic et la durée de vie du process.
type JobCache struct {
	mu   sync.RWMutex
	jobs map[string]models.JobRecord
}

func NewJobCache() *JobCache {
	return &JobCache{
		jobs: make(map[string]models.JobRecord),
	}
}

// Get retourne une copie du record; un lecteur ne voit jamais un record
// à moitié écrit
func (c *JobCache) Get(id string) (models.JobRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.jobs[id]
	return record, ok
}

// Put stocke le record par valeur
func (c *JobCache) Put(record models.JobRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jobs[record.ID] = record
}

// Len retourne le nombre de jobs en cache
func (c *JobCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.jobs)
}

// PresenterCache est l'entrée à clé fixe pour la liste des avatars.
// Volontairement un type séparé du JobCache: une seule entrée, une
// fenêtre de fraîcheur longue, et un format déjà traduit pour le frontend.
type PresenterCache struct {
	mu        sync.RWMutex
	avatars   []models.Avatar
	fetchedAt time.Time
	populated bool
}

func NewPresenterCache() *PresenterCache {
	return &PresenterCache{}
}

// Get retourne la liste en cache et sa date de récupération
func (c *PresenterCache) Get() ([]models.Avatar, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.populated {
		return nil, time.Time{}, false
	}

	avatars := make([]models.Avatar, len(c.avatars))
	copy(avatars, c.avatars)
	return avatars, c.fetchedAt, true
}

// Put remplace la liste en cache
func (c *PresenterCache) Put(avatars []models.Avatar, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.avatars = make([]models.Avatar, len(avatars))
	copy(c.avatars, avatars)
	c.fetchedAt = fetchedAt
	c.populated = true
}
