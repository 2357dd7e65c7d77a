package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/POWERVHD/Viducate-backend/pkg/models"
)

func TestJobCacheGetPut(t *testing.T) {
	cache := NewJobCache()

	_, ok := cache.Get("tlk_1")
	assert.False(t, ok)

	record := models.JobRecord{ID: "tlk_1", State: models.StatePending}
	cache.Put(record)

	got, ok := cache.Get("tlk_1")
	assert.True(t, ok)
	assert.Equal(t, models.StatePending, got.State)
	assert.Equal(t, 1, cache.Len())
}

func TestJobCacheCopySemantics(t *testing.T) {
	cache := NewJobCache()
	cache.Put(models.JobRecord{ID: "tlk_1", State: models.StateProcessing})

	got, _ := cache.Get("tlk_1")
	got.State = models.StateFailed

	// La mutation de la copie ne touche pas le cache
	again, _ := cache.Get("tlk_1")
	assert.Equal(t, models.StateProcessing, again.State)
}

func TestJobCacheOverwrite(t *testing.T) {
	cache := NewJobCache()

	cache.Put(models.JobRecord{ID: "tlk_1", State: models.StatePending})
	cache.Put(models.JobRecord{ID: "tlk_1", State: models.StateCompleted, ResultURL: "https://x/v.mp4"})

	got, _ := cache.Get("tlk_1")
	assert.Equal(t, models.StateCompleted, got.State)
	assert.Equal(t, "https://x/v.mp4", got.ResultURL)
	assert.Equal(t, 1, cache.Len())
}

func TestPresenterCacheEmpty(t *testing.T) {
	cache := NewPresenterCache()

	_, _, ok := cache.Get()
	assert.False(t, ok)
}

func TestPresenterCachePutGet(t *testing.T) {
	cache := NewPresenterCache()
	fetchedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	cache.Put([]models.Avatar{{ID: "rian", Name: "Rian"}}, fetchedAt)

	avatars, at, ok := cache.Get()
	assert.True(t, ok)
	assert.Equal(t, fetchedAt, at)
	assert.Len(t, avatars, 1)
	assert.Equal(t, "rian", avatars[0].ID)
}

func TestPresenterCacheCopySemantics(t *testing.T) {
	cache := NewPresenterCache()
	cache.Put([]models.Avatar{{ID: "rian", Name: "Rian"}}, time.Now())

	avatars, _, _ := cache.Get()
	avatars[0].ID = "mutated"

	again, _, _ := cache.Get()
	assert.Equal(t, "rian", again[0].ID)
}

func TestPresenterCacheEmptyListIsPopulated(t *testing.T) {
	cache := NewPresenterCache()
	cache.Put([]models.Avatar{}, time.Now())

	avatars, _, ok := cache.Get()
	assert.True(t, ok)
	assert.Empty(t, avatars)
}
