package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m, handler, err := NewMetrics(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.NotNil(t, handler)
}

func TestRecordMethods(t *testing.T) {
	m, _, err := NewMetrics(context.Background())
	require.NoError(t, err)

	ctx := context.Background()

	// Aucun enregistrement ne doit paniquer
	m.RecordProviderCall(ctx, "create_talk", true)
	m.RecordProviderCall(ctx, "get_talk", false)
	m.RecordThrottleDenied(ctx, "status")
	m.RecordCacheHit(ctx, "terminal")
	m.RecordJobSubmitted(ctx)
	m.RecordJobFinished(ctx, true)
	m.RecordJobFinished(ctx, false)
	m.RecordHTTPRequest(ctx, "GET", "/api/v1/video/status/:id", 200, 0.01)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	// Le gateway accepte un Metrics nil (tests unitaires)
	m.RecordProviderCall(ctx, "create_talk", true)
	m.RecordThrottleDenied(ctx, "submit")
	m.RecordCacheHit(ctx, "fresh")
	m.RecordJobSubmitted(ctx)
	m.RecordJobFinished(ctx, false)
	m.RecordHTTPRequest(ctx, "GET", "/health", 200, 0.001)
}
