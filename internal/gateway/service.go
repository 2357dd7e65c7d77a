package gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/POWERVHD/Viducate-backend/internal/observability"
	"github.com/POWERVHD/Viducate-backend/internal/provider"
	"github.com/POWERVHD/Viducate-backend/pkg/models"
)

const (
	defaultPresenterID = "rian"
	talkDriverID       = "uM00QMwJ9x"
)

// Table fixe langue → voix Microsoft; les langues inconnues retombent
// sur l'anglais
var voiceByLanguage = map[string]string{
	"en": "en-US-JennyNeural",
	"es": "es-ES-ElviraNeural",
	"hi": "hi-IN-SwaraNeural",
	"fr": "fr-FR-DeniseNeural",
}

// Options porte les fenêtres de throttling/fraîcheur. Valeurs empiriques;
// ce sont des paramètres de politique, pas des invariants.
type Options struct {
	MinCallInterval time.Duration
	StatusCacheTTL  time.Duration
	ProviderRecheck time.Duration
	PresentersTTL   time.Duration
}

func (o Options) withDefaults() Options {
	if o.MinCallInterval <= 0 {
		o.MinCallInterval = 15 * time.Second
	}
	if o.StatusCacheTTL <= 0 {
		o.StatusCacheTTL = 30 * time.Second
	}
	if o.ProviderRecheck <= 0 {
		o.ProviderRecheck = 60 * time.Second
	}
	if o.PresentersTTL <= 0 {
		o.PresentersTTL = time.Hour
	}
	return o
}

type serviceImpl struct {
	provider   ProviderClient
	jobs       *JobCache
	presenters *PresenterCache
	throttle   *Throttle
	clock      Clock
	opts       Options
	metrics    *observability.Metrics
	tracer     trace.Tracer
}

// NewService construit le gateway: cache de statuts, throttle et cycle de
// vie des jobs. Toute mutation de JobRecord passe par ici.
func NewService(client ProviderClient, opts Options, clock Clock, metrics *observability.Metrics) Service {
	if clock == nil {
		clock = SystemClock()
	}
	opts = opts.withDefaults()

	return &serviceImpl{
		provider:   client,
		jobs:       NewJobCache(),
		presenters: NewPresenterCache(),
		throttle:   NewThrottle(opts.MinCallInterval, clock),
		clock:      clock,
		opts:       opts,
		metrics:    metrics,
		tracer:     otel.Tracer("viducate/gateway"),
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req *models.GenerationRequest, image []byte) (*models.JobRecord, error) {
	ctx, span := s.tracer.Start(ctx, "Gateway.Submit")
	defer span.End()

	payload := s.buildTalkRequest(req, image)

	// Pas de dégradation possible à la soumission: sans appel provider
	// il n'y a rien à retourner
	if !s.throttle.TryAcquire() {
		s.metrics.RecordThrottleDenied(ctx, "submit")
		log.Printf("Gateway.Submit: throttle denied provider call")
		return nil, ErrRateLimited
	}

	talk, err := s.provider.CreateTalk(ctx, payload)
	s.throttle.Release()
	s.metrics.RecordProviderCall(ctx, "create_talk", err == nil)

	if err != nil {
		span.RecordError(err)
		log.Printf("Gateway.Submit: provider rejected submission: %v", err)
		return nil, err
	}

	now := s.clock.Now()
	record := models.JobRecord{
		ID:                  talk.ID,
		State:               models.StatePending,
		LastCheckedAt:       now,
		LastProviderCheckAt: now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	s.jobs.Put(record)
	s.metrics.RecordJobSubmitted(ctx)

	log.Printf("Gateway.Submit: talk %s created, state=%s", record.ID, record.State)
	return &record, nil
}

func (s *serviceImpl) buildTalkRequest(req *models.GenerationRequest, image []byte) *provider.TalkRequest {
	voice, ok := voiceByLanguage[req.Language]
	if !ok {
		voice = voiceByLanguage["en"]
	}

	payload := &provider.TalkRequest{
		Script: provider.Script{
			Type:  "text",
			Input: req.Text,
			Provider: provider.ScriptProvider{
				Type:    "microsoft",
				VoiceID: voice,
			},
		},
		DriverID: talkDriverID,
	}

	if len(image) > 0 {
		// Image de référence fournie: elle remplace tout presenter
		payload.SourceImage = base64.StdEncoding.EncodeToString(image)
		return payload
	}

	presenter := req.Avatar
	if presenter == "" || presenter == "default" {
		presenter = defaultPresenterID
	}
	payload.PresenterID = presenter

	return payload
}

// Status applique les trois paliers de fraîcheur dans l'ordre avant de
// tenter un appel provider
func (s *serviceImpl) Status(ctx context.Context, id string) (*models.JobRecord, error) {
	ctx, span := s.tracer.Start(ctx, "Gateway.Status")
	defer span.End()

	now := s.clock.Now()
	record, cached := s.jobs.Get(id)

	if cached {
		// Palier 1: état terminal, le provider n'est plus jamais consulté
		if record.IsTerminal() {
			s.metrics.RecordCacheHit(ctx, "terminal")
			return &record, nil
		}

		// Palier 2: fenêtre courte, réponse cache sans rien toucher
		if now.Sub(record.LastCheckedAt) < s.opts.StatusCacheTTL {
			s.metrics.RecordCacheHit(ctx, "fresh")
			return &record, nil
		}

		// Palier 3: un appel provider a eu lieu trop récemment pour
		// être répété; on rafraîchit seulement la date de lecture
		if now.Sub(record.LastProviderCheckAt) < s.opts.ProviderRecheck {
			record.LastCheckedAt = now
			record.UpdatedAt = now
			s.jobs.Put(record)
			s.metrics.RecordCacheHit(ctx, "recheck_window")
			return &record, nil
		}
	}

	return s.liveCheck(ctx, id, record, cached)
}

func (s *serviceImpl) liveCheck(ctx context.Context, id string, record models.JobRecord, cached bool) (*models.JobRecord, error) {
	if !s.throttle.TryAcquire() {
		s.metrics.RecordThrottleDenied(ctx, "status")

		// Dégradation gracieuse: l'état périmé d'un job connu vaut
		// mieux qu'une erreur de throttling
		if cached {
			s.metrics.RecordCacheHit(ctx, "stale_fallback")
			log.Printf("Gateway.Status: throttled, serving cached state for %s", id)
			return &record, nil
		}
		return nil, ErrRateLimited
	}

	talk, err := s.provider.GetTalk(ctx, id)
	s.throttle.Release()
	s.metrics.RecordProviderCall(ctx, "get_talk", err == nil)

	if err != nil {
		// Record inchangé: un prochain poll pourra retenter
		var provErr *provider.Error
		if !cached && errors.As(err, &provErr) && provErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
		}
		log.Printf("Gateway.Status: provider check failed for %s: %v", id, err)
		return nil, err
	}

	now := s.clock.Now()
	if !cached {
		record = models.JobRecord{ID: id, CreatedAt: now}
	}

	switch talk.Status {
	case provider.TalkStatusDone:
		record.State = models.StateCompleted
		record.ResultURL = talk.ResultURL
		s.metrics.RecordJobFinished(ctx, true)
	case provider.TalkStatusError, provider.TalkStatusRejected:
		record.State = models.StateFailed
		record.ResultURL = ""
		s.metrics.RecordJobFinished(ctx, false)
	default:
		record.State = models.StateProcessing
	}

	record.LastCheckedAt = now
	record.LastProviderCheckAt = now
	record.UpdatedAt = now
	s.jobs.Put(record)

	log.Printf("Gateway.Status: talk %s refreshed from provider, state=%s", id, record.State)
	return &record, nil
}

// Avatars suit le même schéma de cache que les statuts, avec une clé
// unique et une fenêtre longue
func (s *serviceImpl) Avatars(ctx context.Context) ([]models.Avatar, error) {
	ctx, span := s.tracer.Start(ctx, "Gateway.Avatars")
	defer span.End()

	now := s.clock.Now()
	avatars, fetchedAt, cached := s.presenters.Get()

	if cached && now.Sub(fetchedAt) < s.opts.PresentersTTL {
		s.metrics.RecordCacheHit(ctx, "presenters")
		return avatars, nil
	}

	if !s.throttle.TryAcquire() {
		s.metrics.RecordThrottleDenied(ctx, "presenters")

		// Même très périmée, une liste connue reste servable
		if cached {
			s.metrics.RecordCacheHit(ctx, "presenters_stale")
			return avatars, nil
		}
		return nil, ErrRateLimited
	}

	presenters, err := s.provider.ListPresenters(ctx)
	s.throttle.Release()
	s.metrics.RecordProviderCall(ctx, "list_presenters", err == nil)

	if err != nil {
		span.RecordError(err)
		log.Printf("Gateway.Avatars: provider call failed: %v", err)
		return nil, err
	}

	fresh := make([]models.Avatar, 0, len(presenters))
	for _, p := range presenters {
		name := p.Name
		if name == "" {
			name = p.PresenterID
		}
		fresh = append(fresh, models.Avatar{
			ID:        p.PresenterID,
			Name:      name,
			Thumbnail: p.ThumbnailURL,
		})
	}

	s.presenters.Put(fresh, s.clock.Now())
	log.Printf("Gateway.Avatars: refreshed %d presenters from provider", len(fresh))
	return fresh, nil
}
