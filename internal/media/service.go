package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/POWERVHD/Viducate-backend/internal/gateway"
	"github.com/POWERVHD/Viducate-backend/internal/storage"
	"github.com/POWERVHD/Viducate-backend/pkg/models"
)

// ErrNotReady est retourné quand la vidéo demandée n'est pas encore en
// état terminal completed
var ErrNotReady = errors.New("video is not ready")

// ResultFetcher ouvre un flux sur l'URL de résultat du provider
type ResultFetcher interface {
	FetchResult(ctx context.Context, resultURL string) (io.ReadCloser, string, error)
}

// Service sert les vidéos générées. Quand l'archivage est activé, la
// vidéo est copiée dans le store au premier accès puis servie depuis
// celui-ci: les result_url du provider expirent, pas l'archive.
type Service struct {
	gateway gateway.Service
	fetcher ResultFetcher
	store   *storage.VideoStore
}

func NewService(gw gateway.Service, fetcher ResultFetcher, store *storage.VideoStore) *Service {
	return &Service{
		gateway: gw,
		fetcher: fetcher,
		store:   store,
	}
}

// Open retourne un flux sur la vidéo du job donné et son content type.
// Le caller doit fermer le reader.
func (s *Service) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	record, err := s.gateway.Status(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if record.State != models.StateCompleted {
		return nil, "", fmt.Errorf("%w: job %s is %s", ErrNotReady, id, record.State)
	}

	if s.store == nil {
		return s.fetcher.FetchResult(ctx, record.ResultURL)
	}

	archived, err := s.store.Has(ctx, id)
	if err != nil {
		log.Printf("⚠️ Archive lookup failed for talk %s: %v", id, err)
		archived = false
	}

	if !archived {
		if err := s.archive(ctx, id, record.ResultURL); err != nil {
			// L'archivage est un confort: en cas d'échec on sert le
			// flux provider directement
			log.Printf("⚠️ Failed to archive video for talk %s: %v", id, err)
			return s.fetcher.FetchResult(ctx, record.ResultURL)
		}
	}

	reader, err := s.store.Open(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return reader, "video/mp4", nil
}

// archive copie intégralement la vidéo du provider dans le store
func (s *Service) archive(ctx context.Context, id, resultURL string) error {
	body, _, err := s.fetcher.FetchResult(ctx, resultURL)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := s.store.Save(ctx, id, body); err != nil {
		return err
	}

	log.Printf("📦 Archived video for talk %s", id)
	return nil
}

// Archived indique si la vidéo du job est déjà dans le store
func (s *Service) Archived(ctx context.Context, id string) (bool, error) {
	if s.store == nil {
		return false, nil
	}
	return s.store.Has(ctx, id)
}

// Purge supprime une vidéo archivée
func (s *Service) Purge(ctx context.Context, id string) error {
	if s.store == nil {
		return nil
	}
	return s.store.Delete(ctx, id)
}
