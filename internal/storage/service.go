package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/POWERVHD/Viducate-backend/pkg/storage"
)

// VideoStore archive les vidéos terminées sous videos/{talk_id}.mp4.
// Les result_url du provider expirent; une vidéo archivée reste servable
// après expiration.
type VideoStore struct {
	storage storage.Storage
}

func NewVideoStore(storage storage.Storage) *VideoStore {
	return &VideoStore{
		storage: storage,
	}
}

func videoPath(talkID string) string {
	return fmt.Sprintf("videos/%s.mp4", talkID)
}

// Save archive les octets d'une vidéo terminée
func (s *VideoStore) Save(ctx context.Context, talkID string, content io.Reader) error {
	if err := s.storage.Upload(ctx, videoPath(talkID), content); err != nil {
		return fmt.Errorf("failed to archive video for talk %s: %w", talkID, err)
	}
	return nil
}

// Open retourne un reader sur une vidéo archivée
func (s *VideoStore) Open(ctx context.Context, talkID string) (io.ReadCloser, error) {
	reader, err := s.storage.Download(ctx, videoPath(talkID))
	if err != nil {
		return nil, fmt.Errorf("failed to open archived video for talk %s: %w", talkID, err)
	}
	return reader, nil
}

// Has vérifie si une vidéo est déjà archivée
func (s *VideoStore) Has(ctx context.Context, talkID string) (bool, error) {
	return s.storage.Exists(ctx, videoPath(talkID))
}

// URL retourne l'URL d'accès à une vidéo archivée (présignée pour garage)
func (s *VideoStore) URL(ctx context.Context, talkID string) (string, error) {
	return s.storage.GetURL(ctx, videoPath(talkID))
}

// Delete supprime une vidéo archivée
func (s *VideoStore) Delete(ctx context.Context, talkID string) error {
	return s.storage.Delete(ctx, videoPath(talkID))
}

// List retourne les identifiants de talks archivés
func (s *VideoStore) List(ctx context.Context) ([]string, error) {
	files, err := s.storage.List(ctx, "videos/")
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, file := range files {
		name := strings.TrimPrefix(file, "videos/")
		if strings.HasSuffix(name, ".mp4") && name != ".mp4" {
			ids = append(ids, strings.TrimSuffix(name, ".mp4"))
		}
	}

	return ids, nil
}
