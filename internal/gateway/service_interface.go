package gateway

import (
	"context"

	"github.com/POWERVHD/Viducate-backend/internal/provider"
	"github.com/POWERVHD/Viducate-backend/pkg/models"
)

// Service est la façade du gateway pour la couche API
type Service interface {
	// Submit crée un talk chez le provider et seed le cache.
	// image est la photo de référence optionnelle (avatar custom).
	Submit(ctx context.Context, req *models.GenerationRequest, image []byte) (*models.JobRecord, error)

	// Status résout l'état d'un job via les trois paliers de fraîcheur
	Status(ctx context.Context, id string) (*models.JobRecord, error)

	// Avatars retourne les presenters disponibles (cache long)
	Avatars(ctx context.Context) ([]models.Avatar, error)
}

// ProviderClient est le contrat minimal attendu du client D-ID
type ProviderClient interface {
	CreateTalk(ctx context.Context, req *provider.TalkRequest) (*provider.TalkResponse, error)
	GetTalk(ctx context.Context, id string) (*provider.TalkResponse, error)
	ListPresenters(ctx context.Context) ([]provider.Presenter, error)
}
