package models

import (
	"time"
)

type JobState string

const (
	StatePending    JobState = "pending"
	StateProcessing JobState = "processing"
	StateCompleted  JobState = "completed"
	StateFailed     JobState = "failed"
)

// JobRecord est l'entrée de cache pour un talk soumis au provider.
// ID est l'identifiant opaque retourné par D-ID à la soumission.
type JobRecord struct {
	ID        string   `json:"id"`
	State     JobState `json:"state"`
	ResultURL string   `json:"result_url,omitempty"`

	// LastCheckedAt: dernière lecture/rafraîchissement du cache.
	// LastProviderCheckAt: dernier appel réel au provider pour ce job.
	// Invariant: LastProviderCheckAt <= LastCheckedAt.
	LastCheckedAt       time.Time `json:"last_checked_at"`
	LastProviderCheckAt time.Time `json:"last_provider_check_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTerminal retourne true si le job est dans un état final
func (j *JobRecord) IsTerminal() bool {
	return j.State == StateCompleted || j.State == StateFailed
}

// GenerationRequest représente une demande de génération de vidéo
// @Description Requête pour lancer une narration vidéo
type GenerationRequest struct {
	Text     string `form:"text" binding:"required"`
	Language string `form:"language"`
	Avatar   string `form:"avatar"`
} // @name GenerationRequest

// GenerationResponse est renvoyée après soumission au provider
// @Description Identifiant du job créé
type GenerationResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
} // @name GenerationResponse

// StatusResponse représente l'état externe d'un job
// @Description État courant d'une génération vidéo
type StatusResponse struct {
	ID       string   `json:"id"`
	Status   JobState `json:"status"`
	VideoURL string   `json:"video_url,omitempty"`
	Message  string   `json:"message,omitempty"`
} // @name StatusResponse

// Avatar est un presenter D-ID formaté pour le frontend
type Avatar struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
} // @name Avatar

// ToStatusResponse convertit un JobRecord en StatusResponse
func (j *JobRecord) ToStatusResponse() *StatusResponse {
	resp := &StatusResponse{
		ID:     j.ID,
		Status: j.State,
	}

	switch j.State {
	case StateCompleted:
		resp.VideoURL = j.ResultURL
	case StateFailed:
		resp.Message = "Video generation failed"
	default:
		resp.Message = "Video is still processing"
	}

	return resp
}
