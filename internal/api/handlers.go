package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/POWERVHD/Viducate-backend/internal/gateway"
	"github.com/POWERVHD/Viducate-backend/internal/media"
	"github.com/POWERVHD/Viducate-backend/internal/provider"
	"github.com/POWERVHD/Viducate-backend/pkg/models"
)

// Taille maximale d'une image d'avatar uploadée (8 Mo)
const maxCustomAvatarSize = 8 << 20

type Handlers struct {
	gateway gateway.Service
	media   *media.Service
}

func NewHandlers(gatewayService gateway.Service, mediaService *media.Service) *Handlers {
	return &Handlers{
		gateway: gatewayService,
		media:   mediaService,
	}
}

// Health check
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "viducate-backend",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Generate soumet une génération de vidéo au provider
// @Summary Lance une génération de vidéo
// @Description Soumet un texte au provider D-ID, avec un avatar prédéfini ou une image uploadée
// @Tags video
// @Accept mpfd
// @Produce json
// @Param text formData string true "Texte à narrer"
// @Param language formData string false "Code langue (en, es, hi, fr)"
// @Param avatar formData string false "Identifiant de presenter, ou 'default'"
// @Param custom_avatar formData file false "Image source pour un avatar personnalisé"
// @Success 202 {object} models.GenerationResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /video/generate [post]
func (h *Handlers) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	image, err := h.readCustomAvatar(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid custom avatar", "details": err.Error()})
		return
	}

	log.Printf("Submitting generation: language=%s avatar=%s custom_image=%t", req.Language, req.Avatar, image != nil)

	record, err := h.gateway.Submit(c.Request.Context(), &req, image)
	if err != nil {
		h.respondError(c, err)
		return
	}

	log.Printf("Talk submitted successfully: %s", record.ID)
	c.JSON(http.StatusAccepted, &models.GenerationResponse{
		ID:      record.ID,
		Status:  string(record.State),
		Message: "Video generation started",
	})
}

// readCustomAvatar lit l'image multipart optionnelle custom_avatar
func (h *Handlers) readCustomAvatar(c *gin.Context) ([]byte, error) {
	file, err := c.FormFile("custom_avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	if file.Size > maxCustomAvatarSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxCustomAvatarSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

// Status retourne l'état courant d'un job
// @Summary État d'une génération
// @Description Sert l'état depuis le cache; n'appelle le provider que si le cache est périmé et le throttle ouvert
// @Tags video
// @Produce json
// @Param id path string true "Identifiant du talk"
// @Success 200 {object} models.StatusResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /video/status/{id} [get]
func (h *Handlers) Status(c *gin.Context) {
	id := c.Param("id")

	record, err := h.gateway.Status(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record.ToStatusResponse())
}

// Avatars liste les presenters disponibles
// @Summary Liste les avatars prédéfinis
// @Tags video
// @Produce json
// @Success 200 {object} map[string][]models.Avatar
// @Failure 429 {object} map[string]interface{}
// @Router /video/avatars [get]
func (h *Handlers) Avatars(c *gin.Context) {
	avatars, err := h.gateway.Avatars(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatars": avatars})
}

// Stream sert la vidéo générée en inline
// @Summary Streame la vidéo générée
// @Tags video
// @Produce octet-stream
// @Param id path string true "Identifiant du talk"
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /video/stream/{id} [get]
func (h *Handlers) Stream(c *gin.Context) {
	h.serveVideo(c, false)
}

// Download sert la vidéo générée en pièce jointe
// @Summary Télécharge la vidéo générée
// @Tags video
// @Produce octet-stream
// @Param id path string true "Identifiant du talk"
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /video/download/{id} [get]
func (h *Handlers) Download(c *gin.Context) {
	h.serveVideo(c, true)
}

func (h *Handlers) serveVideo(c *gin.Context, attachment bool) {
	id := c.Param("id")

	reader, contentType, err := h.media.Open(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer reader.Close()

	var extraHeaders map[string]string
	if attachment {
		extraHeaders = map[string]string{
			"Content-Disposition": fmt.Sprintf(`attachment; filename="%s.mp4"`, id),
		}
	}

	c.DataFromReader(http.StatusOK, -1, contentType, reader, extraHeaders)
}

// respondError traduit les erreurs du gateway en réponses HTTP
func (h *Handlers) respondError(c *gin.Context, err error) {
	var provErr *provider.Error

	switch {
	case errors.Is(err, gateway.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "Provider call budget exhausted, retry later",
			"retry_after": "15 seconds",
		})
	case errors.Is(err, gateway.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
	case errors.Is(err, media.ErrNotReady):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video is not ready yet"})
	case errors.As(err, &provErr):
		// Statut et corps du provider propagés tels quels
		log.Printf("Provider error %d: %s", provErr.StatusCode, provErr.Body)
		c.JSON(provErr.StatusCode, gin.H{
			"error":   "Provider request failed",
			"details": provErr.Body,
		})
	default:
		log.Printf("Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
