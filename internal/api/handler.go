package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/ad-copy-agent/internal/generator"
	"github.com/BerylCAtieno/ad-copy-agent/internal/middleware"
	"github.com/BerylCAtieno/ad-copy-agent/internal/models"
)

const (
	errGenerateFailed = "Failed to generate ad content"
	errInvalidRequest = "Please describe a product or service to generate ad copy"
)

// AdGenerator produces ad copy for a request.
type AdGenerator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*generator.Result, error)
}

// GenerateResponse is the success body of POST /api/generate-ad.
type GenerateResponse struct {
	AdContent models.AdContent `json:"adContent"`
}

// ErrorResponse is the failure body. It still carries displayable copy.
type ErrorResponse struct {
	Error     string           `json:"error"`
	AdContent models.AdContent `json:"adContent"`
}

// OptionsResponse lists the selectable tones and audiences.
type OptionsResponse struct {
	Tones           []models.Option   `json:"tones"`
	Audiences       []models.Option   `json:"audiences"`
	DefaultTone     string            `json:"defaultTone"`
	DefaultAudience string            `json:"defaultAudience"`
	Feels           map[string]string `json:"feels"`
}

// Handler serves the ad generation endpoints.
type Handler struct {
	generator AdGenerator
	logger    *zap.Logger
}

func NewHandler(gen AdGenerator, logger *zap.Logger) *Handler {
	return &Handler{
		generator: gen,
		logger:    logger,
	}
}

// GenerateAd handles POST /api/generate-ad.
func (h *Handler) GenerateAd(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.UserInput) == "" {
		h.logger.Info("rejecting generation request",
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
			zap.NamedError("bind_error", err),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     errInvalidRequest,
			AdContent: generator.TryAgain(),
		})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ad generation failed",
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
			zap.String("tone", req.Tone),
			zap.String("audience", req.Audience),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     errGenerateFailed,
			AdContent: generator.TryAgain(),
		})
		return
	}

	if result.Fallback {
		h.logger.Info("served fallback ad",
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
			zap.String("reason", result.Reason),
		)
	}

	c.JSON(http.StatusOK, GenerateResponse{AdContent: result.AdContent})
}

// Options handles GET /api/options.
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{
		Tones:           models.Tones(),
		Audiences:       models.Audiences(),
		DefaultTone:     string(models.DefaultTone),
		DefaultAudience: string(models.DefaultAudience),
		Feels:           models.AdFeels(),
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
