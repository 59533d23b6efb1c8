package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

const statusCheckTimeout = 2 * time.Second

// Handler handles HTTP requests for the analysis API
type Handler struct {
	service      *core.MailService
	logger       *zap.Logger
	defaultModel string
}

// NewHandler creates a new API handler
func NewHandler(service *core.MailService, logger *zap.Logger, defaultModel string) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		defaultModel: defaultModel,
	}
}

// validModel reports whether the selector names a known model backend.
func validModel(model string) bool {
	switch model {
	case core.ModelTransformer, core.ModelSVM, core.ModelLLM:
		return true
	}
	return false
}

// FetchEmails handles GET /api/fetch-emails
func (h *Handler) FetchEmails(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "page must be a positive integer"})
		return
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "per_page must be a positive integer"})
		return
	}

	model := c.DefaultQuery("model", h.defaultModel)
	if !validModel(model) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown model: " + model})
		return
	}

	req := core.PageRequest{
		Page:    page,
		PerPage: perPage,
		Model:   model,
	}

	result, err := h.service.FetchAndAnalyze(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to fetch emails",
			zap.Int("page", page),
			zap.Int("per_page", perPage),
			zap.String("model", model),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch emails"})
		return
	}

	h.logger.Info("Emails fetched and analyzed",
		zap.Int("count", len(result.Emails)),
		zap.Int("total", result.Pages.TotalItems),
		zap.String("model", model))

	c.JSON(http.StatusOK, newBatchResponse(result))
}

// AnalyzeEmail handles POST /api/analyze-email
func (h *Handler) AnalyzeEmail(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email content is required"})
		return
	}

	model := req.Model
	if model == "" {
		model = h.defaultModel
	}
	if !validModel(model) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown model: " + model})
		return
	}

	result, err := h.service.AnalyzeOne(c.Request.Context(), req.Content, req.Subject, model)
	if err != nil {
		h.logger.Error("Failed to analyze email",
			zap.String("model", model),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to analyze email"})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		Status:          result.Status,
		IsNormal:        result.IsNormal,
		Confidence:      result.Confidence,
		ConfidenceLevel: result.ConfidenceLevel,
		Prediction:      result.Prediction,
		ProcessingID:    result.ProcessingID,
		AnalysisTime:    result.AnalyzedAt,
		Message:         "Email analizi tamamlandı. Sonuç: " + result.Status,
	})
}

// GetStatus handles GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statusCheckTimeout)
	defer cancel()

	services, models := h.service.Status(ctx)

	c.JSON(http.StatusOK, StatusResponse{
		Status:    "running",
		Services:  services,
		Models:    models,
		Timestamp: time.Now(),
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statusCheckTimeout)
	defer cancel()

	_, models := h.service.Status(ctx)
	if !models.TransformerLoaded && !models.SVMLoaded && !models.LLMLoaded {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "no model backend available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
