package api

import (
	"time"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// BatchResponse is the envelope returned by the fetch-emails endpoint.
// StartIndex and EndIndex are omitted when there is nothing to index into.
type BatchResponse struct {
	Emails      []*core.EnrichedEmail `json:"emails"`
	TotalEmails int                   `json:"total_emails"`
	CurrentPage int                   `json:"current_page"`
	TotalPages  int                   `json:"total_pages"`
	PerPage     int                   `json:"per_page"`
	StartIndex  int                   `json:"start_index,omitempty"`
	EndIndex    int                   `json:"end_index,omitempty"`
	Message     string                `json:"message"`
}

// AnalyzeRequest is the request body for the analyze-email endpoint.
type AnalyzeRequest struct {
	Content string `json:"content" binding:"required"`
	Subject string `json:"subject"`
	Model   string `json:"model"`
}

// AnalyzeResponse is the response body for the analyze-email endpoint.
type AnalyzeResponse struct {
	Status          string    `json:"status"`
	IsNormal        bool      `json:"is_normal"`
	Confidence      float64   `json:"confidence"`
	ConfidenceLevel string    `json:"confidence_level"`
	Prediction      string    `json:"prediction"`
	ProcessingID    string    `json:"processing_id"`
	AnalysisTime    time.Time `json:"analysis_time"`
	Message         string    `json:"message"`
}

// StatusResponse reports overall service readiness.
type StatusResponse struct {
	Status    string             `json:"status"`
	Services  core.ServiceStatus `json:"services"`
	Models    core.ModelStatus   `json:"models"`
	Timestamp time.Time          `json:"timestamp"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// newBatchResponse flattens a batch result into the response envelope.
func newBatchResponse(result *core.BatchResult) BatchResponse {
	return BatchResponse{
		Emails:      result.Emails,
		TotalEmails: result.Pages.TotalItems,
		CurrentPage: result.Pages.CurrentPage,
		TotalPages:  result.Pages.TotalPages,
		PerPage:     result.Pages.PerPage,
		StartIndex:  result.Pages.StartIndex,
		EndIndex:    result.Pages.EndIndex,
		Message:     result.Message,
	}
}
