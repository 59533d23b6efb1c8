package core

import (
	"time"
)

// Placeholder values backfilled onto emails the mail store returned with
// missing fields.
const (
	PlaceholderSubject = "No Subject"
	PlaceholderSender  = "Unknown Sender"
	PlaceholderDate    = "Unknown Date"
)

// PreviewLength is the maximum number of bytes of content included in an
// email preview before truncation.
const PreviewLength = 150

// Model selectors accepted by the analysis endpoints.
const (
	ModelTransformer = "transformer"
	ModelSVM         = "svm"
	ModelLLM         = "llm"
)

// Sentinel prediction tokens used by fallback analysis blocks.
const (
	PredictionNoAnalyzer = "NO_ANALYZER"
	PredictionUnknown    = "UNKNOWN"
	PredictionError      = "ERROR"
	PredictionTrusted    = "TRUSTED"
)

// Fallback statuses for emails that could not be classified.
const (
	StatusNotAnalyzed   = "Analiz Edilemedi"
	StatusAnalysisError = "Analiz Hatası"
)

// Email represents a single message fetched from the mail store
type Email struct {
	Subject string
	Sender  string
	Date    string
	Content string
}

// Normalize backfills missing fields with the fixed placeholder values.
// The mail store treats every field as optional; downstream code relies on
// this single normalization step instead of per-field presence checks.
func (e *Email) Normalize() {
	if e.Subject == "" {
		e.Subject = PlaceholderSubject
	}
	if e.Sender == "" {
		e.Sender = PlaceholderSender
	}
	if e.Date == "" {
		e.Date = PlaceholderDate
	}
}

// FetchedEmail pairs a fetched message with the sequence number it was
// requested under. The mail store may return fewer messages than asked for
// (a message can be expunged between search and fetch), so positions alone
// cannot identify a message; downstream keys use Seq.
type FetchedEmail struct {
	Seq   uint32
	Email *Email
}

// ModelResult is the raw output of a model backend: an opaque prediction
// token and a confidence scalar in [0,1]
type ModelResult struct {
	Prediction string
	Confidence float64
}

// AnalysisBlock is the normalized classification outcome attached to an
// email. IsNormal is nil only for the two fallback statuses.
type AnalysisBlock struct {
	Status     string  `json:"status"`
	IsNormal   *bool   `json:"is_normal"`
	Confidence float64 `json:"confidence"`
	Prediction string  `json:"prediction"`
}

// TranslatedFields is the optional overlay produced by the translation
// layer. Empty fields are omitted from the response so a failed or partial
// translation never masks the original content.
type TranslatedFields struct {
	Subject string `json:"translated_subject,omitempty"`
	Content string `json:"translated_content,omitempty"`
	Preview string `json:"translated_preview,omitempty"`
	Lang    string `json:"translated_lang,omitempty"`
}

// EnrichedEmail is the presentation form of a fetched email: normalized
// fields, a content preview, the analysis block and an optional translation
// overlay. ID is the page-relative absolute index of the email.
type EnrichedEmail struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	Date    string `json:"date"`
	Content string `json:"content"`
	Preview string `json:"preview"`

	Analysis AnalysisBlock `json:"analysis"`

	Translation *TranslatedFields `json:"translation,omitempty"`
}

// PageRequest describes one fetch-and-analyze request. Validation happens
// at the HTTP boundary; core code assumes Page >= 1 and PerPage >= 1.
type PageRequest struct {
	Page    int
	PerPage int
	Model   string
}

// PageResult holds the pagination arithmetic for one page of results.
// StartIndex and EndIndex are 1-based and only meaningful when
// TotalItems > 0.
type PageResult struct {
	TotalItems  int
	CurrentPage int
	TotalPages  int
	PerPage     int
	StartIndex  int
	EndIndex    int
}

// BatchResult is the assembled outcome of one fetch-and-analyze cycle.
type BatchResult struct {
	Emails  []*EnrichedEmail
	Pages   PageResult
	Message string
}

// SingleAnalysis is the outcome of analyzing one submitted email body,
// as served by the analyze endpoint.
type SingleAnalysis struct {
	Status          string
	IsNormal        bool
	Confidence      float64
	ConfidenceLevel string
	Prediction      string
	ProcessingID    string
	AnalyzedAt      time.Time
}

// CacheEntry is a cached analysis outcome for one mailbox message and
// model backend.
type CacheEntry struct {
	MessageKey string
	Status     string
	IsNormal   *bool
	Confidence float64
	Prediction string
	AnalyzedAt time.Time
	ExpiresAt  time.Time
}

// ServiceStatus reports readiness of the service's collaborators, as served
// by the status endpoint.
type ServiceStatus struct {
	MailConnector bool `json:"mail_connector"`
	ModelRegistry bool `json:"model_registry"`
	Translator    bool `json:"translator"`
}

// ModelStatus reports per-backend load flags.
type ModelStatus struct {
	TransformerLoaded bool `json:"transformer_loaded"`
	SVMLoaded         bool `json:"svm_loaded"`
	LLMLoaded         bool `json:"llm_loaded"`
}
