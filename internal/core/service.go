package core

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MailService drives one fetch-classify-respond cycle per request: it
// acquires a scoped mail session, paginates over the id sequence, fetches
// only the selected page, and runs each message through the analysis
// pipeline with optional translation.
type MailService struct {
	connector  MailConnector
	analyzer   *Analyzer
	translator Translator
	logger     *zap.Logger
	mailbox    string
	daysBack   int
}

// NewMailService creates a new mail service
func NewMailService(
	connector MailConnector,
	analyzer *Analyzer,
	translator Translator,
	logger *zap.Logger,
	mailbox string,
	daysBack int,
) *MailService {
	return &MailService{
		connector:  connector,
		analyzer:   analyzer,
		translator: translator,
		logger:     logger,
		mailbox:    mailbox,
		daysBack:   daysBack,
	}
}

// fetchPage connects, searches and fetches one page of messages. The session
// lives only inside this call; the deferred close guarantees release on every
// exit path, including fetch errors.
func (s *MailService) fetchPage(ctx context.Context, req PageRequest) ([]FetchedEmail, PageResult, error) {
	session, err := s.connector.Connect(ctx)
	if err != nil {
		return nil, PageResult{}, fmt.Errorf("failed to connect to email server: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Error("Failed to close mail session", zap.Error(err))
		}
	}()

	if err := session.SelectMailbox(ctx, s.mailbox); err != nil {
		return nil, PageResult{}, fmt.Errorf("failed to select mailbox %s: %w", s.mailbox, err)
	}

	ids, err := session.Search(ctx, s.daysBack)
	if err != nil {
		return nil, PageResult{}, fmt.Errorf("failed to search mailbox: %w", err)
	}

	pageIDs, pages := Paginate(ids, req.Page, req.PerPage)
	if len(pageIDs) == 0 {
		return nil, pages, nil
	}

	fetched, err := session.Fetch(ctx, pageIDs, req.PerPage)
	if err != nil {
		return nil, PageResult{}, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return fetched, pages, nil
}

// FetchAndAnalyze performs one full fetch-classify-respond cycle.
func (s *MailService) FetchAndAnalyze(ctx context.Context, req PageRequest) (*BatchResult, error) {
	fetched, pages, err := s.fetchPage(ctx, req)
	if err != nil {
		return nil, err
	}

	if pages.TotalItems == 0 {
		// Nothing to show is not a failure
		return &BatchResult{
			Emails:  []*EnrichedEmail{},
			Pages:   pages,
			Message: "No emails found",
		}, nil
	}

	start := (req.Page - 1) * req.PerPage
	enriched := make([]*EnrichedEmail, 0, len(fetched))

	for i, msg := range fetched {
		email := msg.Email
		email.Normalize()

		item := &EnrichedEmail{
			ID:      start + i,
			Subject: email.Subject,
			Sender:  email.Sender,
			Date:    email.Date,
			Content: email.Content,
			Preview: Preview(email.Content),
		}

		// Keyed by the message's own sequence number, not its position:
		// the fetch may have returned fewer messages than requested
		messageKey := fmt.Sprintf("%s/%d", s.mailbox, msg.Seq)
		item.Analysis = s.analyzer.Analyze(ctx, email, req.Model, messageKey)

		if s.translator != nil {
			translation, err := s.translator.Translate(ctx, item)
			if err != nil {
				// Partial enrichment: keep the untranslated fields
				s.logger.Error("Translation failed",
					zap.Int("email_id", item.ID),
					zap.Error(err))
			} else {
				item.Translation = translation
			}
		}

		enriched = append(enriched, item)
	}

	return &BatchResult{
		Emails:  enriched,
		Pages:   pages,
		Message: fmt.Sprintf("%d emails fetched and analyzed successfully", len(enriched)),
	}, nil
}

// AnalyzeOne classifies a single submitted email body. Unlike the batch
// path, failures surface as errors so the caller can report a service-level
// problem instead of a degraded block.
func (s *MailService) AnalyzeOne(ctx context.Context, content, subject, selector string) (*SingleAnalysis, error) {
	result, err := s.analyzer.AnalyzeContent(ctx, content, subject, selector)
	if err != nil {
		return nil, err
	}

	status := NormalizeLabel(result.Prediction)

	return &SingleAnalysis{
		Status:          status,
		IsNormal:        status == LabelNormal,
		Confidence:      roundConfidence(result.Confidence),
		ConfidenceLevel: ClassifyConfidence(result.Confidence),
		Prediction:      result.Prediction,
		ProcessingID:    uuid.NewString(),
		AnalyzedAt:      time.Now(),
	}, nil
}

// Status aggregates readiness of the service's collaborators.
func (s *MailService) Status(ctx context.Context) (ServiceStatus, ModelStatus) {
	services := ServiceStatus{
		MailConnector: s.connector != nil,
		ModelRegistry: s.analyzer != nil,
		Translator:    s.translator != nil,
	}

	var models ModelStatus
	if s.analyzer != nil && s.analyzer.registry != nil {
		models = s.analyzer.registry.Status(ctx)
	}

	return services, models
}

// Preview truncates content for list display, appending an ellipsis when
// anything was cut off. The cut never splits a UTF-8 sequence.
func Preview(content string) string {
	if len(content) <= PreviewLength {
		return content
	}
	truncated := content[:PreviewLength]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "..."
}
