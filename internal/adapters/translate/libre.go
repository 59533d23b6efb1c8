package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// LibreClient produces translated-field overlays through a
// LibreTranslate-compatible HTTP endpoint. Source language detection is
// delegated to the service; the target language is fixed per deployment.
type LibreClient struct {
	baseURL    string
	targetLang language.Tag
	client     *http.Client
	logger     *zap.Logger
}

// NewLibreClient creates a new translation client. targetLang must be a
// valid BCP 47 tag.
func NewLibreClient(baseURL, targetLang string, timeout time.Duration, logger *zap.Logger) (*LibreClient, error) {
	tag, err := language.Parse(targetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", targetLang, err)
	}

	return &LibreClient{
		baseURL:    baseURL,
		targetLang: tag,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// translateRequest is the request body for /translate.
type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

// translateResponse is the response body from /translate.
type translateResponse struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage struct {
		Language string `json:"language"`
	} `json:"detectedLanguage"`
}

// Translate builds the overlay for one enriched email. Subject and preview
// are translated; the full content is left alone to bound request cost.
func (c *LibreClient) Translate(ctx context.Context, email *core.EnrichedEmail) (*core.TranslatedFields, error) {
	fields := &core.TranslatedFields{}

	if email.Subject != "" && email.Subject != core.PlaceholderSubject {
		subject, lang, err := c.translateText(ctx, email.Subject)
		if err != nil {
			return nil, fmt.Errorf("failed to translate subject: %w", err)
		}
		fields.Subject = subject
		fields.Lang = lang
	}

	if email.Preview != "" {
		preview, lang, err := c.translateText(ctx, email.Preview)
		if err != nil {
			return nil, fmt.Errorf("failed to translate preview: %w", err)
		}
		fields.Preview = preview
		if fields.Lang == "" {
			fields.Lang = lang
		}
	}

	return fields, nil
}

// translateText translates one string and reports the detected source
// language.
func (c *LibreClient) translateText(ctx context.Context, text string) (string, string, error) {
	reqBody := translateRequest{
		Q:      text,
		Source: "auto",
		Target: c.targetLang.String(),
		Format: "text",
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("failed to build translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("translation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", "", fmt.Errorf("translation service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", fmt.Errorf("failed to decode translation response: %w", err)
	}

	c.logger.Debug("Translated text",
		zap.String("detected_lang", parsed.DetectedLanguage.Language),
		zap.String("target_lang", c.targetLang.String()))

	return parsed.TranslatedText, parsed.DetectedLanguage.Language, nil
}
