package infer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// TransformerClient talks to the transformer inference sidecar. The sidecar
// serves the fine-tuned sequence classifier and responds with a LABEL_n
// token plus a softmax score.
type TransformerClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// transformerResponse is the response body from /classify.
type transformerResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewTransformerClient creates a new transformer inference client
func NewTransformerClient(baseURL string, timeout time.Duration, logger *zap.Logger) *TransformerClient {
	return &TransformerClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Analyze classifies email content via the sidecar
func (c *TransformerClient) Analyze(ctx context.Context, content, subject string) (*core.ModelResult, error) {
	req := classifyRequest{Text: content, Subject: subject}

	var resp transformerResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/classify", &req, &resp); err != nil {
		return nil, fmt.Errorf("transformer inference failed: %w", err)
	}

	if resp.Label == "" {
		return nil, nil
	}

	c.logger.Debug("Transformer prediction",
		zap.String("label", resp.Label),
		zap.Float64("score", resp.Score))

	return &core.ModelResult{
		Prediction: resp.Label,
		Confidence: resp.Score,
	}, nil
}

// Name identifies the backend
func (c *TransformerClient) Name() string {
	return core.ModelTransformer
}

// Ready reports whether the sidecar is reachable
func (c *TransformerClient) Ready(ctx context.Context) bool {
	return healthy(ctx, c.client, c.baseURL)
}
