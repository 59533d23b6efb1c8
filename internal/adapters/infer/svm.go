package infer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// SVMClient talks to the SVM inference sidecar, which serves the
// sentence-embedding + SVM pipeline and responds with a bare class index.
type SVMClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// svmResponse is the response body from /predict.
type svmResponse struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// NewSVMClient creates a new SVM inference client
func NewSVMClient(baseURL string, timeout time.Duration, logger *zap.Logger) *SVMClient {
	return &SVMClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Analyze classifies email content via the sidecar
func (c *SVMClient) Analyze(ctx context.Context, content, subject string) (*core.ModelResult, error) {
	req := classifyRequest{Text: content, Subject: subject}

	var resp svmResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/predict", &req, &resp); err != nil {
		return nil, fmt.Errorf("svm inference failed: %w", err)
	}

	if resp.Prediction == "" {
		return nil, nil
	}

	c.logger.Debug("SVM prediction",
		zap.String("prediction", resp.Prediction),
		zap.Float64("confidence", resp.Confidence))

	return &core.ModelResult{
		Prediction: resp.Prediction,
		Confidence: resp.Confidence,
	}, nil
}

// Name identifies the backend
func (c *SVMClient) Name() string {
	return core.ModelSVM
}

// Ready reports whether the sidecar is reachable
func (c *SVMClient) Ready(ctx context.Context) bool {
	return healthy(ctx, c.client, c.baseURL)
}
