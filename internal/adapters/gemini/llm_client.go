package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
	"github.com/ahmettahaakturk25/customer-analyze/internal/utils"
)

// GeminiClient classifies emails into the anomaly vocabulary using a
// Google Gemini model.
type GeminiClient struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	promptFormat  string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	client *genai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *GeminiClient {
	model := client.GenerativeModel(modelName)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.SetTemperature(temperature)
	model.SetTopP(topP)

	return &GeminiClient{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat:  anomalyPromptFormat,
	}
}

// Analyze classifies email content into one of the anomaly categories
func (c *GeminiClient) Analyze(ctx context.Context, content, subject string) (*core.ModelResult, error) {
	body := c.textProcessor.ProcessText(content, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, subject, body)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type from Gemini")
	}

	parsed, err := parseAnomalyResponse(string(text))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Gemini classification",
		zap.String("label", parsed.Label),
		zap.Float64("confidence", parsed.Confidence))

	return &core.ModelResult{
		Prediction: parsed.Label,
		Confidence: parsed.Confidence,
	}, nil
}

// Name identifies the backend provider
func (c *GeminiClient) Name() string {
	return "gemini"
}

// Ready reports whether the client is configured
func (c *GeminiClient) Ready(ctx context.Context) bool {
	return c.client != nil
}

// Close releases the underlying API client
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// anomalyResponse represents the structured response from the LLM
type anomalyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// parseAnomalyResponse parses the LLM's JSON response, tolerating prose and
// markdown fences around the JSON object.
func parseAnomalyResponse(text string) (*anomalyResponse, error) {
	var parsed anomalyResponse
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return &parsed, nil
	}

	jsonStart := strings.Index(text, "{")
	jsonEnd := strings.LastIndex(text, "}")
	if jsonStart < 0 || jsonEnd < jsonStart {
		return nil, fmt.Errorf("failed to extract JSON from LLM response")
	}
	if err := json.Unmarshal([]byte(text[jsonStart:jsonEnd+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}
	return &parsed, nil
}

// anomalyPromptFormat instructs the model to emit a label token from the
// same vocabulary the trained classifiers use.
const anomalyPromptFormat = `You are a compliance monitoring system for corporate email. Classify the following email into exactly one category:
- LABEL_0: Normal business communication
- LABEL_1: Market sharing violation (pazar ihlali)
- LABEL_2: Bid rigging violation (ihale ihlali)
- LABEL_3: Price fixing violation (fiyat ihlali)
- LABEL_4: Information exchange violation (bilgi ihlali)

Respond with a JSON object containing:
- label: string, one of LABEL_0..LABEL_4
- confidence: number between 0 and 1
- reason: string, brief explanation

Email:
Subject: %s
Body:
%s

Respond only with the JSON object and nothing else.`
