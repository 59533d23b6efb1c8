package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
	"github.com/ahmettahaakturk25/customer-analyze/internal/utils"
)

// OpenAIClient classifies emails into the anomaly vocabulary using an
// OpenAI chat model.
type OpenAIClient struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	promptFormat  string
}

// anomalyResponse represents the structured response from the LLM
type anomalyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClient {
	client := openai.NewClient(apiKey)

	return &OpenAIClient{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat:  anomalyPromptFormat,
	}
}

// Analyze classifies email content into one of the anomaly categories
func (c *OpenAIClient) Analyze(ctx context.Context, content, subject string) (*core.ModelResult, error) {
	body := c.textProcessor.ProcessText(content, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, subject, body)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an email compliance classifier. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	parsed, err := parseAnomalyResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("OpenAI classification",
		zap.String("label", parsed.Label),
		zap.Float64("confidence", parsed.Confidence),
		zap.String("reason", parsed.Reason))

	return &core.ModelResult{
		Prediction: parsed.Label,
		Confidence: parsed.Confidence,
	}, nil
}

// Name identifies the backend provider
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Ready reports whether the client is configured
func (c *OpenAIClient) Ready(ctx context.Context) bool {
	return c.client != nil
}

// parseAnomalyResponse parses the LLM's JSON response, tolerating prose
// around the JSON object.
func parseAnomalyResponse(text string) (*anomalyResponse, error) {
	var parsed anomalyResponse
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return &parsed, nil
	}

	// Try to extract JSON from the text response
	jsonStart := -1
	jsonEnd := -1
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			jsonStart = i
			break
		}
	}
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == '}' {
			jsonEnd = i + 1
			break
		}
	}

	if jsonStart < 0 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("failed to extract JSON from LLM response")
	}
	if err := json.Unmarshal([]byte(text[jsonStart:jsonEnd]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}
	return &parsed, nil
}

// anomalyPromptFormat instructs the model to emit a label token from the
// same vocabulary the trained classifiers use, so the label normalizer
// applies unchanged.
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
