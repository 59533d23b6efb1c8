package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/config"
	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
	"github.com/ahmettahaakturk25/customer-analyze/internal/factory"
	"github.com/ahmettahaakturk25/customer-analyze/internal/logging"
	"github.com/ahmettahaakturk25/customer-analyze/internal/utils"
)

var (
	model     = flag.String("model", "transformer", "Model backend (transformer, svm, llm)")
	inputFile = flag.String("file", "", "Input email file (use stdin if not specified)")
	timeout   = flag.Duration("timeout", 60*time.Second, "Analysis timeout")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.New()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Build the model registry
	textProcessor := utils.NewTextProcessor(logger)
	modelFactory := factory.NewModelFactory(cfg, logger, textProcessor)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	registry, err := modelFactory.CreateRegistry(ctx)
	if err != nil {
		logger.Fatal("Failed to create model registry", zap.Error(err))
	}

	subject, content, err := readEmail(*inputFile)
	if err != nil {
		logger.Fatal("Failed to read email", zap.Error(err))
	}

	// Same path as the analyze endpoint, so the confidence tier comes from
	// the raw model score rather than the rounded percentage
	analyzer := core.NewAnalyzer(registry, nil, nil, logger, 0)
	service := core.NewMailService(nil, analyzer, nil, logger, "", 0)

	analysis, err := service.AnalyzeOne(ctx, content, subject, *model)
	if err != nil {
		logger.Fatal("Analysis failed", zap.Error(err))
	}

	output := struct {
		Status          string  `json:"status"`
		IsNormal        bool    `json:"is_normal"`
		Confidence      float64 `json:"confidence"`
		ConfidenceLevel string  `json:"confidence_level"`
		Prediction      string  `json:"prediction"`
		Model           string  `json:"model"`
	}{
		Status:          analysis.Status,
		IsNormal:        analysis.IsNormal,
		Confidence:      analysis.Confidence,
		ConfidenceLevel: analysis.ConfidenceLevel,
		Prediction:      analysis.Prediction,
		Model:           *model,
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		logger.Fatal("Failed to encode result", zap.Error(err))
	}
	fmt.Println(string(encoded))
}

// readEmail parses an RFC 5322 message from the given file or stdin and
// returns its subject and body.
func readEmail(path string) (string, string, error) {
	var reader io.Reader = os.Stdin
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	msg, err := mail.ReadMessage(bufio.NewReader(reader))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse email: %w", err)
	}

	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read email body: %w", err)
	}

	return msg.Header.Get("Subject"), string(body), nil
}
