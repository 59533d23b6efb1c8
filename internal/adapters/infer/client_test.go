package infer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func transformerServer(t *testing.T, label string, score float64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/classify", func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Text)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transformerResponse{Label: label, Score: score})
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(mux)
}

func TestTransformerClient_Analyze(t *testing.T) {
	server := transformerServer(t, "LABEL_2", 0.87)
	defer server.Close()

	client := NewTransformerClient(server.URL, time.Second, zap.NewNop())

	result, err := client.Analyze(context.Background(), "tender manipulation details", "re: bid")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "LABEL_2", result.Prediction)
	assert.Equal(t, 0.87, result.Confidence)
}

func TestTransformerClient_EmptyLabelMeansNoResult(t *testing.T) {
	server := transformerServer(t, "", 0)
	defer server.Close()

	client := NewTransformerClient(server.URL, time.Second, zap.NewNop())

	result, err := client.Analyze(context.Background(), "content", "")

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestTransformerClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewTransformerClient(server.URL, time.Second, zap.NewNop())

	result, err := client.Analyze(context.Background(), "content", "")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestTransformerClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewTransformerClient(server.URL, time.Second, zap.NewNop())

	_, err := client.Analyze(context.Background(), "content", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestTransformerClient_Ready(t *testing.T) {
	server := transformerServer(t, "LABEL_0", 0.5)
	client := NewTransformerClient(server.URL, time.Second, zap.NewNop())

	assert.True(t, client.Ready(context.Background()))

	server.Close()
	assert.False(t, client.Ready(context.Background()))
}

func TestSVMClient_Analyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(svmResponse{Prediction: "3", Confidence: 0.74})
	}))
	defer server.Close()

	client := NewSVMClient(server.URL, time.Second, zap.NewNop())

	result, err := client.Analyze(context.Background(), "price coordination email", "")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "3", result.Prediction)
	assert.Equal(t, 0.74, result.Confidence)
}

func TestSVMClient_EmptyPredictionMeansNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(svmResponse{})
	}))
	defer server.Close()

	client := NewSVMClient(server.URL, time.Second, zap.NewNop())

	result, err := client.Analyze(context.Background(), "content", "")

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestClientNames(t *testing.T) {
	assert.Equal(t, "transformer", NewTransformerClient("", time.Second, zap.NewNop()).Name())
	assert.Equal(t, "svm", NewSVMClient("", time.Second, zap.NewNop()).Name())
}
