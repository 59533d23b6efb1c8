package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

func libreServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate", r.URL.Path)

		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "auto", req.Source)
		assert.Equal(t, "tr", req.Target)

		var resp translateResponse
		resp.TranslatedText = "çeviri: " + req.Q
		resp.DetectedLanguage.Language = "en"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestNewLibreClient_InvalidLanguage(t *testing.T) {
	_, err := NewLibreClient("http://localhost", "not a tag!!", time.Second, zap.NewNop())
	require.Error(t, err)
}

func TestTranslate_SubjectAndPreview(t *testing.T) {
	server := libreServer(t)
	defer server.Close()

	client, err := NewLibreClient(server.URL, "tr", time.Second, zap.NewNop())
	require.NoError(t, err)

	fields, err := client.Translate(context.Background(), &core.EnrichedEmail{
		Subject: "quarterly report",
		Preview: "please find attached",
	})

	require.NoError(t, err)
	assert.Equal(t, "çeviri: quarterly report", fields.Subject)
	assert.Equal(t, "çeviri: please find attached", fields.Preview)
	assert.Equal(t, "en", fields.Lang)
	assert.Empty(t, fields.Content)
}

func TestTranslate_SkipsPlaceholderSubject(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var resp translateResponse
		resp.TranslatedText = "x"
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewLibreClient(server.URL, "tr", time.Second, zap.NewNop())
	require.NoError(t, err)

	_, err = client.Translate(context.Background(), &core.EnrichedEmail{
		Subject: core.PlaceholderSubject,
		Preview: "body text",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestTranslate_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewLibreClient(server.URL, "tr", time.Second, zap.NewNop())
	require.NoError(t, err)

	fields, err := client.Translate(context.Background(), &core.EnrichedEmail{Subject: "hello"})

	assert.Nil(t, fields)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
