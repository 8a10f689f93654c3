package openai

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

	"github.com/propdoc/propdoc/internal/common"
)

func completionResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse(` {"unit_count": 48} `)))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)

	out, err := c.Generate(context.Background(), "extract the facts")
	require.NoError(t, err)
	assert.Equal(t, `{"unit_count": 48}`, out)
}

func TestGenerateNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrOracleCall))
	assert.False(t, errors.Is(err, common.ErrOracleTimeout))
}

func TestGenerateTimeout(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked) // unblock the handler before srv.Close waits on it

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrOracleTimeout))
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrOracleCall))
}
