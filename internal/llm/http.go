package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// defaultTransportTimeout bounds a call when the caller passes a nil client.
const defaultTransportTimeout = 45 * time.Second

// SendJSON posts a JSON body to url and returns the raw response body and
// status. reqID threads one identifier through the caller's logs and the
// transport logs; an empty reqID gets a fresh one. A non-2xx status comes
// back as an error with the body still populated so callers can surface
// provider messages.
func SendJSON(ctx context.Context, client *http.Client, url string, body any, headers map[string]string, reqID string, logger *slog.Logger) ([]byte, int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTransportTimeout}
	}
	if reqID == "" {
		reqID = uuid.New().String()
	}
	start := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		logger.Error("llm.http.encode_error", "req_id", reqID, "error", err)
		return nil, 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logger.Error("llm.http.build_request_error", "req_id", reqID, "error", err)
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logger.Info("llm.http.request",
		"req_id", reqID,
		"url", url,
		"content_length", len(payload),
	)

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("llm.http.send_error",
			"req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, 0, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	if cerr := resp.Body.Close(); cerr != nil {
		logger.Warn("llm.http.body_close_error", "req_id", reqID, "error", cerr)
	}

	logger.Info("llm.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if readErr != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", readErr)
	}
	if resp.StatusCode/100 != 2 {
		return raw, resp.StatusCode, fmt.Errorf("oracle endpoint returned status %d", resp.StatusCode)
	}
	return raw, resp.StatusCode, nil
}
