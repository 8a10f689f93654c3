package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/llm"
)

// Generate implements llm.Generator over chat/completions. A request that
// exceeds the configured deadline comes back as common.ErrOracleTimeout; any
// other transport or status problem is common.ErrOracleCall. Callers rely on
// that distinction to decide whether a run aborts.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.generate.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"prompt_len", len(prompt),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, status, err := llm.SendJSON(reqCtx, c.http, endpoint, body, map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
	}, rid, c.logger)
	if err != nil {
		kind := classify(err)
		c.logger.Error("llm.generate.failed",
			"req_id", rid, "error", err, "status", status,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: %v", kind, err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.generate.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: decode response: %v", common.ErrOracleCall, err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.generate.no_choices", "req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("%w: no choices in response", common.ErrOracleCall)
	}

	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	c.logger.Info("llm.generate.ok",
		"req_id", rid,
		"completion_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

// classify separates deadline expiry from every other call failure.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return common.ErrOracleTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return common.ErrOracleTimeout
	}
	return common.ErrOracleCall
}
