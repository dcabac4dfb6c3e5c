// Package llm wraps the chat-completion API that produces call evaluations
// and coaching narratives.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"call-audit-go/internal/logger"
)

var httpClient = &http.Client{Timeout: 90 * time.Second}

type Client struct {
	apiKey  string
	baseURL string
	model   string
}

func NewClient(apiKey, baseURL, model string) *Client {
	if model == "" {
		model = "gpt-4"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one user prompt and returns the raw assistant text.
// 5xx and transport errors are retried with exponential backoff; 4xx
// responses are permanent.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.New().WithComponent("llm").WithField("model", c.model)

	payload, _ := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.2,
		MaxTokens:   2200,
	})
	log.WithField("payload_len", len(payload)).Debug("chat completion request")

	var content string
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("chat completion request failed")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("llm server error (status %d): %s", resp.StatusCode, string(body))
			return lastErr
		}

		var parsed chatResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			lastErr = fmt.Errorf("decode llm response: %w", err)
			return lastErr
		}
		if resp.StatusCode != http.StatusOK {
			msg := string(body)
			if parsed.Error != nil {
				msg = parsed.Error.Message
			}
			lastErr = fmt.Errorf("llm error (status %d): %s", resp.StatusCode, msg)
			return backoff.Permanent(lastErr)
		}
		if len(parsed.Choices) == 0 {
			lastErr = fmt.Errorf("llm response has no choices")
			return lastErr
		}

		content = strings.TrimSpace(parsed.Choices[0].Message.Content)
		lastErr = nil
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return "", fmt.Errorf("chat completion: %w", lastErr)
	}
	return content, nil
}
