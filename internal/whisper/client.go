// Package whisper is a thin client for the OpenAI audio transcription API.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"call-audit-go/internal/logger"
)

// generous timeout: a 10 minute chunk can take a while to transcribe
var httpClient = &http.Client{Timeout: 10 * time.Minute}

type Client struct {
	apiKey  string
	baseURL string
	model   string
}

func NewClient(apiKey, baseURL, model string) *Client {
	if model == "" {
		model = "whisper-1"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

// Transcribe uploads one audio chunk and returns its plain-text transcript.
// Network failures and 5xx responses are retried with exponential backoff;
// 4xx responses are permanent.
func (c *Client) Transcribe(ctx context.Context, path string) (string, error) {
	log := logger.New().WithComponent("whisper").WithField("chunk", filepath.Base(path))
	log.Info("transcribing chunk")

	var text string
	var lastErr error
	op := func() error {
		body, contentType, err := c.buildForm(path)
		if err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("transcription request failed")
			return err
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("transcription server error (status %d): %s", resp.StatusCode, string(respBody))
			return lastErr
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("transcription error (status %d): %s", resp.StatusCode, string(respBody))
			return backoff.Permanent(lastErr)
		}

		text = strings.TrimSpace(string(respBody))
		lastErr = nil
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 3 * time.Minute
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return "", fmt.Errorf("transcribe %s: %w", filepath.Base(path), lastErr)
	}
	return text, nil
}

// buildForm assembles the multipart payload. response_format=text keeps the
// response body as the bare transcript.
func (c *Client) buildForm(path string) (*bytes.Buffer, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open chunk: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy chunk: %w", err)
	}
	_ = w.WriteField("model", c.model)
	_ = w.WriteField("response_format", "text")
	_ = w.WriteField("language", "en")
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return body, w.FormDataContentType(), nil
}
