// Package lemmad is an HTTP client for a lemmatizer service exposing
// POST /v1/normalize. The service owns the language model; this client
// only moves text in and lemma sequences out.
package lemmad

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/realty-assistant/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		executor:   executor,
	}
}

type normalizeRequest struct {
	Text string `json:"text"`
}

type normalizeResponse struct {
	Lemmas []string `json:"lemmas"`
}

// Normalize sends the raw text out and returns the lemma sequence. The
// service is expected to lower-case, strip punctuation and drop stop
// words itself.
func (c *Client) Normalize(ctx context.Context, text string) ([]string, error) {
	var out normalizeResponse
	err := c.executor.Execute(ctx, "lemmad_normalize", func(ctx context.Context) error {
		return c.postJSON(ctx, "/v1/normalize", normalizeRequest{Text: text}, &out)
	}, transientError)
	if err != nil {
		return nil, fmt.Errorf("lemmad normalize: %w", err)
	}
	return out.Lemmas, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lemmad request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return httpError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("lemmad status %d", e.code)
	}
	return fmt.Sprintf("lemmad status %d: %s", e.code, e.msg)
}

func httpError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &statusError{code: resp.StatusCode, msg: strings.TrimSpace(string(body))}
}

func transientError(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	var ne net.Error
	return errors.As(err, &ne)
}
