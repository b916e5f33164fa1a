// Package sandbox proxies code execution to a Piston-compatible sandbox
// service. The service runs untrusted code; this package only shapes
// requests and responses.
package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public Piston instance.
const DefaultBaseURL = "https://emkc.org/api/v2/piston"

const defaultTimeout = 30 * time.Second

// Client talks to one sandbox instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a sandbox client. An empty baseURL selects the public
// Piston instance.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Error is a failure reported by the sandbox service.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("sandbox error (status %d): %s", e.StatusCode, e.Message)
}

// Request describes one execution.
type Request struct {
	Language string
	Version  string
	Code     string
	Stdin    string
}

// Result is the outcome of one execution.
type Result struct {
	Language string
	Version  string
	Stdout   string
	Stderr   string
	ExitCode int
}

type pistonRequest struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Files    []pistonFile `json:"files"`
	Stdin    string       `json:"stdin,omitempty"`
}

type pistonFile struct {
	Content string `json:"content"`
}

type pistonResponse struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Message  string `json:"message"`
	Run      struct {
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
		Code   int    `json:"code"`
	} `json:"run"`
}

// Execute runs the submitted code and returns its output. An empty version
// asks the sandbox to pick its latest runtime for the language.
func (c *Client) Execute(ctx context.Context, req Request) (*Result, error) {
	version := req.Version
	if version == "" {
		version = "*"
	}

	body, err := json.Marshal(pistonRequest{
		Language: req.Language,
		Version:  version,
		Files:    []pistonFile{{Content: req.Code}},
		Stdin:    req.Stdin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sandbox request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sandbox request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sandbox response: %w", err)
	}

	var parsed pistonResponse
	if resp.StatusCode != http.StatusOK {
		message := "execution rejected"
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Message != "" {
			message = parsed.Message
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("sandbox returned malformed JSON: %w", err)
	}

	return &Result{
		Language: parsed.Language,
		Version:  parsed.Version,
		Stdout:   parsed.Run.Stdout,
		Stderr:   parsed.Run.Stderr,
		ExitCode: parsed.Run.Code,
	}, nil
}
