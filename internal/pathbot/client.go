package pathbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/vinser/pathbot/internal/nav"
)

//go:generate mockgen -destination=mock/mock_client.go -package=mockpathbot . Client

const (
	DefaultBaseURL = "https://api.noopschallenge.com"
	StartPath      = "/pathbot/start"

	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
)

// Client sends requests to a Pathbot server.
type Client interface {
	// Start requests the starting room of a new maze.
	Start(ctx context.Context) (Payload, error)
	// Move asks to leave the room at path in direction d.
	Move(ctx context.Context, path LocationPath, d nav.Direction) (Payload, error)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns an HTTP Client. Zero fields of cfg take defaults.
func NewClient(cfg Config) Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &client{baseURL: baseURL, http: hc}
}

func (c *client) Start(ctx context.Context) (Payload, error) {
	return c.post(ctx, StartPath, []byte("{}"))
}

func (c *client) Move(ctx context.Context, path LocationPath, d nav.Direction) (Payload, error) {
	body, err := json.Marshal(moveRequest{Direction: d.ShortName()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal move request: %w", err)
	}
	return c.post(ctx, path, body)
}

func (c *client) post(ctx context.Context, path string, body []byte) (Payload, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("pathbot: POST %s %s", url, body)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if len(data) > maxBodySize {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("response too large: over %d bytes", maxBodySize)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return Decode(data)
}
