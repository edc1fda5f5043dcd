// Package chutes is the HTTP client for the Chutes Whisper transcription API.
package chutes

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/parlo-cli/parlo/internal/config"
)

// APIError indicates the endpoint could not be reached or returned an error
// after all retry attempts.
type APIError struct {
	Attempts int
	Err      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chutes api failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Segment is one timed transcript fragment from the API response.
type Segment struct {
	Start            float64  `json:"start"`
	End              float64  `json:"end"`
	Text             string   `json:"text"`
	Temperature      *float64 `json:"temperature,omitempty"`
	AvgLogprob       *float64 `json:"avg_logprob,omitempty"`
	CompressionRatio *float64 `json:"compression_ratio,omitempty"`
	NoSpeechProb     *float64 `json:"no_speech_prob,omitempty"`
}

// Result is an assembled transcription.
type Result struct {
	Text     string
	Segments []Segment
}

// Client posts audio to the transcription endpoint with bounded retries.
type Client struct {
	cfg        config.ChutesConfig
	httpClient *http.Client
	backoff    func(attempt int) time.Duration
}

// New constructs a client with the configured request timeout.
func New(cfg config.ChutesConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		backoff: defaultBackoff,
	}
}

// defaultBackoff grows exponentially per attempt, capped at 8 seconds.
func defaultBackoff(attempt int) time.Duration {
	d := time.Duration(1<<uint(attempt)) * time.Second
	if d > 8*time.Second {
		return 8 * time.Second
	}
	return d
}

type transcribeRequest struct {
	AudioB64 string `json:"audio_b64"`
	Language string `json:"language,omitempty"`
}

// Transcribe uploads the audio file as base64 JSON and assembles the segment
// array response into a Result.
func (c *Client) Transcribe(ctx context.Context, audioPath, language string) (Result, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("read audio %q: %w", audioPath, err)
	}

	payload := transcribeRequest{
		AudioB64: base64.StdEncoding.EncodeToString(data),
		Language: language,
	}

	segments, err := c.postWithRetries(ctx, payload)
	if err != nil {
		return Result{}, err
	}
	return assembleResult(segments), nil
}

// TestConnection performs a lightweight request to validate API connectivity.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.postWithRetries(ctx, transcribeRequest{AudioB64: ""})
	return err
}

// postWithRetries retries transport and server failures with capped
// exponential backoff, honoring context cancellation between attempts.
func (c *Client) postWithRetries(ctx context.Context, payload transcribeRequest) ([]Segment, error) {
	attempts := c.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		segments, err := c.post(ctx, payload)
		if err == nil {
			return segments, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, &APIError{Attempts: attempt, Err: ctx.Err()}
		case <-time.After(c.backoff(attempt)):
		}
	}
	return nil, &APIError{Attempts: attempts, Err: lastErr}
}

// post performs one request/parse cycle.
func (c *Client) post(ctx context.Context, payload transcribeRequest) ([]Segment, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.cfg.Endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("endpoint returned %s: %s", resp.Status, truncateBody(raw))
	}

	// The API returns an array of segment objects.
	var segments []Segment
	if err := json.Unmarshal(raw, &segments); err != nil {
		return nil, fmt.Errorf("unexpected response format: %w", err)
	}
	return segments, nil
}

// assembleResult joins segment text in order and trims the edges.
func assembleResult(segments []Segment) Result {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteString(segment.Text)
	}
	return Result{
		Text:     strings.TrimSpace(b.String()),
		Segments: segments,
	}
}

// truncateBody keeps error messages readable for large error payloads.
func truncateBody(raw []byte) string {
	const limit = 256
	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) <= limit {
		return trimmed
	}
	return trimmed[:limit] + "..."
}
