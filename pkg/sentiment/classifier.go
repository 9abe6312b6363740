package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Classification is the raw label/score pair returned by the external
// classifier.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier is the external collaborator boundary. Implementations may be
// slow to become ready or permanently unavailable; callers must tolerate
// both.
type Classifier interface {
	// Classify scores a single normalized text.
	Classify(ctx context.Context, text string) (Classification, error)

	// Ready reports whether the classifier can serve requests.
	Ready(ctx context.Context) bool
}

// HTTPClassifier talks to a sentiment model served over HTTP. The endpoint
// accepts {"text": ...} and returns {"label": ..., "score": ...}.
type HTTPClassifier struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClassifier builds a classifier for the given endpoint URL.
func NewHTTPClassifier(endpoint string, timeout time.Duration) *HTTPClassifier {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPClassifier{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// Classify posts the text to the model endpoint.
func (c *HTTPClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return Classification{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Classification{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Classification{}, fmt.Errorf("sentiment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return Classification{}, fmt.Errorf("sentiment endpoint returned status %d", resp.StatusCode)
	}

	var out Classification
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Classification{}, fmt.Errorf("failed to decode sentiment response: %w", err)
	}
	return out, nil
}

// Ready probes the endpoint's health path.
func (c *HTTPClassifier) Ready(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
	return resp.StatusCode == http.StatusOK
}
