// Package ocr provides an HTTP client for an external text-extraction
// service.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vta-orchestrator/internal/domain"
)

// extractRequest is the payload for the extraction endpoint. Exactly one
// of the fields is set.
type extractRequest struct {
	ImageURL    string `json:"image_url,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// extractResponse is the response from the extraction endpoint.
type extractResponse struct {
	Text string `json:"text"`
}

// Client calls the OCR service /v1/extract endpoint.
type Client struct {
	BaseURL string
	Client  *http.Client
	logger  *slog.Logger
}

// NewClient constructs an OCR client. httpClient may be nil.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  httpClient,
		logger:  logger,
	}
}

// ExtractText sends the image to the OCR service and returns the extracted
// text, whitespace-trimmed. Images starting with "http" are passed as a URL
// for the service to fetch; anything else is treated as base64 and
// validated locally before the call.
func (c *Client) ExtractText(ctx context.Context, image string) (string, error) {
	start := time.Now()

	var reqBody extractRequest
	if strings.HasPrefix(image, "http") {
		reqBody.ImageURL = image
	} else {
		if _, err := base64.StdEncoding.DecodeString(image); err != nil {
			return "", fmt.Errorf("invalid base64 image payload: %w", err)
		}
		reqBody.ImageBase64 = image
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal extract request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/extract", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		c.logger.Warn("ocr_extract_failed",
			slog.String("error", err.Error()),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return "", fmt.Errorf("failed to call extract endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("ocr_extract_failed",
			slog.Int("status_code", resp.StatusCode),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return "", fmt.Errorf("extract endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var extractResp extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&extractResp); err != nil {
		return "", fmt.Errorf("failed to decode extract response: %w", err)
	}

	text := strings.TrimSpace(extractResp.Text)
	c.logger.Info("ocr_extract_completed",
		slog.Int("text_length", len(text)),
		slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))

	return text, nil
}

var _ domain.OCRClient = (*Client)(nil)
