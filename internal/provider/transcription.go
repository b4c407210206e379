package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"certapi/internal/config"
)

// transcriptionClient posts raw audio to a speech-to-text provider
// (Deepgram-style API: bytes in, nested transcript JSON out).
type transcriptionClient struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// NewTranscriber constructs the HTTP-backed transcription client.
func NewTranscriber(cfg config.ProviderConfig) Transcriber {
	return &transcriptionClient{
		httpClient: &http.Client{
			Timeout:   cfg.TranscriptionTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		url:    cfg.TranscriptionURL,
		apiKey: cfg.TranscriptionAPIKey,
	}
}

type transcriptionResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe sends the audio bytes and returns the first-channel transcript.
// An empty transcript is returned as-is; the extractor treats it as a miss.
func (c *transcriptionClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"?smart_format=true", bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", mimeType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("transcription returned status %d", resp.StatusCode)
	}

	var decoded transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(decoded.Results.Channels) == 0 || len(decoded.Results.Channels[0].Alternatives) == 0 {
		return "", fmt.Errorf("%w: no transcript alternatives", ErrMalformedResponse)
	}
	return decoded.Results.Channels[0].Alternatives[0].Transcript, nil
}
