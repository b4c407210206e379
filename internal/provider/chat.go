package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// chatClient is the shared plumbing for the chat-completion style classifiers
// (authenticity scorer and indicator mapper). It sends a system prompt plus
// the user content and returns the raw JSON object the model answered with.
type chatClient struct {
	httpClient *http.Client
	url        string
	apiKey     string
	model      string
}

func newChatClient(cfg chatConfig) *chatClient {
	return &chatClient{
		httpClient: &http.Client{
			Timeout:   cfg.timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		url:    cfg.url,
		apiKey: cfg.apiKey,
		model:  cfg.model,
	}
}

type chatConfig struct {
	url     string
	apiKey  string
	model   string
	timeout time.Duration
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete posts prompt+content and decodes the model's JSON payload into out.
// Any non-2xx status, transport failure, or schema mismatch is an error; the
// caller substitutes a degraded sentinel.
func (c *chatClient) complete(ctx context.Context, prompt, content string, out any) error {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: content},
		},
	}
	req.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(decoded.Choices) == 0 {
		return fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	if err := json.Unmarshal([]byte(decoded.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
