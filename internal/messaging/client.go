package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/leadline/leadline-portal/internal/domain"
)

// Client delivers texts through the messaging provider's REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a provider client with bearer-token credentials.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{},
	}
}

type sendMessageRequest struct {
	To   string `json:"to"`
	From string `json:"from,omitempty"`
	Text string `json:"text"`
}

type sendMessageResponse struct {
	ID string `json:"id"`
}

// SendMessage submits one outbound SMS and returns the provider message id.
func (c *Client) SendMessage(ctx context.Context, to, from, text string) (string, error) {
	payload, err := json.Marshal(sendMessageRequest{To: to, From: from, Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal message request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send message request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read message response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &domain.ProviderError{Provider: "sms", Message: strings.TrimSpace(string(raw))}
	}

	var parsed sendMessageResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal message response: %w", err)
	}
	return parsed.ID, nil
}
