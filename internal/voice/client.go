package voice

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

// Client calls the voice provider's call-creation REST API.
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

type createCallRequest struct {
	AssistantID        string              `json:"assistantId"`
	Customer           callCustomer        `json:"customer"`
	AssistantOverrides *assistantOverrides `json:"assistantOverrides,omitempty"`
}

type callCustomer struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

type assistantOverrides struct {
	VariableValues map[string]string `json:"variableValues,omitempty"`
}

type createCallResponse struct {
	ID string `json:"id"`
}

// CreateCall asks the provider to place an outbound call and returns the
// provider-assigned call id. Non-2xx responses surface the provider's raw
// error text.
func (c *Client) CreateCall(ctx context.Context, assistantID, number, name string, variables map[string]string) (string, error) {
	body := createCallRequest{
		AssistantID: assistantID,
		Customer:    callCustomer{Number: number, Name: name},
	}
	if len(variables) > 0 {
		body.AssistantOverrides = &assistantOverrides{VariableValues: variables}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal call request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/call", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build call request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send call request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read call response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &domain.ProviderError{Provider: "voice", Message: strings.TrimSpace(string(raw))}
	}

	var parsed createCallResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal call response: %w", err)
	}
	return parsed.ID, nil
}
