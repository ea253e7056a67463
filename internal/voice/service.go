// Package voice bridges the portal to the telephony provider: it initiates
// outbound calls over the provider's REST API and produces the call-routing
// documents the provider requests through its webhook.
package voice

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/leadline/leadline-portal/internal/config"
	"github.com/leadline/leadline-portal/internal/domain"
	"github.com/leadline/leadline-portal/internal/phone"
)

// CallCreator places a call through the provider and returns its call id.
type CallCreator interface {
	CreateCall(ctx context.Context, assistantID, number, name string, variables map[string]string) (string, error)
}

// OutboundCallRequest describes a portal-initiated call.
type OutboundCallRequest struct {
	Destination string
	DisplayName string
	Variables   map[string]string
}

// OutboundCallResult reports the outcome of a call initiation. Dispatched is
// false when calling is not configured; that is a graceful degrade, not an
// error.
type OutboundCallResult struct {
	Dispatched bool   `json:"dispatched"`
	CallID     string `json:"call_id,omitempty"`
}

// Service is the call-control half of the gateway. It holds no per-call
// state; every invocation stands alone.
type Service struct {
	cfg    config.Config
	client CallCreator
}

// NewService creates the call-control service.
func NewService(cfg config.Config, client CallCreator) *Service {
	return &Service{cfg: cfg, client: client}
}

// InitiateOutboundCall normalizes the destination and dispatches a call via
// the provider. Missing credentials yield a non-dispatched result with no
// error so the portal can degrade.
func (s *Service) InitiateOutboundCall(ctx context.Context, req OutboundCallRequest) (*OutboundCallResult, error) {
	if strings.TrimSpace(req.Destination) == "" {
		return nil, fmt.Errorf("destination: %w", domain.ErrInvalidInput)
	}

	if !s.cfg.VoiceConfigured() {
		zap.L().Info("voice provider not configured, skipping outbound call")
		return &OutboundCallResult{Dispatched: false}, nil
	}

	number := phone.NormalizeWithCountry(req.Destination, s.cfg.DefaultCountryCode)
	callID, err := s.client.CreateCall(ctx, s.cfg.VoiceAssistantID, number, req.DisplayName, req.Variables)
	if err != nil {
		zap.L().Error("outbound call failed", zap.String("number", number), zap.Error(err))
		return nil, fmt.Errorf("initiate call: %w", err)
	}

	zap.L().Info("outbound call dispatched", zap.String("number", number), zap.String("call_id", callID))
	return &OutboundCallResult{Dispatched: true, CallID: callID}, nil
}

// RoutingResponse builds the call-control document returned to the provider's
// webhook. It is pure and idempotent: providers may retry delivery of the
// same webhook and must always get a parsable document back.
//
// Caller-id precedence is the configured override, then the hint, then the
// normalized destination itself.
func (s *Service) RoutingResponse(destinationRaw, callerIDHint string) []byte {
	if strings.TrimSpace(destinationRaw) == "" {
		return spokenErrorDocument("We're sorry, the number you are trying to reach is unavailable. Please try again later. Goodbye.")
	}

	number := phone.NormalizeWithCountry(destinationRaw, s.cfg.DefaultCountryCode)

	callerID := s.cfg.VoiceCallerID
	if callerID == "" {
		callerID = strings.TrimSpace(callerIDHint)
	}
	if callerID == "" {
		callerID = number
	}

	return dialDocument(number, callerID)
}
