// Package messaging sends outbound SMS through the messaging provider and
// records each sent text in the conversation log.
package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadline/leadline-portal/internal/config"
	"github.com/leadline/leadline-portal/internal/domain"
	"github.com/leadline/leadline-portal/internal/phone"
	"github.com/leadline/leadline-portal/internal/repository"
)

// MessageSender delivers one text and returns the provider message id.
type MessageSender interface {
	SendMessage(ctx context.Context, to, from, text string) (string, error)
}

// SendRequest describes one outbound SMS.
type SendRequest struct {
	To     string
	Text   string
	From   string
	LeadID *int64
}

// SendResult carries the provider's message identifier.
type SendResult struct {
	MessageID string `json:"message_id"`
}

// Service dispatches SMS and appends conversation history.
type Service struct {
	cfg           config.Config
	client        MessageSender
	conversations repository.ConversationRepository
}

// NewService creates the messaging service.
func NewService(cfg config.Config, client MessageSender, conversations repository.ConversationRepository) *Service {
	return &Service{cfg: cfg, client: client, conversations: conversations}
}

// SendSMS validates, normalizes, delivers through the provider, then logs the
// message. The log write runs only after provider success and is best-effort:
// a failed insert is reported through the log, never to the caller. The two
// steps are not transactional.
func (s *Service) SendSMS(ctx context.Context, req SendRequest) (*SendResult, error) {
	if strings.TrimSpace(req.To) == "" || strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("to and text are required: %w", domain.ErrInvalidInput)
	}

	to := phone.NormalizeWithCountry(req.To, s.cfg.DefaultCountryCode)
	from := req.From
	if from == "" {
		from = s.cfg.SMSFromNumber
	}
	if from != "" {
		from = phone.NormalizeWithCountry(from, s.cfg.DefaultCountryCode)
	}

	messageID, err := s.client.SendMessage(ctx, to, from, req.Text)
	if err != nil {
		zap.L().Error("sms dispatch failed", zap.String("to", to), zap.Error(err))
		return nil, fmt.Errorf("send sms: %w", err)
	}

	msg := domain.ConversationMessage{
		ID:            uuid.NewString(),
		LeadID:        req.LeadID,
		Role:          domain.RoleAssistant,
		Content:       req.Text,
		PhoneNumber:   to,
		IsUnknownLead: req.LeadID == nil,
	}
	if _, err := s.conversations.InsertMessage(ctx, msg); err != nil {
		zap.L().Warn("conversation log write failed after sms send",
			zap.String("to", to), zap.String("message_id", messageID), zap.Error(err))
	}

	zap.L().Info("sms dispatched", zap.String("to", to), zap.String("message_id", messageID))
	return &SendResult{MessageID: messageID}, nil
}
