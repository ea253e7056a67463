package repository

import (
	"context"

	"github.com/leadline/leadline-portal/internal/domain"
)

// AccountRepository reads client accounts and team memberships.
type AccountRepository interface {
	GetClientByOwner(ctx context.Context, userID string) (domain.ClientAccount, error)
	GetClientByID(ctx context.Context, clientID int64) (domain.ClientAccount, error)
	// GetMembershipByUser returns the first membership for the user in
	// backend order. At most one row is consulted even if several exist.
	GetMembershipByUser(ctx context.Context, userID string) (domain.TeamMembership, error)
}

// CallRepository mutates persisted call records.
type CallRepository interface {
	UpdateCall(ctx context.Context, callID string, fields map[string]any) (domain.CallRecord, error)
	DeleteCall(ctx context.Context, callID string) error
}

// ConversationRepository appends SMS history.
type ConversationRepository interface {
	InsertMessage(ctx context.Context, msg domain.ConversationMessage) (domain.ConversationMessage, error)
}

// SubscriptionRepository manages browser push registrations.
type SubscriptionRepository interface {
	UpsertSubscription(ctx context.Context, sub domain.PushSubscription) (domain.PushSubscription, error)
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error)
}
