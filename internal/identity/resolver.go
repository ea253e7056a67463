package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/leadline/leadline-portal/internal/domain"
	"github.com/leadline/leadline-portal/internal/repository"
)

// Context is the resolved account scope for a principal. Both fields are nil
// when the principal has no accessible account; that is a valid outcome, not
// a failure.
type Context struct {
	Account    *domain.ClientAccount
	Membership *domain.TeamMembership
}

// Resolver maps an authenticated principal to the client account it can act
// on, either as direct owner or through a team membership.
type Resolver struct {
	repo repository.AccountRepository
}

// NewResolver creates an identity resolver.
func NewResolver(repo repository.AccountRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve looks up the principal's account. Direct ownership wins; otherwise
// the first team membership (unspecified order) is followed to its account.
func (r *Resolver) Resolve(ctx context.Context, userID string) (*Context, error) {
	owned, err := r.repo.GetClientByOwner(ctx, userID)
	if err == nil {
		return &Context{Account: &owned}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		zap.L().Error("failed to look up owned account", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	membership, err := r.repo.GetMembershipByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Context{}, nil
		}
		zap.L().Error("failed to look up membership", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("resolve membership: %w", err)
	}

	account, err := r.repo.GetClientByID(ctx, membership.ClientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Membership points at a vanished account; treat as no access.
			zap.L().Warn("membership references missing account", zap.String("user_id", userID), zap.Int64("client_id", membership.ClientID))
			return &Context{}, nil
		}
		zap.L().Error("failed to load member account", zap.Int64("client_id", membership.ClientID), zap.Error(err))
		return nil, fmt.Errorf("resolve member account: %w", err)
	}

	zap.L().Debug("identity resolved via membership", zap.String("user_id", userID), zap.Int64("client_id", account.ID))
	return &Context{Account: &account, Membership: &membership}, nil
}
