// Package calllog mutates persisted call records on behalf of an
// authenticated portal user.
package calllog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/leadline/leadline-portal/internal/domain"
	"github.com/leadline/leadline-portal/internal/repository"
)

// Service applies field-level updates and deletes to call records.
//
// Mutations are scoped only by authentication, not by account: any signed-in
// user can touch any record by id.
// TODO: scope call mutations to the caller's client account.
type Service struct {
	repo repository.CallRepository
}

// NewService creates the call-log service.
func NewService(repo repository.CallRepository) *Service {
	return &Service{repo: repo}
}

// Update applies a partial field update and returns the updated record.
func (s *Service) Update(ctx context.Context, callID string, fields map[string]any) (*domain.CallRecord, error) {
	if callID == "" || len(fields) == 0 {
		return nil, fmt.Errorf("call id and fields are required: %w", domain.ErrInvalidInput)
	}

	rec, err := s.repo.UpdateCall(ctx, callID, fields)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("call %s: %w", callID, domain.ErrNotFound)
		}
		zap.L().Error("call update failed", zap.String("call_id", callID), zap.Error(err))
		return nil, fmt.Errorf("update call: %w", err)
	}
	return &rec, nil
}

// Delete removes a call record. Deleting an id that does not exist is
// indistinguishable from a successful no-op.
func (s *Service) Delete(ctx context.Context, callID string) error {
	if callID == "" {
		return fmt.Errorf("call id is required: %w", domain.ErrInvalidInput)
	}
	if err := s.repo.DeleteCall(ctx, callID); err != nil {
		zap.L().Error("call delete failed", zap.String("call_id", callID), zap.Error(err))
		return fmt.Errorf("delete call: %w", err)
	}
	return nil
}
