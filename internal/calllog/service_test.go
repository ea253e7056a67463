package calllog_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/leadline/leadline-portal/internal/calllog"
	"github.com/leadline/leadline-portal/internal/domain"
)

func TestUpdate(t *testing.T) {
	repo := &memoryCallRepo{records: map[string]domain.CallRecord{
		"call-1": {ID: "call-1", ClientID: 7, Status: "completed"},
	}}
	svc := calllog.NewService(repo)

	rec, err := svc.Update(context.Background(), "call-1", map[string]any{"notes": "follow up Monday"})
	require.NoError(t, err)
	require.Equal(t, "follow up Monday", rec.Notes)
}

func TestUpdateNotFound(t *testing.T) {
	svc := calllog.NewService(&memoryCallRepo{records: map[string]domain.CallRecord{}})

	_, err := svc.Update(context.Background(), "missing", map[string]any{"notes": "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateValidation(t *testing.T) {
	repo := &memoryCallRepo{}
	svc := calllog.NewService(repo)

	_, err := svc.Update(context.Background(), "", map[string]any{"notes": "x"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(context.Background(), "call-1", nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Zero(t, repo.updates)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := &memoryCallRepo{records: map[string]domain.CallRecord{
		"call-1": {ID: "call-1"},
	}}
	svc := calllog.NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), "call-1"))
	// Second delete of the same id is a silent no-op.
	require.NoError(t, svc.Delete(context.Background(), "call-1"))
	require.NoError(t, svc.Delete(context.Background(), "never-existed"))
}

type memoryCallRepo struct {
	records map[string]domain.CallRecord
	updates int
}

func (m *memoryCallRepo) UpdateCall(ctx context.Context, callID string, fields map[string]any) (domain.CallRecord, error) {
	m.updates++
	rec, ok := m.records[callID]
	if !ok {
		return domain.CallRecord{}, pgx.ErrNoRows
	}
	if v, ok := fields["notes"].(string); ok {
		rec.Notes = v
	}
	if v, ok := fields["status"].(string); ok {
		rec.Status = v
	}
	m.records[callID] = rec
	return rec, nil
}

func (m *memoryCallRepo) DeleteCall(ctx context.Context, callID string) error {
	delete(m.records, callID)
	return nil
}
