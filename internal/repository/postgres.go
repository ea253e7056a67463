package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadline/leadline-portal/internal/domain"
)

// Compile-time interface assertions.
var (
	_ AccountRepository      = (*PostgresAccountRepo)(nil)
	_ CallRepository         = (*PostgresCallRepo)(nil)
	_ ConversationRepository = (*PostgresConversationRepo)(nil)
	_ SubscriptionRepository = (*PostgresSubscriptionRepo)(nil)
)

// PostgresAccountRepo implements AccountRepository on pgx.
type PostgresAccountRepo struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepo(pool *pgxpool.Pool) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: pool}
}

const getClientByOwnerSQL = `SELECT id, name, owner_user_id, status, created_at, updated_at
FROM client_accounts WHERE owner_user_id = $1 LIMIT 1`

func (r *PostgresAccountRepo) GetClientByOwner(ctx context.Context, userID string) (domain.ClientAccount, error) {
	var acct domain.ClientAccount
	row := r.db.QueryRow(ctx, getClientByOwnerSQL, userID)
	if err := row.Scan(&acct.ID, &acct.Name, &acct.OwnerUserID, &acct.Status, &acct.CreatedAt, &acct.UpdatedAt); err != nil {
		return domain.ClientAccount{}, fmt.Errorf("get client by owner: %w", err)
	}
	return acct, nil
}

const getClientByIDSQL = `SELECT id, name, owner_user_id, status, created_at, updated_at
FROM client_accounts WHERE id = $1`

func (r *PostgresAccountRepo) GetClientByID(ctx context.Context, clientID int64) (domain.ClientAccount, error) {
	var acct domain.ClientAccount
	row := r.db.QueryRow(ctx, getClientByIDSQL, clientID)
	if err := row.Scan(&acct.ID, &acct.Name, &acct.OwnerUserID, &acct.Status, &acct.CreatedAt, &acct.UpdatedAt); err != nil {
		return domain.ClientAccount{}, fmt.Errorf("get client by id: %w", err)
	}
	return acct, nil
}

const getMembershipByUserSQL = `SELECT id, user_id, client_id, role, created_at
FROM team_memberships WHERE user_id = $1 LIMIT 1`

func (r *PostgresAccountRepo) GetMembershipByUser(ctx context.Context, userID string) (domain.TeamMembership, error) {
	var m domain.TeamMembership
	row := r.db.QueryRow(ctx, getMembershipByUserSQL, userID)
	if err := row.Scan(&m.ID, &m.UserID, &m.ClientID, &m.Role, &m.CreatedAt); err != nil {
		return domain.TeamMembership{}, fmt.Errorf("get membership: %w", err)
	}
	return m, nil
}

// PostgresCallRepo implements CallRepository.
type PostgresCallRepo struct {
	db *pgxpool.Pool
}

func NewPostgresCallRepo(pool *pgxpool.Pool) *PostgresCallRepo {
	return &PostgresCallRepo{db: pool}
}

// callColumns lists the mutable columns of call_records in the order updates
// are applied. Anything outside this set is dropped from a partial update.
var callColumns = []string{
	"status",
	"notes",
	"summary",
	"duration_seconds",
	"recording_url",
	"started_at",
	"ended_at",
}

const callRecordReturning = `RETURNING id, client_id, lead_id, status, direction, from_number, to_number,
duration_seconds, summary, notes, recording_url, started_at, ended_at, created_at, updated_at`

func (r *PostgresCallRepo) UpdateCall(ctx context.Context, callID string, fields map[string]any) (domain.CallRecord, error) {
	var (
		set  []string
		args []any
	)
	for _, col := range callColumns {
		if v, ok := fields[col]; ok {
			args = append(args, v)
			set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
		}
	}
	if len(set) == 0 {
		return domain.CallRecord{}, fmt.Errorf("update call: %w", domain.ErrInvalidInput)
	}
	args = append(args, callID)

	query := fmt.Sprintf("UPDATE call_records SET %s, updated_at = now() WHERE id = $%d %s",
		strings.Join(set, ", "), len(args), callRecordReturning)

	var rec domain.CallRecord
	row := r.db.QueryRow(ctx, query, args...)
	if err := row.Scan(
		&rec.ID,
		&rec.ClientID,
		&rec.LeadID,
		&rec.Status,
		&rec.Direction,
		&rec.FromNumber,
		&rec.ToNumber,
		&rec.DurationSeconds,
		&rec.Summary,
		&rec.Notes,
		&rec.Recording,
		&rec.StartedAt,
		&rec.EndedAt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return domain.CallRecord{}, fmt.Errorf("update call: %w", err)
	}
	return rec, nil
}

func (r *PostgresCallRepo) DeleteCall(ctx context.Context, callID string) error {
	// Deleting an unknown id is a no-op, not an error.
	if _, err := r.db.Exec(ctx, `DELETE FROM call_records WHERE id = $1`, callID); err != nil {
		return fmt.Errorf("delete call: %w", err)
	}
	return nil
}

// PostgresConversationRepo implements ConversationRepository.
type PostgresConversationRepo struct {
	db *pgxpool.Pool
}

func NewPostgresConversationRepo(pool *pgxpool.Pool) *PostgresConversationRepo {
	return &PostgresConversationRepo{db: pool}
}

const insertMessageSQL = `INSERT INTO conversation_messages (id, lead_id, role, content, phone_number, is_unknown_lead)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, lead_id, role, content, phone_number, is_unknown_lead, created_at`

func (r *PostgresConversationRepo) InsertMessage(ctx context.Context, msg domain.ConversationMessage) (domain.ConversationMessage, error) {
	var inserted domain.ConversationMessage
	row := r.db.QueryRow(ctx, insertMessageSQL, msg.ID, msg.LeadID, msg.Role, msg.Content, msg.PhoneNumber, msg.IsUnknownLead)
	if err := row.Scan(
		&inserted.ID,
		&inserted.LeadID,
		&inserted.Role,
		&inserted.Content,
		&inserted.PhoneNumber,
		&inserted.IsUnknownLead,
		&inserted.CreatedAt,
	); err != nil {
		return domain.ConversationMessage{}, fmt.Errorf("insert message: %w", err)
	}
	return inserted, nil
}

// PostgresSubscriptionRepo implements SubscriptionRepository.
type PostgresSubscriptionRepo struct {
	db *pgxpool.Pool
}

func NewPostgresSubscriptionRepo(pool *pgxpool.Pool) *PostgresSubscriptionRepo {
	return &PostgresSubscriptionRepo{db: pool}
}

// Endpoint is the unique key: a re-registered endpoint is handed to the most
// recent subscriber, keys and all.
const upsertSubscriptionSQL = `INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth, created_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (endpoint) DO UPDATE SET user_id = EXCLUDED.user_id, p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth, created_at = now()
RETURNING id, user_id, endpoint, p256dh, auth, created_at`

func (r *PostgresSubscriptionRepo) UpsertSubscription(ctx context.Context, sub domain.PushSubscription) (domain.PushSubscription, error) {
	var saved domain.PushSubscription
	row := r.db.QueryRow(ctx, upsertSubscriptionSQL, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth)
	if err := row.Scan(&saved.ID, &saved.UserID, &saved.Endpoint, &saved.P256dh, &saved.Auth, &saved.CreatedAt); err != nil {
		return domain.PushSubscription{}, fmt.Errorf("upsert subscription: %w", err)
	}
	return saved, nil
}

const listSubscriptionsSQL = `SELECT id, user_id, endpoint, p256dh, auth, created_at
FROM push_subscriptions WHERE user_id = $1 ORDER BY created_at`

func (r *PostgresSubscriptionRepo) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	rows, err := r.db.Query(ctx, listSubscriptionsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []domain.PushSubscription
	for rows.Next() {
		var sub domain.PushSubscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}
