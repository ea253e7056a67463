package domain

import "time"

// ClientAccount represents a client organization inside the portal. An
// account is either owned directly by a user or reached through a team
// membership.
type ClientAccount struct {
	ID          int64
	Name        string
	OwnerUserID *string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamMembership grants a non-owning user access to a client account.
type TeamMembership struct {
	ID        int64
	UserID    string
	ClientID  int64
	Role      string
	CreatedAt time.Time
}
