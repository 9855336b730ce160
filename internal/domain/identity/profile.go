package identity

import (
	"strings"
	"time"

	"github.com/gaspacks/backend/internal/domain/shared"
)

// AccountStatus gates access to the shop. Transitions happen out-of-band
// (manual approval or the identity-provider webhook); this service only
// reads the field.
type AccountStatus string

const (
	StatusPending AccountStatus = "pending"
	StatusActive  AccountStatus = "active"
)

// Profile is the per-account row synced from the identity provider. The ID
// is the provider's subject, not a locally generated UUID.
type Profile struct {
	ID        string        `gorm:"type:varchar(64);primaryKey"`
	Email     string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName  string        `gorm:"type:varchar(200)"`
	Status    AccountStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Profile) TableName() string {
	return "user_profiles"
}

// NewProfile creates a profile in the pending state.
func NewProfile(id, email, fullName string) (*Profile, error) {
	id = strings.TrimSpace(id)
	email = strings.ToLower(strings.TrimSpace(email))
	if id == "" {
		return nil, shared.NewDomainError("INVALID_PROFILE", "Profile ID is required")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_PROFILE", "Profile email is required")
	}

	now := time.Now()
	return &Profile{
		ID:        id,
		Email:     email,
		FullName:  strings.TrimSpace(fullName),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsActive reports whether the account may enter gated pages.
func (p *Profile) IsActive() bool {
	return p.Status == StatusActive
}
