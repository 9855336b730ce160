package identity

import "context"

// ProfileRepository provides access to account profiles.
type ProfileRepository interface {
	// FindByEmail returns the profile, or shared.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	// Upsert inserts the profile or updates email/full name on ID conflict.
	// The status of an existing row is left untouched.
	Upsert(ctx context.Context, profile *Profile) error
}

// IdentityRecordRepository persists background-check submissions.
type IdentityRecordRepository interface {
	Save(ctx context.Context, record *IdentityRecord) error
}
