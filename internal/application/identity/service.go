// Package identity syncs account profiles from the identity provider
// and answers account-status questions for the access gate.
package identity

import (
	"context"
	"errors"

	"github.com/gaspacks/backend/internal/domain/identity"
	"github.com/gaspacks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service reads and writes account profiles. Status reads fail closed:
// any lookup problem reports the account as pending rather than
// granting access.
type Service struct {
	profiles identity.ProfileRepository
	records  identity.IdentityRecordRepository
	logger   *zap.Logger
}

// NewService creates a new identity Service
func NewService(profiles identity.ProfileRepository, records identity.IdentityRecordRepository) *Service {
	return &Service{
		profiles: profiles,
		records:  records,
		logger:   zap.NewNop(),
	}
}

// WithLogger attaches a logger for sync diagnostics.
func (s *Service) WithLogger(logger *zap.Logger) *Service {
	s.logger = logger
	return s
}

// StatusForEmail returns the account status for an email address.
// Unknown accounts and lookup failures both report pending.
func (s *Service) StatusForEmail(ctx context.Context, email string) identity.AccountStatus {
	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Profile lookup failed, treating account as pending",
				zap.String("email", email),
				zap.Error(err))
		}
		return identity.StatusPending
	}
	return profile.Status
}

// SyncFromWebhook upserts the profile row for a provider webhook event.
// Replayed events update email and name only; an already-approved
// account keeps its status.
func (s *Service) SyncFromWebhook(ctx context.Context, id, email, fullName string) error {
	profile, err := identity.NewProfile(id, email, fullName)
	if err != nil {
		return err
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return err
	}
	s.logger.Info("Profile synced from identity provider",
		zap.String("profile_id", profile.ID),
		zap.String("email", profile.Email))
	return nil
}

// SaveIdentity stores a background-check submission for the account.
func (s *Service) SaveIdentity(ctx context.Context, userID string, fields identity.IdentityFields) error {
	record, err := identity.NewIdentityRecord(userID, fields)
	if err != nil {
		return err
	}
	return s.records.Save(ctx, record)
}
