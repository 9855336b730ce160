package identity

import (
	"fmt"
	"strings"

	"github.com/gaspacks/backend/internal/domain/shared"
)

// IdentityRecord captures the fields collected for the background-check
// flow: date of birth, composed postal address, SSN, and phone. One row
// per submission, keyed to the submitting account.
type IdentityRecord struct {
	shared.BaseEntity
	UserID      string `gorm:"type:varchar(64);not null;index"`
	DateOfBirth string `gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Address     string `gorm:"type:text;not null"`
	SSN         string `gorm:"type:varchar(11);not null"`
	Phone       string `gorm:"type:varchar(32)"`
}

// TableName returns the table name for GORM
func (IdentityRecord) TableName() string {
	return "user_identity_data"
}

// IdentityFields is the raw submission from the background-check form.
type IdentityFields struct {
	DOBYear      string
	DOBMonth     string
	DOBDay       string
	StreetNumber string
	StreetName   string
	City         string
	State        string
	Zip          string
	SSN          string
	Phone        string
}

// NewIdentityRecord composes the submission into a stored row.
func NewIdentityRecord(userID string, fields IdentityFields) (*IdentityRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, shared.NewDomainError("INVALID_IDENTITY", "User ID is required")
	}
	if fields.DOBYear == "" || fields.DOBMonth == "" || fields.DOBDay == "" {
		return nil, shared.NewDomainError("INVALID_IDENTITY", "Date of birth is required")
	}
	if strings.TrimSpace(fields.SSN) == "" {
		return nil, shared.NewDomainError("INVALID_IDENTITY", "SSN is required")
	}

	return &IdentityRecord{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		DateOfBirth: fmt.Sprintf("%s-%s-%s", fields.DOBYear, fields.DOBMonth, fields.DOBDay),
		Address: fmt.Sprintf("%s %s, %s, %s %s",
			fields.StreetNumber, fields.StreetName, fields.City, fields.State, fields.Zip),
		SSN:   strings.TrimSpace(fields.SSN),
		Phone: strings.TrimSpace(fields.Phone),
	}, nil
}
