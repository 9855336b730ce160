package cart

import (
	"encoding/json"
	"time"

	"github.com/gaspacks/backend/internal/domain/shared"
)

// Record is the remote per-account cart row. It holds the account's
// last-known snapshot server-side and is owned by exactly one account.
// Concurrent reconciles are last-writer-wins; there is no version check.
type Record struct {
	shared.BaseEntity
	UserID string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Items  string `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "cart_records"
}

// NewRecord creates a remote cart record seeded with the given lines.
func NewRecord(userID string, lines []LineItem) (*Record, error) {
	r := &Record{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}
	if err := r.SetLines(lines); err != nil {
		return nil, err
	}
	return r, nil
}

// Lines decodes the stored item list.
func (r *Record) Lines() ([]LineItem, error) {
	if r.Items == "" {
		return []LineItem{}, nil
	}
	var lines []LineItem
	if err := json.Unmarshal([]byte(r.Items), &lines); err != nil {
		return nil, shared.NewDomainError("INVALID_CART_RECORD", "Stored cart items are not valid JSON")
	}
	return lines, nil
}

// SetLines replaces the stored item list.
func (r *Record) SetLines(lines []LineItem) error {
	if lines == nil {
		lines = []LineItem{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	r.Items = string(raw)
	r.UpdatedAt = time.Now()
	return nil
}
