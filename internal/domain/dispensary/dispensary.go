package dispensary

import (
	"strings"

	"github.com/gaspacks/backend/internal/domain/shared"
)

// Dispensary represents one physical retail location. The resolved
// latitude/longitude is not persisted; it is obtained by geocoding the
// address at query time.
type Dispensary struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(200);not null;uniqueIndex:idx_dispensary_name_address,priority:1" json:"name"`
	Address string `gorm:"type:varchar(500);not null;uniqueIndex:idx_dispensary_name_address,priority:2" json:"address"`
	Phone   string `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Website string `gorm:"type:varchar(255)" json:"website,omitempty"`
}

// TableName returns the table name for GORM
func (Dispensary) TableName() string {
	return "dispensaries"
}

// NewDispensary creates a dispensary row.
func NewDispensary(name, address string) (*Dispensary, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_DISPENSARY", "Dispensary name is required")
	}
	if address == "" {
		return nil, shared.NewDomainError("INVALID_DISPENSARY", "Dispensary address is required")
	}
	return &Dispensary{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    address,
	}, nil
}
