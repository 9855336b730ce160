package dispensary

import "github.com/gaspacks/backend/internal/domain/shared"

var (
	// ErrNoMatch indicates the geocoder found no result for an address.
	ErrNoMatch = shared.NewDomainError("GEOCODE_NO_MATCH", "No coordinates found for address")
)
