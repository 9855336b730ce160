package dispensary

import "context"

// Repository provides access to dispensary rows.
type Repository interface {
	// FindAll returns every dispensary in data-source order.
	FindAll(ctx context.Context) ([]Dispensary, error)
	// SearchByAddress returns dispensaries whose address contains the term
	// as a case-insensitive substring.
	SearchByAddress(ctx context.Context, term string) ([]Dispensary, error)
	// SaveBatch inserts the given dispensaries and returns the inserted count.
	SaveBatch(ctx context.Context, dispensaries []*Dispensary) (int, error)
}

// Geocoder resolves a free-text address to a single best-match coordinate
// pair. Implementations return ErrNoMatch when the address cannot be
// resolved.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}
