// Package locator finds retail locations near a shopper, resolving
// street addresses to coordinates at query time.
package locator

import (
	"context"
	"strings"
	"sync"

	"github.com/gaspacks/backend/internal/domain/dispensary"
	"go.uber.org/zap"
)

// nearbyRadiusMiles bounds the Nearby result set.
const nearbyRadiusMiles = 20.0

// Located is a dispensary with its resolved coordinates. DistanceMiles
// is populated only for proximity queries.
type Located struct {
	dispensary.Dispensary
	Coordinates   dispensary.Coordinates `json:"coordinates"`
	DistanceMiles float64                `json:"distance_miles,omitempty"`
}

// SearchResult carries the matched stores plus the map center. The
// center is the first match's coordinates, nil when nothing matched.
type SearchResult struct {
	Stores []Located               `json:"stores"`
	Center *dispensary.Coordinates `json:"center,omitempty"`
}

// Service answers store-locator queries. Geocoding fans out one call
// per row; rows whose address cannot be resolved are dropped rather
// than failing the whole query.
type Service struct {
	repo     dispensary.Repository
	geocoder dispensary.Geocoder
	logger   *zap.Logger
}

// NewService creates a new locator Service
func NewService(repo dispensary.Repository, geocoder dispensary.Geocoder) *Service {
	return &Service{
		repo:     repo,
		geocoder: geocoder,
		logger:   zap.NewNop(),
	}
}

// WithLogger attaches a logger for geocoding diagnostics.
func (s *Service) WithLogger(logger *zap.Logger) *Service {
	s.logger = logger
	return s
}

// Nearby returns stores within the fixed radius of the origin, each
// annotated with its distance. Row order from the data source is kept.
func (s *Service) Nearby(ctx context.Context, origin dispensary.Coordinates) ([]Located, error) {
	stores, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	nearby := make([]Located, 0, len(stores))
	for _, loc := range s.locate(ctx, stores) {
		loc.DistanceMiles = dispensary.DistanceMiles(origin, loc.Coordinates)
		if loc.DistanceMiles <= nearbyRadiusMiles {
			nearby = append(nearby, loc)
		}
	}
	return nearby, nil
}

// Search matches stores by address substring with no radius cut-off and
// centers the result on the first match.
func (s *Service) Search(ctx context.Context, term string) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return &SearchResult{Stores: []Located{}}, nil
	}

	stores, err := s.repo.SearchByAddress(ctx, term)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Stores: s.locate(ctx, stores)}
	if len(result.Stores) > 0 {
		center := result.Stores[0].Coordinates
		result.Center = &center
	}
	return result, nil
}

// ImportEntry is one row of a bulk store import.
type ImportEntry struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// Import bulk-loads store rows, skipping entries that fail validation,
// and returns the number of rows written. Re-importing an existing
// name/address pair updates its contact fields instead of duplicating.
func (s *Service) Import(ctx context.Context, entries []ImportEntry) (int, error) {
	stores := make([]*dispensary.Dispensary, 0, len(entries))
	for _, e := range entries {
		store, err := dispensary.NewDispensary(e.Name, e.Address)
		if err != nil {
			s.logger.Warn("Skipping invalid store row",
				zap.String("name", e.Name),
				zap.Error(err))
			continue
		}
		store.Phone = strings.TrimSpace(e.Phone)
		store.Website = strings.TrimSpace(e.Website)
		stores = append(stores, store)
	}
	if len(stores) == 0 {
		return 0, nil
	}
	return s.repo.SaveBatch(ctx, stores)
}

// locate geocodes every store concurrently. Results are keyed to their
// originating row so out-of-order completion cannot scramble the list;
// unresolvable rows are dropped.
func (s *Service) locate(ctx context.Context, stores []dispensary.Dispensary) []Located {
	resolved := make([]*Located, len(stores))

	var wg sync.WaitGroup
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			coords, err := s.geocoder.Geocode(ctx, stores[i].Address)
			if err != nil {
				s.logger.Debug("Dropping store with unresolvable address",
					zap.String("name", stores[i].Name),
					zap.String("address", stores[i].Address),
					zap.Error(err))
				return
			}
			resolved[i] = &Located{Dispensary: stores[i], Coordinates: coords}
		}(i)
	}
	wg.Wait()

	located := make([]Located, 0, len(stores))
	for _, r := range resolved {
		if r != nil {
			located = append(located, *r)
		}
	}
	return located
}
