package ports

import "github.com/tiiuae/ghaf-slim-demo/internal/core/domain"

// ListingStore defines the interface for storing and retrieving cached
// output-graph listings.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ListingStore interface {
	// Get retrieves the listing for a given lock-file hash.
	// Returns nil, nil if not found.
	Get(lockHash string) (*domain.Listing, error)

	// Put stores the listing.
	Put(listing domain.Listing) error
}
