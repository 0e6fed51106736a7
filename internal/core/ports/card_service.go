package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// CardService keeps the denormalized cards in sync with authoritative
// profiles and serves browse reads.
type CardService interface {
	// CreateForArtist creates the card for a freshly registered artist and
	// records its id on the profile.
	CreateForArtist(ctx context.Context, artist *domain.User) (*domain.Card, error)
	// Sync overwrites the card snapshot from the artist's current profile.
	// Idempotent; invoked synchronously after every profile or rating write.
	Sync(ctx context.Context, artistID string) error
	Get(ctx context.Context, cardID string) (*domain.Card, error)
	List(ctx context.Context, filter CardFilter) ([]*domain.Card, error)
}
