package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// CardFilter carries the optional browse filters for listing cards.
type CardFilter struct {
	Tag             string // optional: cards carrying this tag
	RecommendedOnly bool   // only user-recommended cards
	AvailableOnly   bool   // only cards whose snapshot reports availability
}

// CardRepository defines persistence operations for the denormalized cards.
type CardRepository interface {
	Create(ctx context.Context, c *domain.Card) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Card, error)
	FindByOwner(ctx context.Context, ownerID string) (*domain.Card, error)
	// UpdateSnapshot overwrites the snapshot fields wholesale (last-write-wins).
	UpdateSnapshot(ctx context.Context, cardID string, snap domain.ProfileSnapshot) error
	List(ctx context.Context, filter CardFilter) ([]*domain.Card, error)
}
