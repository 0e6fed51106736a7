package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// UserService defines profile and role use cases.
type UserService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	// UpdateArtistProfile applies a partial profile update and synchronously
	// re-syncs the artist's card.
	UpdateArtistProfile(ctx context.Context, artistID string, upd ArtistProfileUpdate) (*domain.User, error)
	// ChangeRole transitions the user's role, attaching or removing the
	// artist profile in the same update. Promoting to artist also creates
	// the card.
	ChangeRole(ctx context.Context, userID, role string) (*domain.User, error)
}
