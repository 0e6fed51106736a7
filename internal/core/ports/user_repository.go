package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// ArtistProfileUpdate carries a partial artist profile update. Nil fields are
// left untouched.
type ArtistProfileUpdate struct {
	Bio          *string
	Portfolio    []string
	PricingInfo  map[string]float64
	Tags         []string
	Availability *bool
	TOS          *string
}

// UserRepository defines persistence operations for users and the embedded
// artist profile. The Append*/Apply* methods are atomic element appends on a
// single document; each verifies that the update matched and modified exactly
// one record and returns a WriteConflictError otherwise. No method spans more
// than one document.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindArtistByID resolves id to a user with the artist role, returning
	// ErrArtistNotFound for missing users and non-artists alike.
	FindArtistByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	AppendRequestedCommission(ctx context.Context, userID, commissionID string) error
	AppendCreatedCommission(ctx context.Context, artistID, commissionID string) error
	AppendReviewGiven(ctx context.Context, userID, reviewID string) error
	// ApplyReviewToArtist appends reviewID to reviews_received and sets the
	// recomputed rating in one document update.
	ApplyReviewToArtist(ctx context.Context, artistID, reviewID string, rating float64) error

	UpdateArtistProfile(ctx context.Context, artistID string, upd ArtistProfileUpdate) error
	SetArtistCardID(ctx context.Context, artistID, cardID string) error
	// SetRole swaps the role field and the artist profile in a single update:
	// promoting attaches the given profile, demoting removes it.
	SetRole(ctx context.Context, userID, role string, profile *domain.ArtistProfile) error

	ListArtistIDs(ctx context.Context) ([]string, error)
}
