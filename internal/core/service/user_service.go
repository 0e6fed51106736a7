package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
	"github.com/inkmarket/commission-market/internal/core/validate"
)

// UserService implements profile and role use cases.
type UserService struct {
	users  ports.UserRepository
	cards  ports.CardService
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, cards ports.CardService, logger zerolog.Logger) *UserService {
	return &UserService{users: users, cards: cards, logger: logger}
}

func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	id, err := validate.ID("userId", userID)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// UpdateArtistProfile applies a partial profile update and synchronously
// re-syncs the card so browse reads converge. A failed sync is logged, not
// rolled back; the next profile or rating write repeats it.
func (s *UserService) UpdateArtistProfile(ctx context.Context, artistID string, upd ports.ArtistProfileUpdate) (*domain.User, error) {
	id, err := validate.ID("artistId", artistID)
	if err != nil {
		return nil, err
	}

	// Resolve first so a non-artist fails before any write.
	if _, err := s.users.FindArtistByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.users.UpdateArtistProfile(ctx, id, upd); err != nil {
		return nil, err
	}

	if err := s.cards.Sync(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("artist_id", id).Msg("card sync failed after profile update")
	}

	return s.users.FindByID(ctx, id)
}

// ChangeRole transitions a user between roles. The role field and the artist
// profile move in a single document update so the profile-presence invariant
// holds at every point; promoting to artist also creates the browse card.
func (s *UserService) ChangeRole(ctx context.Context, userID, role string) (*domain.User, error) {
	id, err := validate.ID("userId", userID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleUser && role != domain.RoleArtist && role != domain.RoleAdmin {
		return nil, domain.NewValidationError("role", "must be user, artist, or admin")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	var profile *domain.ArtistProfile
	if role == domain.RoleArtist {
		profile = newArtistProfile("", "", nil)
	}
	if err := s.users.SetRole(ctx, id, role, profile); err != nil {
		return nil, err
	}

	updated, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleArtist {
		if _, err := s.cards.CreateForArtist(ctx, updated); err != nil {
			s.logger.Error().Err(err).Str("artist_id", id).Msg("failed to create card for promoted artist")
			return nil, err
		}
		updated, err = s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info().Str("user_id", id).Str("role", role).Msg("user role changed")
	return updated, nil
}
