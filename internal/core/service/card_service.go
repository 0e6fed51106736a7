package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/inkmarket/commission-market/internal/api/metrics"
	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
	"github.com/inkmarket/commission-market/internal/core/validate"
)

// CardService maintains the denormalized browse cards.
type CardService struct {
	users  ports.UserRepository
	cards  ports.CardRepository
	logger zerolog.Logger
}

func NewCardService(users ports.UserRepository, cards ports.CardRepository, logger zerolog.Logger) *CardService {
	return &CardService{users: users, cards: cards, logger: logger}
}

// CreateForArtist creates the browse card for a freshly registered artist and
// records the card id on the profile.
func (s *CardService) CreateForArtist(ctx context.Context, artist *domain.User) (*domain.Card, error) {
	if !artist.IsArtist() {
		return nil, domain.ErrArtistNotFound
	}

	card := &domain.Card{
		Name:        artist.Username,
		SocialLinks: []domain.SocialLink{},
		Portfolio:   artist.ArtistProfile.Portfolio,
		Tags:        artist.ArtistProfile.Tags,
		OwnerID:     artist.ID,
		Snapshot:    snapshotOf(artist.ArtistProfile, false),
	}

	id, err := s.cards.Create(ctx, card)
	if err != nil {
		s.logger.Error().Err(err).Str("artist_id", artist.ID).Msg("failed to create card")
		return nil, err
	}
	if err := s.users.SetArtistCardID(ctx, artist.ID, id); err != nil {
		s.logger.Error().Err(err).Str("card_id", id).Str("artist_id", artist.ID).
			Msg("card committed but not referenced by artist profile")
		return nil, err
	}

	s.logger.Info().Str("card_id", id).Str("artist_id", artist.ID).Msg("card created")
	return s.cards.FindByID(ctx, id)
}

// Sync overwrites the card snapshot from the artist's current profile.
// Last-write-wins and idempotent: repeated calls with an unchanged profile
// leave the card byte-identical. Invoked synchronously after every profile
// update and rating recompute; a concurrent reader may still observe the
// stale card between the triggering write and this call.
func (s *CardService) Sync(ctx context.Context, artistID string) error {
	artist, err := s.users.FindArtistByID(ctx, artistID)
	if err != nil {
		metrics.CardSyncsTotal.WithLabelValues("error").Inc()
		return err
	}

	cardID := artist.ArtistProfile.CardID
	if cardID == "" {
		metrics.CardSyncsTotal.WithLabelValues("error").Inc()
		return domain.ErrCardNotFound
	}
	card, err := s.cards.FindByID(ctx, cardID)
	if err != nil {
		metrics.CardSyncsTotal.WithLabelValues("error").Inc()
		return err
	}

	snap := snapshotOf(artist.ArtistProfile, card.IsUserRecommended)
	if err := s.cards.UpdateSnapshot(ctx, cardID, *snap); err != nil {
		metrics.CardSyncsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.CardSyncsTotal.WithLabelValues("ok").Inc()
	s.logger.Debug().Str("card_id", cardID).Str("artist_id", artistID).
		Float64("rating", snap.Rating).Msg("card synced")
	return nil
}

func (s *CardService) Get(ctx context.Context, cardID string) (*domain.Card, error) {
	id, err := validate.ID("cardId", cardID)
	if err != nil {
		return nil, err
	}
	return s.cards.FindByID(ctx, id)
}

func (s *CardService) List(ctx context.Context, filter ports.CardFilter) ([]*domain.Card, error) {
	return s.cards.List(ctx, filter)
}

func snapshotOf(p *domain.ArtistProfile, modifiableByUsers bool) *domain.ProfileSnapshot {
	return &domain.ProfileSnapshot{
		Availability:      p.Availability,
		Bio:               p.Bio,
		TOS:               p.TOS,
		Rating:            p.Rating,
		ModifiableByUsers: modifiableByUsers,
	}
}
