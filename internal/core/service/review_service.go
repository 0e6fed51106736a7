package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/inkmarket/commission-market/internal/api/metrics"
	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
	"github.com/inkmarket/commission-market/internal/core/validate"
)

// ReviewService implements review creation and the running rating aggregate.
type ReviewService struct {
	users       ports.UserRepository
	commissions ports.CommissionRepository
	reviews     ports.ReviewRepository
	cards       ports.CardService
	logger      zerolog.Logger
}

func NewReviewService(
	users ports.UserRepository,
	commissions ports.CommissionRepository,
	reviews ports.ReviewRepository,
	cards ports.CardService,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{users: users, commissions: commissions, reviews: reviews, cards: cards, logger: logger}
}

// Create inserts a review for a commission and folds its rating into the
// artist's running average. Artist and user are resolved from the commission,
// so the relationship cannot be spoofed by the caller. The artist update
// (reviews_received + rating) and the user update (reviews_given) are
// independent verified writes; either can fail after the review row is
// committed, leaving it partially cross-referenced with no rollback.
func (s *ReviewService) Create(ctx context.Context, input ports.CreateReviewInput) (*domain.Review, error) {
	commissionID, err := validate.ID("commissionId", input.CommissionID)
	if err != nil {
		return nil, err
	}
	rating, err := validate.Rating(input.Rating)
	if err != nil {
		return nil, err
	}
	comment, err := validate.Comment(input.Comment)
	if err != nil {
		return nil, err
	}

	commission, err := s.commissions.FindByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}
	artist, err := s.users.FindArtistByID(ctx, commission.ArtistID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, commission.UserID)
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		CommissionID: commission.ID,
		ArtistID:     artist.ID,
		UserID:       user.ID,
		Rating:       rating,
		Comment:      comment,
	}
	id, err := s.reviews.Create(ctx, review)
	if err != nil {
		s.logger.Error().Err(err).Str("commission_id", commission.ID).Msg("failed to insert review")
		return nil, err
	}

	// TODO: move this check before the insert (count > 0 instead of > 1).
	// As ordered, a rejected duplicate leaves the freshly inserted review
	// row behind, unreferenced by either party. Kept this way to match the
	// behavior the rest of the system grew around.
	dupes, err := s.reviews.CountByCommissionAndUser(ctx, commission.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if dupes > 1 {
		s.logger.Warn().Str("commission_id", commission.ID).Str("user_id", user.ID).
			Str("orphan_review_id", id).Msg("duplicate review rejected after insert")
		return nil, domain.ErrDuplicateReview
	}

	// Incremental weighted average: exact when the stored rating was itself
	// the exact mean of the prior n-1 ratings; floating error stays within
	// 0.01 absolute over realistic volumes.
	n := len(artist.ArtistProfile.ReviewsReceived) + 1
	newRating := rating
	if n > 1 {
		newRating = artist.ArtistProfile.Rating*float64(n-1)/float64(n) + rating/float64(n)
	}

	if err := s.users.ApplyReviewToArtist(ctx, artist.ID, id, newRating); err != nil {
		s.noteConflict(err)
		s.logger.Error().Err(err).Str("review_id", id).Str("artist_id", artist.ID).
			Msg("review committed but not referenced by artist")
		return nil, err
	}
	if err := s.users.AppendReviewGiven(ctx, user.ID, id); err != nil {
		s.noteConflict(err)
		s.logger.Error().Err(err).Str("review_id", id).Str("user_id", user.ID).
			Msg("review committed but not referenced by user")
		return nil, err
	}

	// Propagate the new rating to the browse card. At-least-once: a failed
	// sync is logged and retried by the next triggering write, not rolled
	// back or re-queued.
	if err := s.cards.Sync(ctx, artist.ID); err != nil {
		s.logger.Warn().Err(err).Str("artist_id", artist.ID).Msg("card sync failed after review")
	}

	metrics.ReviewsCreatedTotal.Inc()
	metrics.ReviewRatings.Observe(rating)
	s.logger.Info().Str("review_id", id).Str("artist_id", artist.ID).
		Float64("rating", rating).Float64("artist_rating", newRating).Msg("review created")

	return s.reviews.FindByID(ctx, id)
}

func (s *ReviewService) Get(ctx context.Context, reviewID string) (*domain.Review, error) {
	id, err := validate.ID("reviewId", reviewID)
	if err != nil {
		return nil, err
	}
	return s.reviews.FindByID(ctx, id)
}

func (s *ReviewService) ListByArtist(ctx context.Context, artistID string) ([]*domain.Review, error) {
	id, err := validate.ID("artistId", artistID)
	if err != nil {
		return nil, err
	}
	return s.reviews.ListByArtist(ctx, id)
}

func (s *ReviewService) noteConflict(err error) {
	var wc *domain.WriteConflictError
	if errors.As(err, &wc) {
		metrics.WriteConflictsTotal.WithLabelValues(wc.Entity, wc.Op).Inc()
	}
}
