package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkmarket/commission-market/internal/api/metrics"
	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
	"github.com/inkmarket/commission-market/internal/core/validate"
)

// CommissionService implements the commission lifecycle.
type CommissionService struct {
	users       ports.UserRepository
	commissions ports.CommissionRepository
	logger      zerolog.Logger
}

func NewCommissionService(users ports.UserRepository, commissions ports.CommissionRepository, logger zerolog.Logger) *CommissionService {
	return &CommissionService{users: users, commissions: commissions, logger: logger}
}

// Create inserts a new commission and appends its id to the artist's
// created_commissions and the user's requested_commissions. The two appends
// are independent single-document updates with no transaction spanning them:
// if either fails the commission is already committed and propagates a
// WriteConflictError naming the side that is missing the reference. There is
// no rollback.
func (s *CommissionService) Create(ctx context.Context, input ports.CreateCommissionInput) (*domain.Commission, error) {
	artistID, err := validate.ID("artistId", input.ArtistID)
	if err != nil {
		return nil, err
	}
	userID, err := validate.ID("userId", input.UserID)
	if err != nil {
		return nil, err
	}
	title, err := validate.Title(input.Title)
	if err != nil {
		return nil, err
	}
	details, err := validate.Details(input.Details)
	if err != nil {
		return nil, err
	}
	price, err := validate.Price(input.Price)
	if err != nil {
		return nil, err
	}

	artist, err := s.users.FindArtistByID(ctx, artistID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	commission := &domain.Commission{
		ArtistID:        artist.ID,
		UserID:          user.ID,
		Title:           title,
		Details:         details,
		Price:           price,
		Status:          domain.StatusPending,
		DateCreated:     time.Now().UTC(),
		ProgressUpdates: []domain.ProgressUpdate{},
	}

	id, err := s.commissions.Create(ctx, commission)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create commission")
		return nil, err
	}

	if err := s.users.AppendCreatedCommission(ctx, artist.ID, id); err != nil {
		s.noteConflict(err)
		s.logger.Error().Err(err).Str("commission_id", id).Str("artist_id", artist.ID).
			Msg("commission committed but not referenced by artist")
		return nil, err
	}
	if err := s.users.AppendRequestedCommission(ctx, user.ID, id); err != nil {
		s.noteConflict(err)
		s.logger.Error().Err(err).Str("commission_id", id).Str("user_id", user.ID).
			Msg("commission committed but not referenced by user")
		return nil, err
	}

	metrics.CommissionsCreatedTotal.Inc()
	s.logger.Info().Str("commission_id", id).Str("artist_id", artist.ID).Str("user_id", user.ID).
		Msg("commission created")

	// Re-read so generated fields are authoritative.
	return s.commissions.FindByID(ctx, id)
}

func (s *CommissionService) Get(ctx context.Context, commissionID string) (*domain.Commission, error) {
	id, err := validate.ID("commissionId", commissionID)
	if err != nil {
		return nil, err
	}
	return s.commissions.FindByID(ctx, id)
}

// UpdateStatus applies a state machine transition and returns the updated
// commission. Completed and Cancelled are terminal.
func (s *CommissionService) UpdateStatus(ctx context.Context, commissionID string, next domain.CommissionStatus) (*domain.Commission, error) {
	id, err := validate.ID("commissionId", commissionID)
	if err != nil {
		return nil, err
	}

	commission, err := s.commissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !commission.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, commission.Status, next)
	}

	if err := s.commissions.UpdateStatus(ctx, id, next); err != nil {
		s.noteConflict(err)
		return nil, err
	}

	metrics.CommissionStatusTransitionsTotal.WithLabelValues(string(next)).Inc()
	s.logger.Info().Str("commission_id", id).Str("status", string(next)).Msg("commission status updated")

	return s.commissions.FindByID(ctx, id)
}

// AddProgressUpdate appends a dated progress note. Terminal commissions no
// longer accept updates.
func (s *CommissionService) AddProgressUpdate(ctx context.Context, commissionID, message string) (*domain.Commission, error) {
	id, err := validate.ID("commissionId", commissionID)
	if err != nil {
		return nil, err
	}
	msg, err := validate.String("message", message)
	if err != nil {
		return nil, err
	}

	commission, err := s.commissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if commission.Status == domain.StatusCompleted || commission.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w (commission is %s)", domain.ErrInvalidTransition, commission.Status)
	}

	upd := domain.ProgressUpdate{Date: time.Now().UTC(), Message: msg}
	if err := s.commissions.AppendProgressUpdate(ctx, id, upd); err != nil {
		s.noteConflict(err)
		return nil, err
	}

	return s.commissions.FindByID(ctx, id)
}

func (s *CommissionService) ListByArtist(ctx context.Context, artistID string) ([]*domain.Commission, error) {
	id, err := validate.ID("artistId", artistID)
	if err != nil {
		return nil, err
	}
	return s.commissions.ListByArtist(ctx, id)
}

func (s *CommissionService) ListByUser(ctx context.Context, userID string) ([]*domain.Commission, error) {
	id, err := validate.ID("userId", userID)
	if err != nil {
		return nil, err
	}
	return s.commissions.ListByUser(ctx, id)
}

func (s *CommissionService) noteConflict(err error) {
	var wc *domain.WriteConflictError
	if errors.As(err, &wc) {
		metrics.WriteConflictsTotal.WithLabelValues(wc.Entity, wc.Op).Inc()
	}
}
