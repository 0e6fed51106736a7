package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// CreateReviewInput carries the caller-supplied review fields. Artist and
// user are resolved from the commission, never taken from the caller.
type CreateReviewInput struct {
	CommissionID string
	Rating       float64
	Comment      string
}

// ReviewService defines the review and rating aggregation use cases.
type ReviewService interface {
	Create(ctx context.Context, input CreateReviewInput) (*domain.Review, error)
	Get(ctx context.Context, reviewID string) (*domain.Review, error)
	ListByArtist(ctx context.Context, artistID string) ([]*domain.Review, error)
}
