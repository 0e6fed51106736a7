package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	// Create inserts the review and returns its generated id.
	Create(ctx context.Context, r *domain.Review) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	// CountByCommissionAndUser returns how many reviews the user has left on
	// the commission. Backs the duplicate check, which runs after the insert
	// and therefore needs an order-independent answer, not a single row.
	CountByCommissionAndUser(ctx context.Context, commissionID, userID string) (int64, error)
	ListByArtist(ctx context.Context, artistID string) ([]*domain.Review, error)
}
