package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// CommissionRepository defines persistence operations for commissions.
type CommissionRepository interface {
	// Create inserts the commission and returns its generated id.
	Create(ctx context.Context, c *domain.Commission) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Commission, error)
	UpdateStatus(ctx context.Context, id string, status domain.CommissionStatus) error
	AppendProgressUpdate(ctx context.Context, id string, upd domain.ProgressUpdate) error
	ListByArtist(ctx context.Context, artistID string) ([]*domain.Commission, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Commission, error)
}
