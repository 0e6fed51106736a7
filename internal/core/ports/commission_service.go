package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// CreateCommissionInput carries all data needed to request a commission.
type CreateCommissionInput struct {
	ArtistID string
	UserID   string
	Title    string
	Details  string
	Price    float64
}

// CommissionService defines the commission lifecycle use cases.
type CommissionService interface {
	// Create inserts the commission and cross-references it on both parties.
	// The returned commission is re-read from the store so generated fields
	// are authoritative. A WriteConflictError means the commission exists but
	// is not referenced by one or both parties.
	Create(ctx context.Context, input CreateCommissionInput) (*domain.Commission, error)
	Get(ctx context.Context, commissionID string) (*domain.Commission, error)
	// UpdateStatus applies a state machine transition. Who may request which
	// transition is enforced at the HTTP layer, not here.
	UpdateStatus(ctx context.Context, commissionID string, next domain.CommissionStatus) (*domain.Commission, error)
	AddProgressUpdate(ctx context.Context, commissionID, message string) (*domain.Commission, error)
	ListByArtist(ctx context.Context, artistID string) ([]*domain.Commission, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Commission, error)
}
