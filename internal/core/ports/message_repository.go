package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	// ListConversation returns the messages exchanged between two users in
	// chronological order, capped at limit (0 means no cap).
	ListConversation(ctx context.Context, userA, userB string, limit int) ([]*domain.Message, error)
}
