package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// SendMessageInput carries one direct message.
type SendMessageInput struct {
	SenderID    string
	RecipientID string
	Content     string
}

// MessageService defines the messaging use cases. Send is gated by the
// sender's rate-limit window before any lookup or write.
type MessageService interface {
	Send(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	Conversation(ctx context.Context, userA, userB string) ([]*domain.Message, error)
}
