package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkmarket/commission-market/internal/api/metrics"
	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
	"github.com/inkmarket/commission-market/internal/core/validate"
)

// MessageService implements direct messaging behind the rate-limit gate.
type MessageService struct {
	users    ports.UserRepository
	messages ports.MessageRepository
	limiter  ports.RateLimiter
	logger   zerolog.Logger
}

func NewMessageService(users ports.UserRepository, messages ports.MessageRepository, limiter ports.RateLimiter, logger zerolog.Logger) *MessageService {
	return &MessageService{users: users, messages: messages, limiter: limiter, logger: logger}
}

// Send persists one direct message. The sender's rate-limit window is checked
// before any lookup or write.
func (s *MessageService) Send(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	senderID, err := validate.ID("senderId", input.SenderID)
	if err != nil {
		return nil, err
	}
	recipientID, err := validate.ID("recipientId", input.RecipientID)
	if err != nil {
		return nil, err
	}
	content, err := validate.String("content", input.Content)
	if err != nil {
		return nil, err
	}
	if senderID == recipientID {
		return nil, domain.NewValidationError("recipientId", "cannot message yourself")
	}

	if err := s.limiter.Check(ctx, senderID); err != nil {
		var rl *domain.RateLimitError
		if errors.As(err, &rl) {
			metrics.RateLimitRejectionsTotal.Inc()
			s.logger.Info().Str("sender_id", senderID).Time("reset_at", rl.ResetAt).Msg("message rate limited")
		}
		return nil, err
	}

	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.users.FindByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.Create(ctx, &domain.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Content:     content,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("sender_id", sender.ID).Msg("failed to persist message")
		return nil, err
	}

	metrics.MessagesSentTotal.Inc()
	return msg, nil
}

// Conversation returns the messages exchanged between two users in
// chronological order.
func (s *MessageService) Conversation(ctx context.Context, userA, userB string) ([]*domain.Message, error) {
	a, err := validate.ID("userId", userA)
	if err != nil {
		return nil, err
	}
	b, err := validate.ID("userId", userB)
	if err != nil {
		return nil, err
	}
	return s.messages.ListConversation(ctx, a, b, 0)
}
