package domain

import "time"

// Message is a direct message between two users. Creation is gated by the
// sender's rate-limit window before any lookup or write happens.
type Message struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	SenderID    string    `json:"sender_id" bson:"sender_id"`
	RecipientID string    `json:"recipient_id" bson:"recipient_id"`
	Content     string    `json:"content" bson:"content"`
	SentAt      time.Time `json:"sent_at" bson:"sent_at"`
}
