package domain

import "time"

// CommissionStatus represents the lifecycle state of a commission.
type CommissionStatus string

const (
	StatusPending    CommissionStatus = "Pending"
	StatusInProgress CommissionStatus = "In Progress"
	StatusCompleted  CommissionStatus = "Completed"
	StatusCancelled  CommissionStatus = "Cancelled"
)

// validTransitions defines the allowed state machine transitions.
// Completed and Cancelled are terminal.
var validTransitions = map[CommissionStatus][]CommissionStatus{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s CommissionStatus) CanTransitionTo(next CommissionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ProgressUpdate is a dated note an artist attaches to an in-flight commission.
type ProgressUpdate struct {
	Date    time.Time `json:"date" bson:"date"`
	Message string    `json:"message" bson:"message"`
}

// Commission is a paid work order from a user to an artist. Its id is
// cross-referenced from the artist's created_commissions and the user's
// requested_commissions arrays; those two appends are independent writes
// with no transaction spanning them.
type Commission struct {
	ID              string           `json:"id" bson:"_id,omitempty"`
	ArtistID        string           `json:"artist_id" bson:"artist_id"`
	UserID          string           `json:"user_id" bson:"user_id"`
	Title           string           `json:"title" bson:"title"`
	Details         string           `json:"details" bson:"details"`
	Price           float64          `json:"price" bson:"price"`
	Status          CommissionStatus `json:"status" bson:"status"`
	DateCreated     time.Time        `json:"date_created" bson:"date_created"`
	ProgressUpdates []ProgressUpdate `json:"progress_updates" bson:"progress_updates"`
}
