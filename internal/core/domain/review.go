package domain

// Review rates a commission. ArtistID and UserID are derived from the
// commission at creation time, never supplied by the caller.
type Review struct {
	ID           string  `json:"id" bson:"_id,omitempty"`
	CommissionID string  `json:"commission_id" bson:"commission_id"`
	ArtistID     string  `json:"artist_id" bson:"artist_id"`
	UserID       string  `json:"user_id" bson:"user_id"`
	Rating       float64 `json:"rating" bson:"rating"`
	Comment      string  `json:"comment" bson:"comment"`
}
