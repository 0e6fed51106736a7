package domain

import "time"

const (
	RoleUser   = "user"
	RoleArtist = "artist"
	RoleAdmin  = "admin"
)

// ArtistProfile is the artist-specific substructure embedded in a User.
// It exists exactly when Role == RoleArtist; role transitions swap the
// role field and this profile in the same document update.
type ArtistProfile struct {
	Bio                string             `json:"bio" bson:"bio"`
	Portfolio          []string           `json:"portfolio" bson:"portfolio"`
	PricingInfo        map[string]float64 `json:"pricing_info" bson:"pricing_info"`
	Tags               []string           `json:"tags" bson:"tags"`
	Availability       bool               `json:"availability" bson:"availability"`
	TOS                string             `json:"tos" bson:"tos"`
	Rating             float64            `json:"rating" bson:"rating"`
	CreatedCommissions []string           `json:"created_commissions" bson:"created_commissions"`
	ReviewsReceived    []string           `json:"reviews_received" bson:"reviews_received"`
	CardID             string             `json:"card_id" bson:"card_id"`
}

// User models an account in the marketplace. Artists carry an embedded
// ArtistProfile; plain users and admins do not.
type User struct {
	ID                   string         `json:"id" bson:"_id,omitempty"`
	Role                 string         `json:"role" bson:"role"`
	Username             string         `json:"username" bson:"username"`
	Email                string         `json:"email" bson:"email"`
	PasswordHash         string         `json:"-" bson:"password_hash"`
	RequestedCommissions []string       `json:"requested_commissions" bson:"requested_commissions"`
	ReviewsGiven         []string       `json:"reviews_given" bson:"reviews_given"`
	ArtistProfile        *ArtistProfile `json:"artist_profile,omitempty" bson:"artist_profile,omitempty"`
	CreatedAt            time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at" bson:"updated_at"`
}

// IsArtist reports whether the user carries the artist role and profile.
func (u *User) IsArtist() bool {
	return u.Role == RoleArtist && u.ArtistProfile != nil
}
