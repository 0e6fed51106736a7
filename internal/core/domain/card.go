package domain

// SocialLink is a single external link shown on a card.
type SocialLink struct {
	Site string `json:"site" bson:"site"`
	URL  string `json:"url" bson:"url"`
}

// ProfileSnapshot holds the denormalized artist profile fields carried on a
// card. It is overwritten wholesale on every sync (last-write-wins) and may
// lag the authoritative profile between the triggering write and the sync.
type ProfileSnapshot struct {
	Availability      bool    `json:"availability" bson:"availability"`
	Bio               string  `json:"bio" bson:"bio"`
	TOS               string  `json:"tos" bson:"tos"`
	Rating            float64 `json:"rating" bson:"rating"`
	ModifiableByUsers bool    `json:"modifiable_by_users" bson:"modifiable_by_users"`
}

// Card is the lightweight, independently queryable summary record browse and
// search read. One card per artist (or recommended entity), created alongside
// the owner and refreshed whenever profile or rating fields change.
type Card struct {
	ID                string           `json:"id" bson:"_id,omitempty"`
	Name              string           `json:"name" bson:"name"`
	SocialLinks       []SocialLink     `json:"social_links" bson:"social_links"`
	Portfolio         []string         `json:"portfolio" bson:"portfolio"`
	Tags              []string         `json:"tags" bson:"tags"`
	IsUserRecommended bool             `json:"is_user_recommended" bson:"is_user_recommended"`
	OwnerID           string           `json:"owner_id" bson:"owner_id"`
	Snapshot          *ProfileSnapshot `json:"artist_profile_snapshot,omitempty" bson:"artist_profile_snapshot,omitempty"`
}
