package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository on MongoDB. All array
// back-references are written with $push (atomic element append); every
// update verifies the matched/modified counts and surfaces a
// WriteConflictError when the write did not land on exactly one document.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// Create inserts a new user document and re-reads it so generated fields are
// authoritative. Username and email uniqueness is enforced by the indexes.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	u.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	return r.FindByID(ctx, u.ID)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindArtistByID resolves id to a user with the artist role. Missing users
// and non-artists both report ErrArtistNotFound.
func (r *UserRepository) FindArtistByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id, "role": domain.RoleArtist}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArtistNotFound
		}
		return nil, err
	}
	if u.ArtistProfile == nil {
		return nil, domain.ErrArtistNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) AppendRequestedCommission(ctx context.Context, userID, commissionID string) error {
	return r.push(ctx,
		bson.M{"_id": userID},
		"requested_commissions", commissionID,
		"user", "add commission")
}

func (r *UserRepository) AppendCreatedCommission(ctx context.Context, artistID, commissionID string) error {
	return r.push(ctx,
		bson.M{"_id": artistID, "role": domain.RoleArtist},
		"artist_profile.created_commissions", commissionID,
		"artist", "add commission")
}

func (r *UserRepository) AppendReviewGiven(ctx context.Context, userID, reviewID string) error {
	return r.push(ctx,
		bson.M{"_id": userID},
		"reviews_given", reviewID,
		"user", "add review")
}

// ApplyReviewToArtist appends the review id and sets the recomputed rating in
// a single document update, so the count and the average can never disagree
// within the artist document.
func (r *UserRepository) ApplyReviewToArtist(ctx context.Context, artistID, reviewID string, rating float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": artistID, "role": domain.RoleArtist},
		bson.M{
			"$push": bson.M{"artist_profile.reviews_received": reviewID},
			"$set": bson.M{
				"artist_profile.rating": rating,
				"updated_at":            time.Now().UTC(),
			},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount != 1 || res.ModifiedCount != 1 {
		return &domain.WriteConflictError{Entity: "artist", Op: "add review"}
	}
	return nil
}

// UpdateArtistProfile applies the non-nil fields of upd in one $set.
func (r *UserRepository) UpdateArtistProfile(ctx context.Context, artistID string, upd ports.ArtistProfileUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Bio != nil {
		set["artist_profile.bio"] = *upd.Bio
	}
	if upd.Portfolio != nil {
		set["artist_profile.portfolio"] = upd.Portfolio
	}
	if upd.PricingInfo != nil {
		set["artist_profile.pricing_info"] = upd.PricingInfo
	}
	if upd.Tags != nil {
		set["artist_profile.tags"] = upd.Tags
	}
	if upd.Availability != nil {
		set["artist_profile.availability"] = *upd.Availability
	}
	if upd.TOS != nil {
		set["artist_profile.tos"] = *upd.TOS
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": artistID, "role": domain.RoleArtist},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	// ModifiedCount can legitimately be 0 when the new values equal the old.
	if res.MatchedCount != 1 {
		return &domain.WriteConflictError{Entity: "artist", Op: "update profile"}
	}
	return nil
}

func (r *UserRepository) SetArtistCardID(ctx context.Context, artistID, cardID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": artistID, "role": domain.RoleArtist},
		bson.M{"$set": bson.M{"artist_profile.card_id": cardID}})
	if err != nil {
		return err
	}
	if res.MatchedCount != 1 {
		return &domain.WriteConflictError{Entity: "artist", Op: "add card"}
	}
	return nil
}

// SetRole swaps the role and the artist profile in one update, keeping the
// profile-presence invariant at every point in time.
func (r *UserRepository) SetRole(ctx context.Context, userID, role string, profile *domain.ArtistProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{}
	set := bson.M{"role": role, "updated_at": time.Now().UTC()}
	if role == domain.RoleArtist {
		set["artist_profile"] = profile
	} else {
		update["$unset"] = bson.M{"artist_profile": ""}
	}
	update["$set"] = set

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount != 1 {
		return &domain.WriteConflictError{Entity: "user", Op: "change role"}
	}
	return nil
}

func (r *UserRepository) ListArtistIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, bson.M{"role": domain.RoleArtist}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

func (r *UserRepository) push(ctx context.Context, filter bson.M, field, value, entity, op string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$push": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount != 1 || res.ModifiedCount != 1 {
		return &domain.WriteConflictError{Entity: entity, Op: op}
	}
	return nil
}

// EnsureIndexes creates the uniqueness indexes on the users collection.
// Usernames and emails are stored lowercased, so plain unique indexes give
// case-insensitive uniqueness.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
