package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

const collectionReviews = "reviews"

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

// Create inserts a new review document and returns its generated id.
func (r *ReviewRepository) Create(ctx context.Context, rev *domain.Review) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rev.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, rev); err != nil {
		return "", err
	}
	return rev.ID, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rev domain.Review
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rev); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// CountByCommissionAndUser returns how many reviews the user has left on the
// commission. The duplicate check counts rather than fetching a single row:
// without a sort, which matching document FindOne surfaces is unspecified,
// and the check must not depend on result order.
func (r *ReviewRepository) CountByCommissionAndUser(ctx context.Context, commissionID, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"commission_id": commissionID, "user_id": userID})
}

func (r *ReviewRepository) ListByArtist(ctx context.Context, artistID string) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"artist_id": artistID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Review
	for cur.Next(ctx) {
		var rev domain.Review
		if err := cur.Decode(&rev); err != nil {
			return nil, err
		}
		out = append(out, &rev)
	}
	return out, cur.Err()
}

// EnsureIndexes creates the lookup indexes on the reviews collection. The
// (commission_id, user_id) index backs the duplicate check; it is not unique
// because the duplicate check deliberately runs after the insert.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "commission_id", Value: 1}, {Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "artist_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
