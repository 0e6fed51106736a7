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
)

const collectionCommissions = "commissions"

type CommissionRepository struct {
	col *mongo.Collection
}

func NewCommissionRepository(db *mongo.Database) *CommissionRepository {
	return &CommissionRepository{col: db.Collection(collectionCommissions)}
}

// Create inserts a new commission document and returns its generated id.
func (r *CommissionRepository) Create(ctx context.Context, c *domain.Commission) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (r *CommissionRepository) FindByID(ctx context.Context, id string) (*domain.Commission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Commission
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommissionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommissionRepository) UpdateStatus(ctx context.Context, id string, status domain.CommissionStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return err
	}
	if res.MatchedCount != 1 {
		return &domain.WriteConflictError{Entity: "commission", Op: "set status"}
	}
	return nil
}

func (r *CommissionRepository) AppendProgressUpdate(ctx context.Context, id string, upd domain.ProgressUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"progress_updates": upd}})
	if err != nil {
		return err
	}
	if res.MatchedCount != 1 || res.ModifiedCount != 1 {
		return &domain.WriteConflictError{Entity: "commission", Op: "add progress update"}
	}
	return nil
}

func (r *CommissionRepository) ListByArtist(ctx context.Context, artistID string) ([]*domain.Commission, error) {
	return r.list(ctx, bson.M{"artist_id": artistID})
}

func (r *CommissionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Commission, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *CommissionRepository) list(ctx context.Context, filter bson.M) ([]*domain.Commission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date_created", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Commission
	for cur.Next(ctx) {
		var c domain.Commission
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

// EnsureIndexes creates the lookup indexes on the commissions collection.
func (r *CommissionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "artist_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
