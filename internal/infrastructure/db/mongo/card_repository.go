package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
)

const collectionCards = "cards"

type CardRepository struct {
	col *mongo.Collection
}

func NewCardRepository(db *mongo.Database) *CardRepository {
	return &CardRepository{col: db.Collection(collectionCards)}
}

func (r *CardRepository) Create(ctx context.Context, c *domain.Card) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (r *CardRepository) FindByID(ctx context.Context, id string) (*domain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Card
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CardRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Card
	if err := r.col.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdateSnapshot overwrites the snapshot wholesale. Re-syncing an unchanged
// profile modifies nothing, so only the match count is verified.
func (r *CardRepository) UpdateSnapshot(ctx context.Context, cardID string, snap domain.ProfileSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": cardID},
		bson.M{"$set": bson.M{"artist_profile_snapshot": snap}})
	if err != nil {
		return err
	}
	if res.MatchedCount != 1 {
		return &domain.WriteConflictError{Entity: "card", Op: "update snapshot"}
	}
	return nil
}

func (r *CardRepository) List(ctx context.Context, filter ports.CardFilter) ([]*domain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	if filter.RecommendedOnly {
		query["is_user_recommended"] = true
	}
	if filter.AvailableOnly {
		query["artist_profile_snapshot.availability"] = true
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Card
	for cur.Next(ctx) {
		var c domain.Card
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

// EnsureIndexes creates the lookup indexes on the cards collection.
func (r *CardRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
