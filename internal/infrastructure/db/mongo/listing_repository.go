package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estateview/realty-api/internal/core/domain"
)

const (
	listingsCollection = "listings"
	buyingsCollection  = "buyings"
)

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(listingsCollection)}
}

type mongoListing struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	UserRef   string             `bson:"userRef"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// FindByID retrieves a listing by its object id.
func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoListing
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return &domain.Listing{
		ID:        ml.ID.Hex(),
		Name:      ml.Name,
		UserRef:   ml.UserRef,
		CreatedAt: ml.CreatedAt.UTC(),
	}, nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// DeleteByOwner removes every listing referencing ownerID.
func (r *ListingRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"userRef": ownerID})
	if err != nil {
		return 0, fmt.Errorf("delete listings by owner: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the owner index used by cleanup.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "userRef", Value: 1}}})
	return err
}

type BuyingRepository struct {
	col *mongo.Collection
}

func NewBuyingRepository(db *mongo.Database) *BuyingRepository {
	return &BuyingRepository{col: db.Collection(buyingsCollection)}
}

type mongoBuying struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ListingID       string             `bson:"listingId"`
	BuyerID         string             `bson:"buyerId"`
	OfferPrice      float64            `bson:"offerPrice"`
	TransactionType string             `bson:"transactionType"`
	Duration        *int               `bson:"duration,omitempty"`
	Status          string             `bson:"status,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

// ListByBuyer returns the buyer's offers, newest first.
func (r *BuyingRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*domain.Buying, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"buyerId": buyerID}, findNewestFirst())
	if err != nil {
		return nil, fmt.Errorf("list buyings: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoBuying
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode buyings: %w", err)
	}

	out := make([]*domain.Buying, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.Buying{
			ID:              d.ID.Hex(),
			ListingID:       d.ListingID,
			BuyerID:         d.BuyerID,
			OfferPrice:      d.OfferPrice,
			TransactionType: d.TransactionType,
			Duration:        d.Duration,
			Status:          d.Status,
			CreatedAt:       d.CreatedAt.UTC(),
		})
	}
	return out, nil
}

// DeleteByBuyer removes every offer made by buyerID.
func (r *BuyingRepository) DeleteByBuyer(ctx context.Context, buyerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"buyerId": buyerID})
	if err != nil {
		return 0, fmt.Errorf("delete buyings by buyer: %w", err)
	}
	return res.DeletedCount, nil
}
