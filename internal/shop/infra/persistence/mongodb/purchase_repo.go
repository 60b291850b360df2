package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"MedievalKingdoms/internal/shop/domain"
	"MedievalKingdoms/internal/shop/infra/persistence/model"
)

const purchaseCollectionName = "shop_purchases"

type PurchaseRepository struct {
	coll *mongo.Collection
}

func NewPurchaseRepository(db *mongo.Database) *PurchaseRepository {
	return &PurchaseRepository{
		coll: db.Collection(purchaseCollectionName),
	}
}

func (r *PurchaseRepository) Insert(ctx context.Context, p *domain.Purchase) error {
	if p == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb shop purchase collection is nil")
	}

	_, err := r.coll.InsertOne(ctx, model.PurchaseToDoc(p))
	return err
}

// ListByPlayer 玩家购买流水，按购买时间倒序。
func (r *PurchaseRepository) ListByPlayer(ctx context.Context, playerId int64, limit int64) ([]*domain.Purchase, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb shop purchase collection is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "purchaseDate", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"playerId": playerId}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Purchase
	for cursor.Next(ctx) {
		var doc model.PurchaseDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, model.DocToPurchase(doc))
	}
	return out, cursor.Err()
}
