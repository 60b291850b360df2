package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"MedievalKingdoms/internal/shop/app/port"
)

const inventoryCollectionName = "shop_inventory"

// ErrInsufficientItems 库存不足（含条件扣减未命中）。
var ErrInsufficientItems = port.ErrInsufficientItems

type inventoryDoc struct {
	PlayerId int64            `bson:"_id"`
	Items    map[string]int64 `bson:"items"`
}

// InventoryRepository 道具库存，一名玩家一份文档。
type InventoryRepository struct {
	coll *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{
		coll: db.Collection(inventoryCollectionName),
	}
}

func (r *InventoryRepository) Grant(ctx context.Context, playerId int64, itemId string, qty int64) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb shop inventory collection is nil")
	}
	if qty <= 0 {
		return nil
	}

	field := fmt.Sprintf("items.%s", itemId)
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": playerId},
		bson.M{"$inc": bson.M{field: qty}},
		options.UpdateOne().SetUpsert(true))
	return err
}

// Consume 单次条件扣减：库存不足未命中，返回 ErrInsufficientItems。
func (r *InventoryRepository) Consume(ctx context.Context, playerId int64, itemId string, qty int64) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb shop inventory collection is nil")
	}
	if qty <= 0 {
		return nil
	}

	field := fmt.Sprintf("items.%s", itemId)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": playerId, field: bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{field: -qty}})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrInsufficientItems
	}
	return nil
}

func (r *InventoryRepository) Get(ctx context.Context, playerId int64) (map[string]int64, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb shop inventory collection is nil")
	}

	var doc inventoryDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": playerId}).Decode(&doc)
	if err == nil {
		if doc.Items == nil {
			doc.Items = map[string]int64{}
		}
		return doc.Items, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return map[string]int64{}, nil
	}
	return nil, err
}
