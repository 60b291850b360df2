package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"MedievalKingdoms/internal/market/app/port"
	"MedievalKingdoms/internal/market/domain"
	"MedievalKingdoms/internal/market/infra/persistence/model"
)

const offerCollectionName = "trade_offers"

// ErrOfferNotFound 挂单不存在（含条件更新未命中）。
var ErrOfferNotFound = port.ErrOfferNotFound

type OfferRepository struct {
	coll *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{
		coll: db.Collection(offerCollectionName),
	}
}

func (r *OfferRepository) Insert(ctx context.Context, o *domain.TradeOffer) error {
	if o == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb offer collection is nil")
	}

	_, err := r.coll.InsertOne(ctx, model.OfferToDoc(o))
	return err
}

func (r *OfferRepository) Get(ctx context.Context, id string) (*domain.TradeOffer, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb offer collection is nil")
	}

	var doc model.OfferDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == nil {
		return model.DocToOffer(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOfferNotFound
	}
	return nil, err
}

// ListOpen 他人发布的、未过期的挂单，按创建时间倒序。
func (r *OfferRepository) ListOpen(ctx context.Context, excludeCreator int64, now time.Time, limit int64) ([]*domain.TradeOffer, error) {
	if limit <= 0 {
		limit = 20
	}
	filter := bson.M{
		"active":    true,
		"expiresAt": bson.M{"$gt": now},
		"creatorId": bson.M{"$ne": excludeCreator},
	}
	return r.list(ctx, filter, limit)
}

// ListByCreator 某玩家自己的挂单（含历史），按创建时间倒序。
func (r *OfferRepository) ListByCreator(ctx context.Context, creatorId int64, limit int64) ([]*domain.TradeOffer, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.list(ctx, bson.M{"creatorId": creatorId}, limit)
}

// Claim 以单次条件更新抢占挂单：仅当挂单仍活跃且未过期时置为成交中。
// 并发接受同一挂单时只有一个接受方会命中；未命中返回 ErrOfferNotFound。
func (r *OfferRepository) Claim(ctx context.Context, id string, acceptorId int64, acceptorUsername string, now time.Time) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb offer collection is nil")
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id":       id,
			"active":    true,
			"expiresAt": bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{
			"active":           false,
			"acceptorId":       acceptorId,
			"acceptorUsername": acceptorUsername,
			"completedAt":      now,
		}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrOfferNotFound
	}
	return nil
}

// Release 结算失败时回滚抢占，挂单恢复可接受状态。
func (r *OfferRepository) Release(ctx context.Context, id string) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb offer collection is nil")
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"active": true},
			"$unset": bson.M{"acceptorId": "", "acceptorUsername": "", "completedAt": ""},
		},
	)
	return err
}

// PurgeExpiredBefore 清理过期且未成交的挂单，返回删除条数。
func (r *OfferRepository) PurgeExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r == nil || r.coll == nil {
		return 0, errors.New("mongodb offer collection is nil")
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{
		"active":    true,
		"expiresAt": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *OfferRepository) list(ctx context.Context, filter bson.M, limit int64) ([]*domain.TradeOffer, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb offer collection is nil")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offers []*domain.TradeOffer
	for cursor.Next(ctx) {
		var doc model.OfferDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		offers = append(offers, model.DocToOffer(doc))
	}
	return offers, cursor.Err()
}
