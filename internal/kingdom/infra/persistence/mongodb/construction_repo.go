package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/kingdom/infra/persistence/model"
)

const constructionCollectionName = "construction_queue"

type ConstructionRepository struct {
	coll *mongo.Collection
}

func NewConstructionRepository(db *mongo.Database) *ConstructionRepository {
	return &ConstructionRepository{
		coll: db.Collection(constructionCollectionName),
	}
}

func (r *ConstructionRepository) Insert(ctx context.Context, c *domain.Construction) error {
	if c == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb construction collection is nil")
	}

	_, err := r.coll.InsertOne(ctx, model.ConstructionToDoc(c))
	return err
}

// ListPending 某玩家的在途建造队列，按开工时间升序。
func (r *ConstructionRepository) ListPending(ctx context.Context, playerId int64) ([]*domain.Construction, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb construction collection is nil")
	}

	filter := bson.M{"playerId": playerId, "completed": false}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	return r.find(ctx, filter, opts)
}

// ListDue 全服到点未完工的建造项，调度循环按批扫描。
func (r *ConstructionRepository) ListDue(ctx context.Context, now time.Time, limit int64) ([]*domain.Construction, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb construction collection is nil")
	}
	if limit <= 0 {
		limit = 500
	}

	filter := bson.M{"completed": false, "completionTime": bson.M{"$lte": now}}
	opts := options.Find().
		SetSort(bson.D{{Key: "completionTime", Value: 1}}).
		SetLimit(limit)
	return r.find(ctx, filter, opts)
}

// MarkCompleted 标记完工。只有未完工的项会被标记，
// 返回是否真的发生了状态翻转（并发重复调度时只有一次生效）。
func (r *ConstructionRepository) MarkCompleted(ctx context.Context, id string) (bool, error) {
	if r == nil || r.coll == nil {
		return false, errors.New("mongodb construction collection is nil")
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "completed": false},
		bson.M{"$set": bson.M{"completed": true}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// PurgeCompletedBefore 清理 cutoff 之前已完工的历史记录，返回删除条数。
func (r *ConstructionRepository) PurgeCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r == nil || r.coll == nil {
		return 0, errors.New("mongodb construction collection is nil")
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{
		"completed":      true,
		"completionTime": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ConstructionRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]*domain.Construction, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*domain.Construction
	for cursor.Next(ctx) {
		var doc model.ConstructionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, model.DocToConstruction(doc))
	}
	return items, cursor.Err()
}
