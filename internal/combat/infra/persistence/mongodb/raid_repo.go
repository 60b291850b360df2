package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"MedievalKingdoms/internal/combat"
	"MedievalKingdoms/internal/combat/infra/persistence/model"
)

const raidCollectionName = "raids"

type RaidRepository struct {
	coll *mongo.Collection
}

func NewRaidRepository(db *mongo.Database) *RaidRepository {
	return &RaidRepository{
		coll: db.Collection(raidCollectionName),
	}
}

func (r *RaidRepository) Insert(ctx context.Context, o *combat.Outcome) error {
	if o == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb raid collection is nil")
	}

	_, err := r.coll.InsertOne(ctx, model.OutcomeToDoc(o))
	return err
}

// ListByPlayer 某玩家参与（攻或守）的战报，按时间倒序。
func (r *RaidRepository) ListByPlayer(ctx context.Context, playerId int64, limit int64) ([]*combat.Outcome, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb raid collection is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	filter := bson.M{"$or": []bson.M{
		{"attackerId": playerId},
		{"defenderId": playerId},
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var outcomes []*combat.Outcome
	for cursor.Next(ctx) {
		var doc model.RaidDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, model.DocToOutcome(doc))
	}
	return outcomes, cursor.Err()
}

// PurgeBefore 清理 cutoff 之前的战报，返回删除条数。
func (r *RaidRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r == nil || r.coll == nil {
		return 0, errors.New("mongodb raid collection is nil")
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
