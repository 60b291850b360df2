package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"MedievalKingdoms/internal/alliance/app/port"
	"MedievalKingdoms/internal/alliance/domain"
	"MedievalKingdoms/internal/alliance/infra/persistence/model"
)

const allianceCollectionName = "alliances"

// ErrAllianceNotFound 联盟不存在（含条件更新未命中）。
var ErrAllianceNotFound = port.ErrAllianceNotFound

type AllianceRepository struct {
	coll *mongo.Collection
}

func NewAllianceRepository(db *mongo.Database) *AllianceRepository {
	return &AllianceRepository{
		coll: db.Collection(allianceCollectionName),
	}
}

func (r *AllianceRepository) Insert(ctx context.Context, a *domain.Alliance) error {
	if a == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb alliance collection is nil")
	}

	_, err := r.coll.InsertOne(ctx, model.AllianceToDoc(a))
	return err
}

func (r *AllianceRepository) Get(ctx context.Context, id string) (*domain.Alliance, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AllianceRepository) FindByName(ctx context.Context, name string) (*domain.Alliance, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *AllianceRepository) FindByMember(ctx context.Context, username string) (*domain.Alliance, error) {
	return r.findOne(ctx, bson.M{"members": username})
}

func (r *AllianceRepository) FindByLeader(ctx context.Context, leaderUsername string) (*domain.Alliance, error) {
	return r.findOne(ctx, bson.M{"leaderUsername": leaderUsername})
}

// List 按创建时间倒序分页。
func (r *AllianceRepository) List(ctx context.Context, limit int64) ([]*domain.Alliance, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb alliance collection is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Alliance
	for cursor.Next(ctx) {
		var doc model.AllianceDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, model.DocToAlliance(doc))
	}
	return out, cursor.Err()
}

// AddMember 单次条件更新入盟：过滤重复成员与满员，
// 并发加入只有容量内的请求命中，未命中返回 ErrJoinConflict。
func (r *AllianceRepository) AddMember(ctx context.Context, id string, username string) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb alliance collection is nil")
	}

	filter := bson.M{
		"_id":     id,
		"members": bson.M{"$ne": username},
		"$expr":   bson.M{"$lt": bson.A{bson.M{"$size": "$members"}, "$maxMembers"}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"members": username}})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return port.ErrJoinConflict
	}
	return nil
}

func (r *AllianceRepository) RemoveMember(ctx context.Context, id string, username string) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb alliance collection is nil")
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "members": username},
		bson.M{"$pull": bson.M{"members": username}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAllianceNotFound
	}
	return nil
}

// TransferLeader 盟主离开：换帅与移除成员在同一条更新内完成。
func (r *AllianceRepository) TransferLeader(ctx context.Context, id string, leaderId int64, leaderUsername string, removeMember string) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb alliance collection is nil")
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":  bson.M{"leaderId": leaderId, "leaderUsername": leaderUsername},
			"$pull": bson.M{"members": removeMember},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAllianceNotFound
	}
	return nil
}

func (r *AllianceRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb alliance collection is nil")
	}

	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *AllianceRepository) findOne(ctx context.Context, filter bson.M) (*domain.Alliance, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb alliance collection is nil")
	}

	var doc model.AllianceDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err == nil {
		return model.DocToAlliance(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAllianceNotFound
	}
	return nil, err
}
