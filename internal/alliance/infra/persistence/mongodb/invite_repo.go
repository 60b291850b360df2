package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"MedievalKingdoms/internal/alliance/app/port"
	"MedievalKingdoms/internal/alliance/domain"
	"MedievalKingdoms/internal/alliance/infra/persistence/model"
)

const inviteCollectionName = "alliance_invites"

// ErrInviteNotFound 邀请不存在、已过期或已被处理。
var ErrInviteNotFound = port.ErrInviteNotFound

type InviteRepository struct {
	coll *mongo.Collection
}

func NewInviteRepository(db *mongo.Database) *InviteRepository {
	return &InviteRepository{
		coll: db.Collection(inviteCollectionName),
	}
}

func (r *InviteRepository) Insert(ctx context.Context, inv *domain.Invite) error {
	if inv == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb alliance invite collection is nil")
	}

	_, err := r.coll.InsertOne(ctx, model.InviteToDoc(inv))
	return err
}

// ListPendingFor 收件人视角的待处理邀请，按创建时间倒序。
func (r *InviteRepository) ListPendingFor(ctx context.Context, username string, now time.Time) ([]*domain.Invite, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb alliance invite collection is nil")
	}

	filter := bson.M{
		"toUsername": username,
		"status":     domain.InviteStatusPending,
		"expiresAt":  bson.M{"$gt": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Invite
	for cursor.Next(ctx) {
		var doc model.InviteDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, model.DocToInvite(doc))
	}
	return out, cursor.Err()
}

func (r *InviteRepository) GetPendingFor(ctx context.Context, id string, username string, now time.Time) (*domain.Invite, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb alliance invite collection is nil")
	}

	filter := bson.M{
		"_id":        id,
		"toUsername": username,
		"status":     domain.InviteStatusPending,
		"expiresAt":  bson.M{"$gt": now},
	}
	var doc model.InviteDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err == nil {
		return model.DocToInvite(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrInviteNotFound
	}
	return nil, err
}

// MarkAccepted 条件更新：仅 pending 状态可被标记，重复接受未命中。
func (r *InviteRepository) MarkAccepted(ctx context.Context, id string, now time.Time) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb alliance invite collection is nil")
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": domain.InviteStatusPending},
		bson.M{"$set": bson.M{"status": domain.InviteStatusAccepted, "acceptedAt": now}})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrInviteNotFound
	}
	return nil
}

// PurgeExpiredBefore 清理过期未处理的邀请（后台清理循环调用）。
func (r *InviteRepository) PurgeExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r == nil || r.coll == nil {
		return 0, errors.New("mongodb alliance invite collection is nil")
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{
		"status":    domain.InviteStatusPending,
		"expiresAt": bson.M{"$lte": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
