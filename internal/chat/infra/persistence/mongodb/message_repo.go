package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"MedievalKingdoms/internal/chat/domain"
	"MedievalKingdoms/internal/chat/infra/persistence/model"
)

const (
	globalCollectionName  = "chat_messages"
	privateCollectionName = "private_messages"
)

type MessageRepository struct {
	global  *mongo.Collection
	private *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		global:  db.Collection(globalCollectionName),
		private: db.Collection(privateCollectionName),
	}
}

func (r *MessageRepository) InsertGlobal(ctx context.Context, m *domain.Message) error {
	if m == nil {
		return nil
	}
	if r == nil || r.global == nil {
		return errors.New("mongodb chat collection is nil")
	}

	_, err := r.global.InsertOne(ctx, model.MessageToDoc(m))
	return err
}

// RecentGlobal 倒序取最近 limit 条再反转，返回按时间正序的消息。
func (r *MessageRepository) RecentGlobal(ctx context.Context, limit int64) ([]*domain.Message, error) {
	if r == nil || r.global == nil {
		return nil, errors.New("mongodb chat collection is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.global.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Message
	for cursor.Next(ctx) {
		var doc model.MessageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, model.DocToMessage(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// TrimGlobal 把世界频道裁剪到 max 条以内：找到第 max+1 新的消息，
// 删掉它与更早的全部消息。
func (r *MessageRepository) TrimGlobal(ctx context.Context, max int64) (int64, error) {
	if r == nil || r.global == nil {
		return 0, errors.New("mongodb chat collection is nil")
	}
	if max <= 0 {
		return 0, nil
	}

	opts := options.FindOne().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(max)
	var cutoff model.MessageDoc
	err := r.global.FindOne(ctx, bson.M{}, opts).Decode(&cutoff)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}

	res, err := r.global.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lte": cutoff.Timestamp}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MessageRepository) InsertPrivate(ctx context.Context, m *domain.PrivateMessage) error {
	if m == nil {
		return nil
	}
	if r == nil || r.private == nil {
		return errors.New("mongodb private message collection is nil")
	}

	_, err := r.private.InsertOne(ctx, model.PrivateToDoc(m))
	return err
}

// ListPrivateFor 某玩家收发的私信，按时间正序。
func (r *MessageRepository) ListPrivateFor(ctx context.Context, username string, limit int64) ([]*domain.PrivateMessage, error) {
	if r == nil || r.private == nil {
		return nil, errors.New("mongodb private message collection is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"sender": username},
		bson.M{"receiver": username},
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}}).
		SetLimit(limit)
	cursor, err := r.private.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.PrivateMessage
	for cursor.Next(ctx) {
		var doc model.PrivateMessageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, model.DocToPrivate(doc))
	}
	return out, cursor.Err()
}

// PurgePrivateBefore 清理留存期之外的私信。
func (r *MessageRepository) PurgePrivateBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r == nil || r.private == nil {
		return 0, errors.New("mongodb private message collection is nil")
	}

	res, err := r.private.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
