package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"MedievalKingdoms/internal/kingdom/app/port"
	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/kingdom/infra/persistence/model"
	"MedievalKingdoms/internal/shared/gamedata/resource"
)

const kingdomCollectionName = "kingdoms"

// ErrKingdomNotFound 王国不存在。
var ErrKingdomNotFound = port.ErrKingdomNotFound

type KingdomRepository struct {
	coll *mongo.Collection
}

func NewKingdomRepository(db *mongo.Database) *KingdomRepository {
	return &KingdomRepository{
		coll: db.Collection(kingdomCollectionName),
	}
}

func (r *KingdomRepository) Load(ctx context.Context, id int64) (*domain.Kingdom, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb kingdom collection is nil")
	}

	var doc model.KingdomDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == nil {
		return model.DocToKingdom(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrKingdomNotFound
	}
	return nil, err
}

func (r *KingdomRepository) FindByUsername(ctx context.Context, username string) (*domain.Kingdom, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb kingdom collection is nil")
	}

	var doc model.KingdomDoc
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err == nil {
		return model.DocToKingdom(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrKingdomNotFound
	}
	return nil, err
}

// Save 全量落盘（注册、掠夺结算等聚合级变更时使用）。
func (r *KingdomRepository) Save(ctx context.Context, k *domain.Kingdom) error {
	if k == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb kingdom collection is nil")
	}

	doc := model.KingdomToDoc(k)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.Id},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// UpdateFields 定向部分更新（actor 内高频小变更走这里，避免整文档回写）。
func (r *KingdomRepository) UpdateFields(ctx context.Context, id int64, fields bson.M) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb kingdom collection is nil")
	}
	if len(fields) == 0 {
		return nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrKingdomNotFound
	}
	return nil
}

// 以下定向更新由王国 actor 调用：单写者保证先改内存再落盘的顺序，
// 这里只负责把变更按字段落到文档上。

func (r *KingdomRepository) UpdateResources(ctx context.Context, id int64, res resource.Basket) error {
	return r.UpdateFields(ctx, id, bson.M{"resources": model.ResourcesToDoc(res)})
}

func (r *KingdomRepository) UpdateBuildings(ctx context.Context, id int64, k *domain.Kingdom) error {
	return r.UpdateFields(ctx, id, bson.M{
		"buildings": model.BuildingsToDoc(k.Buildings),
		"resources": model.ResourcesToDoc(k.Resources),
		"power":     k.Power,
	})
}

func (r *KingdomRepository) UpdateArmy(ctx context.Context, id int64, k *domain.Kingdom) error {
	return r.UpdateFields(ctx, id, bson.M{
		"army":      model.ArmyToDoc(k.Army),
		"resources": model.ResourcesToDoc(k.Resources),
		"power":     k.Power,
	})
}

func (r *KingdomRepository) UpdateEmpire(ctx context.Context, id int64, empire string) error {
	return r.UpdateFields(ctx, id, bson.M{"empire": empire})
}

func (r *KingdomRepository) UpdateAlliance(ctx context.Context, id int64, allianceId string) error {
	return r.UpdateFields(ctx, id, bson.M{"allianceId": allianceId})
}

func (r *KingdomRepository) UpdatePower(ctx context.Context, id int64, power int64) error {
	return r.UpdateFields(ctx, id, bson.M{"power": power})
}

func (r *KingdomRepository) UpdateLastActive(ctx context.Context, id int64, t time.Time) error {
	return r.UpdateFields(ctx, id, bson.M{"lastActive": t})
}

// UpdateRaidOutcome 一次写入掠夺结算的全部字段（资源、兵力、战力、保护期）。
func (r *KingdomRepository) UpdateRaidOutcome(ctx context.Context, id int64, k *domain.Kingdom, markRaided bool) error {
	fields := bson.M{
		"resources": model.ResourcesToDoc(k.Resources),
		"army":      model.ArmyToDoc(k.Army),
		"power":     k.Power,
	}
	if markRaided {
		fields["lastRaidTime"] = k.LastRaidTime
	}
	return r.UpdateFields(ctx, id, fields)
}

// AdjustResource 单项资源条件增减。delta 为负时要求余额充足，
// 由 filter 保证并发下不会扣成负数；不满足条件返回 ErrKingdomNotFound。
func (r *KingdomRepository) AdjustResource(ctx context.Context, id int64, kind resource.Kind, delta int64) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb kingdom collection is nil")
	}

	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["resources."+string(kind)] = bson.M{"$gte": -delta}
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"resources." + string(kind): delta},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrKingdomNotFound
	}
	return nil
}

// ListActiveIds 返回 cutoff 之后活跃过的玩家 id（后台产出只服务活跃玩家）。
func (r *KingdomRepository) ListActiveIds(ctx context.Context, cutoff time.Time) ([]int64, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb kingdom collection is nil")
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"lastActive": bson.M{"$gte": cutoff}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []int64
	for cursor.Next(ctx) {
		var doc struct {
			Id int64 `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.Id)
	}
	return ids, cursor.Err()
}

// ListAllIds 返回全部玩家 id（全量战力重算用）。
func (r *KingdomRepository) ListAllIds(ctx context.Context) ([]int64, error) {
	return r.ListActiveIds(ctx, time.Time{})
}

// LeaderboardEntry 排行榜行。
type LeaderboardEntry = port.LeaderboardEntry

// Leaderboard 按战力降序（同战力按 id 升序，保证排序稳定）取前 limit 名。
func (r *KingdomRepository) Leaderboard(ctx context.Context, limit int64) ([]LeaderboardEntry, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb kingdom collection is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "power", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit).
		SetProjection(bson.M{"_id": 1, "username": 1, "empire": 1, "power": 1})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []LeaderboardEntry
	rank := 0
	for cursor.Next(ctx) {
		var doc model.KingdomDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		rank++
		entries = append(entries, LeaderboardEntry{
			Rank:     rank,
			PlayerId: doc.Id,
			Username: doc.Username,
			Empire:   doc.Empire,
			Power:    doc.Power,
		})
	}
	return entries, cursor.Err()
}
