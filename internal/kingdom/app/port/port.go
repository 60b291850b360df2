package port

import (
	"context"
	"errors"
	"time"

	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/resource"
)

// ErrKingdomNotFound 王国不存在（含条件更新未命中）。
var ErrKingdomNotFound = errors.New("kingdom not found")

// KingdomRepository 王国聚合的持久化端口。
// 定向更新方法假定调用方是单写者（actor 内先改内存再落盘）。
type KingdomRepository interface {
	Load(ctx context.Context, id int64) (*domain.Kingdom, error)
	FindByUsername(ctx context.Context, username string) (*domain.Kingdom, error)
	Save(ctx context.Context, k *domain.Kingdom) error

	UpdateResources(ctx context.Context, id int64, res resource.Basket) error
	UpdateBuildings(ctx context.Context, id int64, k *domain.Kingdom) error
	UpdateArmy(ctx context.Context, id int64, k *domain.Kingdom) error
	UpdateEmpire(ctx context.Context, id int64, empire string) error
	UpdateAlliance(ctx context.Context, id int64, allianceId string) error
	UpdatePower(ctx context.Context, id int64, power int64) error
	UpdateLastActive(ctx context.Context, id int64, t time.Time) error
	UpdateRaidOutcome(ctx context.Context, id int64, k *domain.Kingdom, markRaided bool) error

	ListActiveIds(ctx context.Context, cutoff time.Time) ([]int64, error)
	ListAllIds(ctx context.Context) ([]int64, error)
	Leaderboard(ctx context.Context, limit int64) ([]LeaderboardEntry, error)
}

// LeaderboardEntry 排行榜行。
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	PlayerId int64  `json:"playerId"`
	Username string `json:"username"`
	Empire   string `json:"empire"`
	Power    int64  `json:"power"`
}

// ConstructionRepository 建造队列端口。
type ConstructionRepository interface {
	Insert(ctx context.Context, c *domain.Construction) error
	ListPending(ctx context.Context, playerId int64) ([]*domain.Construction, error)
	ListDue(ctx context.Context, now time.Time, limit int64) ([]*domain.Construction, error)
	MarkCompleted(ctx context.Context, id string) (bool, error)
	PurgeCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
