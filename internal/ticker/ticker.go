package ticker

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	allianceport "MedievalKingdoms/internal/alliance/app/port"
	chatport "MedievalKingdoms/internal/chat/app/port"
	combatapp "MedievalKingdoms/internal/combat/app"
	"MedievalKingdoms/internal/kingdom/actors"
	kingdomport "MedievalKingdoms/internal/kingdom/app/port"
	marketport "MedievalKingdoms/internal/market/app/port"
	"MedievalKingdoms/modules/kit/logx"
)

// Gateway 王国 actor runtime 门面。
// 后台循环批量触发时用 Tell，单条结算需要确认结果时用 Ask。
type Gateway interface {
	Ask(ctx context.Context, cmd actors.Command) (any, error)
	Tell(cmd actors.Command)
}

// Notifier 在线推送端口（ws hub）。
type Notifier interface {
	PushTo(uid int64, name string, data any)
}

const constructionPushRoute = "kingdom.constructionDone"

// 建造完工每轮最多处理的条数，积压时下一轮继续。
const constructionBatchLimit = 200

// Config 四个后台循环的周期与留存策略，零值走默认。
type Config struct {
	AccrualInterval      time.Duration
	ConstructionInterval time.Duration
	PowerInterval        time.Duration
	CleanupInterval      time.Duration

	// ActiveWindow 内有活动的玩家才参与资源累计。
	ActiveWindow time.Duration

	ChatHistoryCap   int64
	MessageRetention time.Duration
	RaidRetention    time.Duration
	BuildRetention   time.Duration
}

func (c Config) withDefaults() Config {
	if c.AccrualInterval <= 0 {
		c.AccrualInterval = 10 * time.Second
	}
	if c.ConstructionInterval <= 0 {
		c.ConstructionInterval = 5 * time.Second
	}
	if c.PowerInterval <= 0 {
		c.PowerInterval = 30 * time.Second
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = time.Hour
	}
	if c.ActiveWindow <= 0 {
		c.ActiveWindow = 24 * time.Hour
	}
	if c.ChatHistoryCap <= 0 {
		c.ChatHistoryCap = 1000
	}
	if c.MessageRetention <= 0 {
		c.MessageRetention = 30 * 24 * time.Hour
	}
	if c.RaidRetention <= 0 {
		c.RaidRetention = 30 * 24 * time.Hour
	}
	if c.BuildRetention <= 0 {
		c.BuildRetention = 7 * 24 * time.Hour
	}
	return c
}

// Scheduler 驱动模拟引擎的四个后台循环：
// 资源累计、建造完工、战力重算、过期数据清理。
type Scheduler struct {
	cfg      Config
	gw       Gateway
	kingdoms kingdomport.KingdomRepository
	queue    kingdomport.ConstructionRepository
	raids    combatapp.RaidHistory
	offers   marketport.OfferStore
	invites  allianceport.InviteStore
	messages chatport.MessageStore
	notifier Notifier
	log      logx.Logger
}

func NewScheduler(
	cfg Config,
	gw Gateway,
	kingdoms kingdomport.KingdomRepository,
	queue kingdomport.ConstructionRepository,
	raids combatapp.RaidHistory,
	offers marketport.OfferStore,
	invites allianceport.InviteStore,
	messages chatport.MessageStore,
	notifier Notifier,
	log logx.Logger,
) *Scheduler {
	if log == nil {
		log = logx.NewZapLogger(nil)
	}
	return &Scheduler{
		cfg:      cfg.withDefaults(),
		gw:       gw,
		kingdoms: kingdoms,
		queue:    queue,
		raids:    raids,
		offers:   offers,
		invites:  invites,
		messages: messages,
		notifier: notifier,
		log:      log,
	}
}

// Run 阻塞运行到 ctx 取消。单轮出错只记日志，不中断循环；
// 批量查询这类基础设施故障按指数退避重试。
func (s *Scheduler) Run(ctx context.Context) error {
	cfg := s.cfg
	s.log.Info("后台调度启动",
		zap.Duration("accrual", cfg.AccrualInterval),
		zap.Duration("construction", cfg.ConstructionInterval),
		zap.Duration("power", cfg.PowerInterval),
		zap.Duration("cleanup", cfg.CleanupInterval))

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.loop(ctx, cfg.AccrualInterval, s.accrueOnce)
		return nil
	})
	eg.Go(func() error {
		s.loop(ctx, cfg.ConstructionInterval, s.sweepConstructionsOnce)
		return nil
	})
	eg.Go(func() error {
		s.loop(ctx, cfg.PowerInterval, s.recomputePowerOnce)
		return nil
	})
	eg.Go(func() error {
		s.loop(ctx, cfg.CleanupInterval, s.cleanupOnce)
		return nil
	})
	err := eg.Wait()
	s.log.Info("后台调度退出")
	return err
}

// backoffCapFactor 退避上限为基础周期的倍数。
const backoffCapFactor = 8

func (s *Scheduler) loop(ctx context.Context, every time.Duration, step func(ctx context.Context, now time.Time) error) {
	delay := every
	timer := time.NewTimer(delay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-timer.C:
			if err := step(ctx, now.UTC()); err != nil {
				// 依赖故障时退着重试，别打爆还没恢复的存储
				delay = min(delay*2, every*backoffCapFactor)
			} else {
				delay = every
			}
			timer.Reset(delay)
		}
	}
}

// accrueOnce 给窗口期内活跃的玩家发资源累计指令。
// 单向 Send，actor 侧按自身 lastUpdate 计算补多少，丢一拍无损。
func (s *Scheduler) accrueOnce(ctx context.Context, now time.Time) error {
	ids, err := s.kingdoms.ListActiveIds(ctx, now.Add(-s.cfg.ActiveWindow))
	if err != nil {
		s.log.Error("资源累计：查询活跃玩家失败", zap.Error(err))
		return err
	}
	for _, id := range ids {
		s.gw.Tell(&actors.AccrueTick{Player: id})
	}
	return nil
}

// sweepConstructionsOnce 扫到期建造，先条件置位 completed 抢占，
// 抢到的才发完工结算，避免多实例下重复加等级。
func (s *Scheduler) sweepConstructionsOnce(ctx context.Context, now time.Time) error {
	due, err := s.queue.ListDue(ctx, now, constructionBatchLimit)
	if err != nil {
		s.log.Error("建造完工：查询到期项失败", zap.Error(err))
		return err
	}
	for _, item := range due {
		flipped, err := s.queue.MarkCompleted(ctx, item.Id)
		if err != nil {
			s.log.Error("建造完工：置位失败", zap.String("constructionId", item.Id), zap.Error(err))
			continue
		}
		if !flipped {
			continue
		}

		reply, err := s.gw.Ask(ctx, &actors.CompleteConstruction{Player: item.PlayerId, Item: item})
		if err == nil {
			if r, ok := reply.(*actors.CompleteConstructionReply); ok {
				err = r.Err
			}
		}
		if err != nil {
			// 队列项已置位但落账失败，留痕等人工对账
			s.log.Error("建造完工：落账失败，需人工对账",
				zap.Int64("uid", item.PlayerId),
				zap.String("constructionId", item.Id),
				zap.String("buildingId", item.BuildingId),
				zap.Error(err))
			continue
		}

		s.notifier.PushTo(item.PlayerId, constructionPushRoute, map[string]any{
			"buildingId": item.BuildingId,
			"level":      item.TargetLevel,
		})
		s.log.Info("建造完工",
			zap.Int64("uid", item.PlayerId),
			zap.String("buildingId", item.BuildingId),
			zap.Int("level", item.TargetLevel))
	}
	return nil
}

// recomputePowerOnce 全量重算战力，排行榜读落盘后的 power 字段。
func (s *Scheduler) recomputePowerOnce(ctx context.Context, _ time.Time) error {
	ids, err := s.kingdoms.ListAllIds(ctx)
	if err != nil {
		s.log.Error("战力重算：查询玩家失败", zap.Error(err))
		return err
	}
	for _, id := range ids {
		s.gw.Tell(&actors.RecomputePower{Player: id})
	}
	return nil
}

// cleanupOnce 清理各上下文的过期数据，逐项独立执行互不影响；
// 任一项失败则整轮按失败退避。
func (s *Scheduler) cleanupOnce(ctx context.Context, now time.Time) error {
	cfg := s.cfg
	var firstErr error

	if n, err := s.queue.PurgeCompletedBefore(ctx, now.Add(-cfg.BuildRetention)); err != nil {
		s.log.Error("清理：建造记录失败", zap.Error(err))
		firstErr = err
	} else if n > 0 {
		s.log.Info("清理：建造记录", zap.Int64("removed", n))
	}

	if n, err := s.raids.PurgeBefore(ctx, now.Add(-cfg.RaidRetention)); err != nil {
		s.log.Error("清理：战报失败", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	} else if n > 0 {
		s.log.Info("清理：战报", zap.Int64("removed", n))
	}

	if n, err := s.offers.PurgeExpiredBefore(ctx, now); err != nil {
		s.log.Error("清理：过期挂单失败", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	} else if n > 0 {
		s.log.Info("清理：过期挂单", zap.Int64("removed", n))
	}

	if n, err := s.invites.PurgeExpiredBefore(ctx, now); err != nil {
		s.log.Error("清理：过期联盟邀请失败", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	} else if n > 0 {
		s.log.Info("清理：过期联盟邀请", zap.Int64("removed", n))
	}

	if n, err := s.messages.TrimGlobal(ctx, cfg.ChatHistoryCap); err != nil {
		s.log.Error("清理：世界频道裁剪失败", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	} else if n > 0 {
		s.log.Info("清理：世界频道", zap.Int64("removed", n))
	}

	if n, err := s.messages.PurgePrivateBefore(ctx, now.Add(-cfg.MessageRetention)); err != nil {
		s.log.Error("清理：过期私信失败", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	} else if n > 0 {
		s.log.Info("清理：过期私信", zap.Int64("removed", n))
	}

	return firstErr
}
