package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"MedievalKingdoms/internal/kingdom/app/port"
)

// ManagerActor 按玩家 id 路由指令到对应的王国 actor，不存在则惰性创建。
// 只做路由与查表，不承担业务逻辑。
type ManagerActor struct {
	repo          port.KingdomRepository
	queue         port.ConstructionRepository
	kingdomActors map[int64]*actor.PID
}

func NewManagerActor(repo port.KingdomRepository, queue port.ConstructionRepository) *ManagerActor {
	return &ManagerActor{
		repo:          repo,
		queue:         queue,
		kingdomActors: make(map[int64]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	cmd, ok := ctx.Message().(Command)
	if !ok {
		return
	}

	playerId := cmd.PlayerID()
	if playerId <= 0 {
		respondError(ctx, cmd, port.ErrKingdomNotFound)
		return
	}

	ctx.Forward(m.getOrSpawn(ctx, playerId))
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, playerId int64) *actor.PID {
	if pid, ok := m.kingdomActors[playerId]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewKingdomActor(playerId, m.repo, m.queue)
	})
	pid := ctx.Spawn(props)
	m.kingdomActors[playerId] = pid
	return pid
}
