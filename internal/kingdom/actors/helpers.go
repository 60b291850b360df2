package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"MedievalKingdoms/internal/shared/gamedata/building"
	"MedievalKingdoms/internal/shared/gamedata/resource"
)

func costOf(t building.Type, level int) resource.Basket {
	return building.Cost(t, level)
}

// negativePart 把 delta 中的扣减项取出并转正（用于余额校验）。
func negativePart(delta resource.Basket) resource.Basket {
	out := resource.Basket{}
	for kind, v := range delta {
		if v < 0 {
			out[kind] = -v
		}
	}
	return out
}

// applyClamped 逐项加减，单项最低到 0。
func applyClamped(base, delta resource.Basket) resource.Basket {
	out := base.Clone()
	for kind, v := range delta {
		out[kind] += v
		if out[kind] < 0 {
			out[kind] = 0
		}
	}
	return out
}

// respond 有 sender 才回 reply；后台循环用单向 Send 触发时不回。
func respond(ctx actor.Context, msg any) {
	if ctx.Sender() == nil {
		return
	}
	ctx.Respond(msg)
}

// respondError 按指令类型回对应的错误 reply，保证 ask 方能解包。
func respondError(ctx actor.Context, cmd Command, err error) {
	switch cmd.(type) {
	case *Get:
		respond(ctx, &GetReply{Err: err})
	case *Upgrade:
		respond(ctx, &UpgradeReply{Err: err})
	case *Recruit:
		respond(ctx, &RecruitReply{Err: err})
	case *AccrueTick:
		respond(ctx, &AccrueReply{Err: err})
	case *CompleteConstruction:
		respond(ctx, &CompleteConstructionReply{Err: err})
	case *ApplyDelta:
		respond(ctx, &ApplyDeltaReply{Err: err})
	case *ApplyRaidOutcome:
		respond(ctx, &ApplyRaidOutcomeReply{Err: err})
	case *GrantArmy:
		respond(ctx, &GrantArmyReply{Err: err})
	case *ChangeEmpire:
		respond(ctx, &ChangeEmpireReply{Err: err})
	case *RushConstruction:
		respond(ctx, &RushConstructionReply{Err: err})
	case *RecomputePower:
		respond(ctx, &RecomputePowerReply{Err: err})
	case *SetAlliance:
		respond(ctx, &SetAllianceReply{Err: err})
	case *Touch:
		respond(ctx, &TouchReply{Err: err})
	}
}
