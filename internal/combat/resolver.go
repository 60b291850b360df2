// Package combat 实现掠夺战斗的纯函数结算：给定双方快照与随机源，
// 产出战斗结果，不做任何 IO。随机源可注入，便于测试复现。
package combat

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/building"
	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/gamedata/resource"
)

// 掠夺前置校验错误。
var (
	ErrSelfRaid        = errors.New("cannot raid yourself")
	ErrNoArmy          = errors.New("no army available for raid")
	ErrTargetProtected = errors.New("target is under protection")
)

// Rand 是结算所需的最小随机源。
type Rand interface {
	Float64() float64
}

// Outcome 一次掠夺的完整结算。
type Outcome struct {
	Id               string
	AttackerId       int64
	DefenderId       int64
	AttackerUsername string
	DefenderUsername string
	ArmySize         int64
	Success          bool
	Stolen           resource.Basket
	AttackerLosses   int64
	DefenderLosses   int64
	Timestamp        time.Time
	BattleReport     string
}

// BattlePower 战斗力：全军每单位 10 点，外加兵营 20/级、铁匠铺 15/级、城堡 10/级。
func BattlePower(k *domain.Kingdom) float64 {
	power := float64(k.Army.Total() * 10)
	for _, b := range k.Buildings {
		switch b.Type {
		case building.Barracks:
			power += float64(b.Level * 20)
		case building.Blacksmith:
			power += float64(b.Level * 15)
		case building.Castle:
			power += float64(b.Level * 10)
		}
	}
	return power
}

// CanRaid 掠夺前置校验：有兵、非自己、目标不在保护期。
func CanRaid(attacker, defender *domain.Kingdom, now time.Time, protectionWindow time.Duration) error {
	if attacker.Army.Total() <= 0 {
		return ErrNoArmy
	}
	if attacker.Id == defender.Id {
		return ErrSelfRaid
	}
	if defender.UnderProtection(now, protectionWindow) {
		return ErrTargetProtected
	}
	return nil
}

// Resolve 结算一次掠夺。输入是双方快照，函数不修改它们。
func Resolve(attacker, defender *domain.Kingdom, rng Rand) *Outcome {
	attackerPower := BattlePower(attacker) * empire.RaidDamageMultiplier(attacker.Empire)
	defenderPower := BattlePower(defender) * empire.DefenseBonus(defender.Empire)

	winChance := 0.5
	if total := attackerPower + defenderPower; total > 0 {
		winChance = attackerPower / total
	}
	winChance = clamp(winChance+uniform(rng, -0.2, 0.2), 0.1, 0.9)

	success := rng.Float64() < winChance

	stolen := resource.Basket{}
	if success {
		maxStealPct := attackerPower / (defenderPower + 1) * 0.5
		if maxStealPct > 0.3 {
			maxStealPct = 0.3
		}
		// 遍历顺序固定，保证同一随机序列产出同一结果
		for _, kind := range sortedKinds(defender.Resources) {
			amount := defender.Resources[kind]
			pct := uniform(rng, 0.05, maxStealPct)
			if taken := int64(float64(amount) * pct); taken > 0 {
				stolen[kind] = taken
			}
		}
	}

	attackerLosses := casualties(attacker.Army.Total(), success, true, rng)
	defenderLosses := casualties(defender.Army.Total(), success, false, rng)

	return &Outcome{
		Id:               uuid.NewString(),
		AttackerId:       attacker.Id,
		DefenderId:       defender.Id,
		AttackerUsername: attacker.Username,
		DefenderUsername: defender.Username,
		ArmySize:         attacker.Army.Total(),
		Success:          success,
		Stolen:           stolen,
		AttackerLosses:   attackerLosses,
		DefenderLosses:   defenderLosses,
		Timestamp:        time.Now().UTC(),
		BattleReport:     battleReport(attacker.Username, defender.Username, success, stolen, attackerLosses, defenderLosses),
	}
}

// casualties 战损：胜 10% 负 20% 为基数，攻方 +5%，叠加随机扰动后压到 [5%, 40%]。
func casualties(armySize int64, battleWon, isAttacker bool, rng Rand) int64 {
	if armySize == 0 {
		return 0
	}

	baseLossRate := 0.2
	if battleWon {
		baseLossRate = 0.1
	}
	if isAttacker {
		baseLossRate += 0.05
	}

	lossRate := clamp(baseLossRate+uniform(rng, -0.05, 0.1), 0.05, 0.4)

	losses := int64(float64(armySize) * lossRate)
	if losses > armySize {
		losses = armySize
	}
	return losses
}

func battleReport(attacker, defender string, success bool, stolen resource.Basket, attackerLosses, defenderLosses int64) string {
	var sb strings.Builder
	if success {
		fmt.Fprintf(&sb, "%s's forces successfully raided %s's kingdom! ", attacker, defender)
		if len(stolen) > 0 {
			parts := make([]string, 0, len(stolen))
			for _, kind := range sortedKinds(stolen) {
				parts = append(parts, fmt.Sprintf("%d %s", stolen[kind], kind))
			}
			fmt.Fprintf(&sb, "Stolen: %s. ", strings.Join(parts, ", "))
		} else {
			sb.WriteString("However, no significant resources were captured. ")
		}
	} else {
		fmt.Fprintf(&sb, "%s's raid on %s's kingdom was repelled! ", attacker, defender)
	}
	fmt.Fprintf(&sb, "Casualties - Attacker: %d, Defender: %d", attackerLosses, defenderLosses)
	return sb.String()
}

func sortedKinds(b resource.Basket) []resource.Kind {
	kinds := make([]resource.Kind, 0, len(b))
	for kind := range b {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// uniform 等价于在 [a, b] 上均匀取值；b < a 时区间自动反转。
func uniform(rng Rand, a, b float64) float64 {
	return a + (b-a)*rng.Float64()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
