package combat

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"MedievalKingdoms/internal/kingdom/domain"
	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/gamedata/resource"
	"MedievalKingdoms/internal/shared/gamedata/units"
)

func seededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestBattlePower_计算公式(t *testing.T) {
	k := domain.NewKingdom(1, "w", empire.Celtic)
	// 25 兵 * 10 + barracks1*20 + blacksmith1*15 + castle1*10 = 295
	if got := BattlePower(k); got != 295 {
		t.Fatalf("期望 295，got=%v", got)
	}
}

func TestCanRaid_不能打自己(t *testing.T) {
	k := domain.NewKingdom(1, "w", empire.Norman)
	if err := CanRaid(k, k, time.Now(), time.Hour); err != ErrSelfRaid {
		t.Fatalf("期望 ErrSelfRaid，got=%v", err)
	}
}

func TestCanRaid_无兵不能出征(t *testing.T) {
	attacker := domain.NewKingdom(1, "a", empire.Norman)
	attacker.Army = units.Roster{}
	defender := domain.NewKingdom(2, "d", empire.Saxon)

	if err := CanRaid(attacker, defender, time.Now(), time.Hour); err != ErrNoArmy {
		t.Fatalf("期望 ErrNoArmy，got=%v", err)
	}
}

func TestCanRaid_保护期边界(t *testing.T) {
	attacker := domain.NewKingdom(1, "a", empire.Norman)
	defender := domain.NewKingdom(2, "d", empire.Saxon)
	now := time.Now().UTC()

	defender.LastRaidTime = now.Add(-30 * time.Minute)
	if err := CanRaid(attacker, defender, now, time.Hour); err != ErrTargetProtected {
		t.Fatalf("期望 30 分钟内受保护，got=%v", err)
	}

	defender.LastRaidTime = now.Add(-time.Hour)
	if err := CanRaid(attacker, defender, now, time.Hour); err != nil {
		t.Fatalf("期望满 1 小时可以掠夺，got=%v", err)
	}
}

func TestResolve_胜率围绕实力比收敛(t *testing.T) {
	// 双方实力相同：原始胜率 0.5，扰动对称，长期胜率应接近一半
	rng := seededRand(42)
	wins := 0
	const rounds = 2000
	for i := 0; i < rounds; i++ {
		attacker := domain.NewKingdom(1, "a", empire.Celtic)
		defender := domain.NewKingdom(2, "d", empire.Celtic)
		if Resolve(attacker, defender, rng).Success {
			wins++
		}
	}
	ratio := float64(wins) / rounds
	if ratio < 0.4 || ratio > 0.6 {
		t.Fatalf("期望对等实力胜率接近 0.5，got=%v", ratio)
	}
}

func TestResolve_碾压局胜率被压到九成(t *testing.T) {
	rng := seededRand(7)
	losses := 0
	const rounds = 2000
	for i := 0; i < rounds; i++ {
		attacker := domain.NewKingdom(1, "a", empire.Viking)
		attacker.Army = units.Roster{units.Soldiers: 100000}
		defender := domain.NewKingdom(2, "d", empire.Celtic)
		defender.Army = units.Roster{}
		if !Resolve(attacker, defender, rng).Success {
			losses++
		}
	}
	// 胜率上限 0.9：约 10% 的掠夺仍会失败
	ratio := float64(losses) / rounds
	if ratio < 0.05 || ratio > 0.15 {
		t.Fatalf("期望败率接近 0.1，got=%v", ratio)
	}
}

func TestResolve_偷取不超过守方存量且非负(t *testing.T) {
	rng := seededRand(99)
	for i := 0; i < 500; i++ {
		attacker := domain.NewKingdom(1, "a", empire.Viking)
		attacker.Army = units.Roster{units.Soldiers: 500}
		defender := domain.NewKingdom(2, "d", empire.Saxon)
		defender.Resources = resource.Basket{resource.Gold: 100, resource.Wood: 3, resource.Stone: 0, resource.Food: 1}

		outcome := Resolve(attacker, defender, rng)
		for kind, taken := range outcome.Stolen {
			if taken <= 0 {
				t.Fatalf("期望偷取为正数，%s=%d", kind, taken)
			}
			if taken > defender.Resources[kind] {
				t.Fatalf("期望偷取不超过守方存量，%s: %d > %d", kind, taken, defender.Resources[kind])
			}
		}
		if !outcome.Success && len(outcome.Stolen) != 0 {
			t.Fatalf("期望失败时不偷取，got=%v", outcome.Stolen)
		}
	}
}

func TestResolve_战损落在区间内且不超过全军(t *testing.T) {
	rng := seededRand(5)
	for i := 0; i < 500; i++ {
		attacker := domain.NewKingdom(1, "a", empire.Norman)
		attacker.Army = units.Roster{units.Soldiers: 100}
		defender := domain.NewKingdom(2, "d", empire.Saxon)
		defender.Army = units.Roster{units.Soldiers: 100}

		outcome := Resolve(attacker, defender, rng)
		// 损失率压在 [0.05, 0.4]
		if outcome.AttackerLosses < 5 || outcome.AttackerLosses > 40 {
			t.Fatalf("期望攻方战损在 [5,40]，got=%d", outcome.AttackerLosses)
		}
		if outcome.DefenderLosses < 5 || outcome.DefenderLosses > 40 {
			t.Fatalf("期望守方战损在 [5,40]，got=%d", outcome.DefenderLosses)
		}
	}
}

func TestResolve_守方无兵无战损(t *testing.T) {
	rng := seededRand(3)
	attacker := domain.NewKingdom(1, "a", empire.Norman)
	defender := domain.NewKingdom(2, "d", empire.Saxon)
	defender.Army = units.Roster{}

	outcome := Resolve(attacker, defender, rng)
	if outcome.DefenderLosses != 0 {
		t.Fatalf("期望无兵无战损，got=%d", outcome.DefenderLosses)
	}
}

func TestResolve_战报文案(t *testing.T) {
	rng := seededRand(11)
	attacker := domain.NewKingdom(1, "ragnar", empire.Viking)
	attacker.Army = units.Roster{units.Soldiers: 100000}
	defender := domain.NewKingdom(2, "aelfred", empire.Saxon)

	var outcome *Outcome
	for i := 0; i < 50; i++ {
		outcome = Resolve(attacker, defender, rng)
		if outcome.Success {
			break
		}
	}
	if !outcome.Success {
		t.Fatalf("碾压局 50 次未出现一次胜利，随机实现可疑")
	}
	if want := "ragnar's forces successfully raided aelfred's kingdom!"; !strings.Contains(outcome.BattleReport, want) {
		t.Fatalf("期望战报包含 %q，got=%q", want, outcome.BattleReport)
	}
	if !strings.Contains(outcome.BattleReport, "Casualties - Attacker:") {
		t.Fatalf("期望战报包含战损统计，got=%q", outcome.BattleReport)
	}
}
