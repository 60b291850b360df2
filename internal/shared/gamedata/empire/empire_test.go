package empire

import (
	"testing"

	"MedievalKingdoms/internal/shared/gamedata/resource"
)

func TestNormalize_未知阵营回落到诺曼(t *testing.T) {
	if got := Normalize("atlantean"); got != Norman {
		t.Fatalf("期望未知阵营回落到 norman，got=%s", got)
	}
	if got := Normalize("viking"); got != Viking {
		t.Fatalf("期望 viking 原样返回，got=%s", got)
	}
}

func TestStartingResources_各阵营初始资源(t *testing.T) {
	cases := []struct {
		e    Empire
		want resource.Basket
	}{
		{Norman, resource.Basket{resource.Gold: 1875, resource.Wood: 800, resource.Stone: 720, resource.Food: 400}},
		{Viking, resource.Basket{resource.Gold: 1500, resource.Wood: 1040, resource.Stone: 600, resource.Food: 460}},
		{Saxon, resource.Basket{resource.Gold: 1725, resource.Wood: 800, resource.Stone: 600, resource.Food: 500}},
		{Celtic, resource.Basket{resource.Gold: 1500, resource.Wood: 960, resource.Stone: 720, resource.Food: 400}},
		{Frankish, resource.Basket{resource.Gold: 1800, resource.Wood: 800, resource.Stone: 600, resource.Food: 480}},
	}
	for _, c := range cases {
		got := StartingResources(c.e)
		for kind, amount := range c.want {
			if got[kind] != amount {
				t.Fatalf("%s 初始 %s 期望 %d，got=%d", c.e, kind, amount, got[kind])
			}
		}
	}
}

func TestStartingResources_返回副本不共享底层map(t *testing.T) {
	a := StartingResources(Viking)
	a[resource.Gold] = 0
	b := StartingResources(Viking)
	if b[resource.Gold] != 1500 {
		t.Fatalf("期望每次返回独立副本，got=%d", b[resource.Gold])
	}
}

func TestApplyResourceBonus_按百分比加成向下取整(t *testing.T) {
	// norman gold +25%：10 → 12.5 → 12
	if got := ApplyResourceBonus(Norman, resource.Gold, 10); got != 12 {
		t.Fatalf("期望 12，got=%d", got)
	}
	// 无加成项原样返回
	if got := ApplyResourceBonus(Norman, resource.Food, 10); got != 10 {
		t.Fatalf("期望 10，got=%d", got)
	}
}

func TestConstructionTimeMultiplier_只有诺曼城堡享受加速(t *testing.T) {
	if got := ConstructionTimeMultiplier(Norman, "castle"); got != 0.75 {
		t.Fatalf("期望 0.75，got=%v", got)
	}
	if got := ConstructionTimeMultiplier(Norman, "farm"); got != 1.0 {
		t.Fatalf("期望诺曼农场 1.0，got=%v", got)
	}
	if got := ConstructionTimeMultiplier(Viking, "castle"); got != 1.0 {
		t.Fatalf("期望维京城堡 1.0，got=%v", got)
	}
}

func TestRaidDamageMultiplier_维京掠夺加成(t *testing.T) {
	if got := RaidDamageMultiplier(Viking); got != 1.30 {
		t.Fatalf("期望 1.30，got=%v", got)
	}
	if got := RaidDamageMultiplier(Saxon); got != 1.0 {
		t.Fatalf("期望 1.0，got=%v", got)
	}
}

func TestDefenseBonus_撒克逊与诺曼的防御加成(t *testing.T) {
	if got := DefenseBonus(Saxon); got != 1.20 {
		t.Fatalf("期望 1.20，got=%v", got)
	}
	if got := DefenseBonus(Norman); got != 1.10 {
		t.Fatalf("期望 1.10，got=%v", got)
	}
	if got := DefenseBonus(Celtic); got != 1.0 {
		t.Fatalf("期望 1.0，got=%v", got)
	}
}
