package building

import (
	"testing"
	"time"

	"MedievalKingdoms/internal/shared/gamedata/empire"
	"MedievalKingdoms/internal/shared/gamedata/resource"
)

func TestCost_二级农场按1点5倍递增且逐项向下取整(t *testing.T) {
	// farm base {50,60,30}，2 级倍率 1.5
	got := Cost(Farm, 2)
	want := resource.Basket{resource.Gold: 75, resource.Wood: 90, resource.Stone: 45}
	for kind, amount := range want {
		if got[kind] != amount {
			t.Fatalf("期望 2 级农场 %s=%d，got=%d", kind, amount, got[kind])
		}
	}
}

func TestCost_一级花费等于基础花费(t *testing.T) {
	got := Cost(Castle, 1)
	info, _ := GetInfo(Castle)
	for kind, amount := range info.BaseCost {
		if got[kind] != amount {
			t.Fatalf("期望 1 级花费 = 基础花费，%s want=%d got=%d", kind, amount, got[kind])
		}
	}
}

func TestCost_高等级截断而非四舍五入(t *testing.T) {
	// farm gold 3 级：50 * 1.5^2 = 112.5，应得 112
	got := Cost(Farm, 3)
	if got[resource.Gold] != 112 {
		t.Fatalf("期望截断取整 112，got=%d", got[resource.Gold])
	}
}

func TestBuildTime_一级农场60秒(t *testing.T) {
	if got := BuildTime(Farm, 1, empire.Viking); got != 60*time.Second {
		t.Fatalf("期望 60s，got=%v", got)
	}
}

func TestBuildTime_二级按1点3倍递增(t *testing.T) {
	// farm 2 级：60 * 1.3 = 78s
	if got := BuildTime(Farm, 2, empire.Viking); got != 78*time.Second {
		t.Fatalf("期望 78s，got=%v", got)
	}
}

func TestBuildTime_诺曼建城堡快四分之一(t *testing.T) {
	// castle 1 级：120 * 0.75 = 90s；其余阵营不受影响
	if got := BuildTime(Castle, 1, empire.Norman); got != 90*time.Second {
		t.Fatalf("期望诺曼城堡 90s，got=%v", got)
	}
	if got := BuildTime(Castle, 1, empire.Saxon); got != 120*time.Second {
		t.Fatalf("期望撒克逊城堡 120s，got=%v", got)
	}
	// 诺曼加成只对城堡生效
	if got := BuildTime(Farm, 1, empire.Norman); got != 60*time.Second {
		t.Fatalf("期望诺曼农场不享受加成 60s，got=%v", got)
	}
}

func TestProduction_产出随等级线性增长(t *testing.T) {
	got := Production(Mine, 3)
	if got[resource.Stone] != 6 || got[resource.Gold] != 3 {
		t.Fatalf("期望 3 级矿场 stone=6 gold=3，got=%v", got)
	}
}

func TestProduction_兵营无产出(t *testing.T) {
	if got := Production(Barracks, 5); len(got) != 0 {
		t.Fatalf("期望兵营无资源产出，got=%v", got)
	}
}

func TestPowerOf_各建筑战力系数(t *testing.T) {
	cases := []struct {
		typ   Type
		level int
		want  int64
	}{
		{Castle, 2, 300},
		{Barracks, 3, 360},
		{Blacksmith, 1, 100},
		{Mine, 2, 160},
		{Farm, 4, 240},
		{Lumbermill, 1, 60},
		{Type("unknown"), 2, 100}, // 表外建筑按 50/级
	}
	for _, c := range cases {
		if got := PowerOf(c.typ, c.level); got != c.want {
			t.Fatalf("PowerOf(%s, %d) 期望 %d，got=%d", c.typ, c.level, c.want, got)
		}
	}
}

func TestValid_未知建筑类型不合法(t *testing.T) {
	if Valid(Type("watchtower")) {
		t.Fatalf("期望未知建筑类型不合法")
	}
	for _, typ := range All() {
		if !Valid(typ) {
			t.Fatalf("期望 %s 合法", typ)
		}
	}
}
