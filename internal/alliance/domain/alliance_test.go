package domain

import (
	"errors"
	"testing"
)

func TestAlliance_成员增删(t *testing.T) {
	a, err := NewAlliance(1, "ragnar", "  Great Heathen Army  ", "raiders")
	if err != nil {
		t.Fatalf("创建联盟失败: %v", err)
	}
	if a.Name != "Great Heathen Army" {
		t.Fatalf("名称应修剪空白: %q", a.Name)
	}
	if !a.HasMember("ragnar") || a.MemberCount() != 1 {
		t.Fatalf("创建者应是首个成员")
	}

	if err := a.AddMember("aelfred"); err != nil {
		t.Fatalf("添加成员失败: %v", err)
	}
	if err := a.AddMember("aelfred"); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("期望 ErrAlreadyMember, got=%v", err)
	}

	for i := a.MemberCount(); i < a.MaxMembers; i++ {
		if err := a.AddMember(string(rune('a'+i)) + "-warrior"); err != nil {
			t.Fatalf("填充成员失败: %v", err)
		}
	}
	if err := a.AddMember("latecomer"); !errors.Is(err, ErrFull) {
		t.Fatalf("满员应拒绝, got=%v", err)
	}
}

func TestAlliance_盟主退出换帅(t *testing.T) {
	a, _ := NewAlliance(1, "ragnar", "Great Heathen Army", "")
	_ = a.AddMember("aelfred")
	_ = a.AddMember("brennus")

	if got := a.SuccessorTo("ragnar"); got != "aelfred" {
		t.Fatalf("继任人选应是剩余名单第一人: %q", got)
	}
	if got := a.SuccessorTo("brennus"); got != "" {
		t.Fatalf("非盟主离开不应有继任人选: %q", got)
	}

	disbanded, newLeader, err := a.RemoveMember("ragnar", 2)
	if err != nil || disbanded {
		t.Fatalf("仍有成员时不应解散: disbanded=%v err=%v", disbanded, err)
	}
	if newLeader != "aelfred" || a.LeaderUsername != "aelfred" {
		t.Fatalf("盟主位应顺延给剩余名单第一人: %q", newLeader)
	}
	if a.LeaderId != 2 {
		t.Fatalf("盟主 id 应与用户名一并更新: %d", a.LeaderId)
	}
}

func TestAlliance_最后一人退出解散(t *testing.T) {
	a, _ := NewAlliance(1, "ragnar", "Great Heathen Army", "")

	disbanded, newLeader, err := a.RemoveMember("ragnar", 0)
	if err != nil || !disbanded || newLeader != "" {
		t.Fatalf("最后一人退出应解散: disbanded=%v leader=%q err=%v", disbanded, newLeader, err)
	}

	if _, _, err := a.RemoveMember("ragnar", 0); !errors.Is(err, ErrNotMember) {
		t.Fatalf("期望 ErrNotMember, got=%v", err)
	}
}

func TestAlliance_名称长度校验(t *testing.T) {
	if _, err := NewAlliance(1, "ragnar", " ab ", ""); !errors.Is(err, ErrNameTooShort) {
		t.Fatalf("期望 ErrNameTooShort, got=%v", err)
	}
}
