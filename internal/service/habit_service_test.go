package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"habit_bot_backend/internal/util"
)

func TestValidHabitName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"读书", "读书", true},                           // 两个字符刚好够
		{"a", "", false},                              // 太短
		{"  a  ", "", false},                          // 去空白后太短
		{"  读书  ", "读书", true},                        // 去空白后保留
		{strings.Repeat("长", 100), strings.Repeat("长", 100), true},
		{strings.Repeat("长", 101), "", false},         // 原始输入超长
		{" " + strings.Repeat("长", 100), "", false},   // 空白也算进原始长度
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := validHabitName(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("validHabitName(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAddHabit(t *testing.T) {
	svc, repos := newTestHabitService(t, mustDate(t, "2026-08-28"))

	habit, created, err := svc.AddHabit(1, "alice", "  晨跑  ")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if !created {
		t.Error("首次创建 created 应为 true")
	}
	if habit.Name != "晨跑" {
		t.Errorf("名称应去空白存储: got %q", habit.Name)
	}

	// 用户已自动注册
	if _, err := repos.users.FindByID(1); err != nil {
		t.Errorf("创建习惯应先注册用户: %v", err)
	}
}

func TestAddHabitDuplicate(t *testing.T) {
	svc, _ := newTestHabitService(t, mustDate(t, "2026-08-28"))

	first, _, err := svc.AddHabit(1, "alice", "Read Books")
	if err != nil {
		t.Fatal(err)
	}

	// 大小写不同也算重名，返回已有习惯
	again, created, err := svc.AddHabit(1, "alice", "read books")
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Error("重名创建 created 应为 false")
	}
	if again.ID != first.ID {
		t.Errorf("应返回已有习惯: got id=%d want id=%d", again.ID, first.ID)
	}
}

func TestAddHabitInvalidName(t *testing.T) {
	svc, _ := newTestHabitService(t, mustDate(t, "2026-08-28"))

	_, _, err := svc.AddHabit(1, "alice", "x")
	if !errors.Is(err, util.ErrInvalidHabitName) {
		t.Errorf("太短的名称应返回 ErrInvalidHabitName, got %v", err)
	}
}

func TestMarkDoneOverwrite(t *testing.T) {
	svc, _ := newTestHabitService(t, mustDate(t, "2026-08-28"))

	habit, _, err := svc.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}

	overwrote, err := svc.MarkDone(habit.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if overwrote {
		t.Error("首次打卡 overwrote 应为 false")
	}

	overwrote, err = svc.MarkDone(habit.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if !overwrote {
		t.Error("同一天再次打卡 overwrote 应为 true")
	}

	// 覆盖后连续天数按新状态算
	streak, err := svc.ComputeStreak(habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 0 {
		t.Errorf("今天改成跳过后 streak 应为 0, got %d", streak)
	}
}

func TestMarkDoneUnknownHabit(t *testing.T) {
	svc, _ := newTestHabitService(t, mustDate(t, "2026-08-28"))

	_, err := svc.MarkDone(999, true)
	if !errors.Is(err, util.ErrHabitNotFound) {
		t.Errorf("不存在的习惯应返回 ErrHabitNotFound, got %v", err)
	}
}

func TestComputeStreak(t *testing.T) {
	svc, repos := newTestHabitService(t, mustDate(t, "2026-08-28"))

	habit, _, err := svc.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}

	// 连续三天打卡，今天在内
	for _, date := range []string{"2026-08-26", "2026-08-27", "2026-08-28"} {
		if err := repos.logs.Record(habit.ID, date, true); err != nil {
			t.Fatal(err)
		}
	}

	streak, err := svc.ComputeStreak(habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 3 {
		t.Errorf("连续三天应为 3, got %d", streak)
	}
}

func TestComputeStreakRequiresToday(t *testing.T) {
	svc, repos := newTestHabitService(t, mustDate(t, "2026-08-29"))

	habit, _, err := svc.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}
	// 昨天之前连着三天，但今天（08-29）没打
	for _, date := range []string{"2026-08-26", "2026-08-27", "2026-08-28"} {
		if err := repos.logs.Record(habit.ID, date, true); err != nil {
			t.Fatal(err)
		}
	}

	streak, err := svc.ComputeStreak(habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 0 {
		t.Errorf("今天未打卡 streak 应归零, got %d", streak)
	}
}

func TestComputeStreakBrokenBySkip(t *testing.T) {
	svc, repos := newTestHabitService(t, mustDate(t, "2026-08-28"))

	habit, _, err := svc.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}
	// 昨天是跳过，断档
	for _, rec := range []struct {
		date string
		done bool
	}{
		{"2026-08-25", true},
		{"2026-08-26", true},
		{"2026-08-27", false},
		{"2026-08-28", true},
	} {
		if err := repos.logs.Record(habit.ID, rec.date, rec.done); err != nil {
			t.Fatal(err)
		}
	}

	streak, err := svc.ComputeStreak(habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 1 {
		t.Errorf("跳过断档后应只剩今天 1 天, got %d", streak)
	}
}

func TestConsecutiveFrom(t *testing.T) {
	from := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"空序列", nil, 0},
		{"只有今天", []string{"2026-08-28"}, 1},
		{"连续五天", []string{"2026-08-28", "2026-08-27", "2026-08-26", "2026-08-25", "2026-08-24"}, 5},
		{"中间断档", []string{"2026-08-28", "2026-08-27", "2026-08-25"}, 2},
		{"今天缺失", []string{"2026-08-27", "2026-08-26"}, 0},
		{"跨月", []string{"2026-08-28", "2026-08-27", "2026-08-26"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := consecutiveFrom(tt.dates, from); got != tt.want {
				t.Errorf("consecutiveFrom(%v) = %d, want %d", tt.dates, got, tt.want)
			}
		})
	}
}

func TestConsecutiveFromAcrossMonthBoundary(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dates := []string{"2026-03-01", "2026-02-28", "2026-02-27"}
	if got := consecutiveFrom(dates, from); got != 3 {
		t.Errorf("跨月回溯应为 3, got %d", got)
	}
}

func TestRenameHabit(t *testing.T) {
	svc, _ := newTestHabitService(t, mustDate(t, "2026-08-28"))

	habit, _, err := svc.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.RenameHabit(habit.ID, "  夜跑  "); err != nil {
		t.Fatalf("重命名失败: %v", err)
	}
	habits, err := svc.ListHabits(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 1 || habits[0].Name != "夜跑" {
		t.Errorf("重命名应去空白生效: got %v", habits)
	}

	if err := svc.RenameHabit(habit.ID, "x"); !errors.Is(err, util.ErrInvalidHabitName) {
		t.Errorf("非法新名称应拒绝, got %v", err)
	}
	if err := svc.RenameHabit(999, "新习惯"); !errors.Is(err, util.ErrHabitNotFound) {
		t.Errorf("不存在的习惯应返回 ErrHabitNotFound, got %v", err)
	}
}

func TestDeleteHabitThenStreak(t *testing.T) {
	svc, _ := newTestHabitService(t, mustDate(t, "2026-08-28"))

	habit, _, err := svc.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.MarkDone(habit.ID, true); err != nil {
		t.Fatal(err)
	}

	affected, err := svc.DeleteHabit(habit.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !affected {
		t.Fatal("删除应生效")
	}

	if _, err := svc.ComputeStreak(habit.ID); !errors.Is(err, util.ErrHabitNotFound) {
		t.Errorf("删除后查 streak 应返回 ErrHabitNotFound, got %v", err)
	}
}
