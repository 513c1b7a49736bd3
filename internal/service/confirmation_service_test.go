package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"habit_bot_backend/internal/util"
)

const testSecret = "confirmation-test-secret-key-0123456789ab"

func newTestConfirmationService(t *testing.T, now time.Time, ttl time.Duration) (*ConfirmationService, *HabitService) {
	t.Helper()
	habits, _ := newTestHabitService(t, now)
	svc := NewConfirmationService(habits, NewMemoryOnceStore(), testSecret, ttl)
	svc.nowFunc = func() time.Time { return now }
	return svc, habits
}

func TestConfirmDeleteHabit(t *testing.T) {
	now := time.Now()
	svc, habits := newTestConfirmationService(t, now, 5*time.Minute)

	habit, _, err := habits.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}

	token, expiresAt, err := svc.Issue(1, ActionDeleteHabit, habit.ID)
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}
	if !expiresAt.After(now) {
		t.Errorf("过期时间应在签发之后: %v", expiresAt)
	}

	result, err := svc.Confirm(context.Background(), token)
	if err != nil {
		t.Fatalf("确认失败: %v", err)
	}
	if result.Action != ActionDeleteHabit || !result.Affected {
		t.Errorf("确认结果不对: %+v", result)
	}

	list, err := habits.ListHabits(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Error("确认后习惯应已删除")
	}
}

func TestConfirmReplayRejected(t *testing.T) {
	svc, habits := newTestConfirmationService(t, time.Now(), 5*time.Minute)

	habit, _, err := habits.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}
	token, _, err := svc.Issue(1, ActionDeleteHabit, habit.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Confirm(context.Background(), token); err != nil {
		t.Fatal(err)
	}
	// 同一令牌第二次使用被拒
	if _, err := svc.Confirm(context.Background(), token); !errors.Is(err, util.ErrConfirmationUsed) {
		t.Errorf("重放应返回 ErrConfirmationUsed, got %v", err)
	}
}

func TestConfirmExpiredRejected(t *testing.T) {
	// TTL 为负，签发即过期
	svc, habits := newTestConfirmationService(t, time.Now(), -time.Minute)

	habit, _, err := habits.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}
	token, _, err := svc.Issue(1, ActionDeleteHabit, habit.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Confirm(context.Background(), token); !errors.Is(err, util.ErrInvalidConfirmation) {
		t.Errorf("过期令牌应返回 ErrInvalidConfirmation, got %v", err)
	}

	// 操作没有被执行
	list, err := habits.ListHabits(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Error("过期确认不应执行删除")
	}
}

func TestConfirmTamperedRejected(t *testing.T) {
	svc, habits := newTestConfirmationService(t, time.Now(), 5*time.Minute)

	habit, _, err := habits.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}
	token, _, err := svc.Issue(1, ActionDeleteHabit, habit.ID)
	if err != nil {
		t.Fatal(err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.Confirm(context.Background(), tampered); !errors.Is(err, util.ErrInvalidConfirmation) {
		t.Errorf("被篡改的令牌应返回 ErrInvalidConfirmation, got %v", err)
	}
	if _, err := svc.Confirm(context.Background(), "not-a-token"); !errors.Is(err, util.ErrInvalidConfirmation) {
		t.Errorf("乱码令牌应返回 ErrInvalidConfirmation, got %v", err)
	}
}

func TestConfirmResetScoping(t *testing.T) {
	svc, habits := newTestConfirmationService(t, time.Now(), 5*time.Minute)

	habit, _, err := habits.AddHabit(1, "alice", "晨跑")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := habits.MarkDone(habit.ID, true); err != nil {
		t.Fatal(err)
	}

	// 只清记录
	token, _, err := svc.Issue(1, ActionResetStats, 0)
	if err != nil {
		t.Fatal(err)
	}
	result, err := svc.Confirm(context.Background(), token)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Affected {
		t.Error("有记录被清，Affected 应为 true")
	}
	list, err := habits.ListHabits(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatal("只清记录时习惯应保留")
	}
	streak, err := habits.ComputeStreak(habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 0 {
		t.Errorf("记录清空后 streak 应为 0, got %d", streak)
	}

	// 全量重置
	token, _, err = svc.Issue(1, ActionResetAll, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Confirm(context.Background(), token); err != nil {
		t.Fatal(err)
	}
	list, err = habits.ListHabits(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Error("全量重置后习惯应清空")
	}
}

func TestMemoryOnceStore(t *testing.T) {
	store := NewMemoryOnceStore()
	ctx := context.Background()

	fresh, err := store.Once(ctx, "k1", time.Minute)
	if err != nil || !fresh {
		t.Fatalf("首次应为 fresh: %v, %v", fresh, err)
	}
	fresh, err = store.Once(ctx, "k1", time.Minute)
	if err != nil || fresh {
		t.Fatalf("重复键应为非 fresh: %v, %v", fresh, err)
	}

	// 过期后可重用
	fresh, err = store.Once(ctx, "k2", -time.Second)
	if err != nil || !fresh {
		t.Fatal(err)
	}
	fresh, err = store.Once(ctx, "k2", time.Minute)
	if err != nil || !fresh {
		t.Errorf("过期键应重新可用: %v, %v", fresh, err)
	}
}
