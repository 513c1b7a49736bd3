package service

import (
	"context"
	"fmt"
	"habit_bot_backend/internal/model"
	"habit_bot_backend/internal/repository"
	"habit_bot_backend/internal/util"
	"habit_bot_backend/pkg/logger"
	"habit_bot_backend/pkg/monitoring"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Notifier 对话前端提供的外发能力，尽力送达，允许对单个用户失败。
type Notifier interface {
	Notify(ctx context.Context, userID uint64, text string) error
}

// ReminderService 提醒时间管理 + 每分钟的到点扫描。
// 扫描把当前 "HH:MM" 与每个用户的提醒时间做字符串比对，命中即异步派发一条提醒；
// 守卫键保证同一用户在同一分钟内最多派发一次（tick 延迟越界时不会重发）。
type ReminderService struct {
	UserRepo  *repository.UserRepository
	HabitRepo *repository.HabitRepository
	Notifier  Notifier
	Guard     OnceStore
	GuardTTL  time.Duration

	nowFunc func() time.Time
	wg      sync.WaitGroup
}

func NewReminderService(userRepo *repository.UserRepository, habitRepo *repository.HabitRepository, notifier Notifier, guard OnceStore, guardTTL time.Duration) *ReminderService {
	return &ReminderService{
		UserRepo:  userRepo,
		HabitRepo: habitRepo,
		Notifier:  notifier,
		Guard:     guard,
		GuardTTL:  guardTTL,
		nowFunc:   time.Now,
	}
}

// SetReminderTime 设置每日提醒时间，"HH:MM" 24小时制。
func (s *ReminderService) SetReminderTime(userID uint64, username, clock string) error {
	if !util.ValidClock(clock) {
		return util.ErrInvalidReminderTime
	}
	if err := s.UserRepo.Upsert(userID, username); err != nil {
		return err
	}
	return s.UserRepo.SetReminderTime(userID, &clock)
}

// ClearReminderTime 关闭每日提醒。
func (s *ReminderService) ClearReminderTime(userID uint64) error {
	return s.UserRepo.SetReminderTime(userID, nil)
}

func (s *ReminderService) GetReminderTime(userID uint64) (*string, error) {
	return s.UserRepo.GetReminderTime(userID)
}

// ProcessDueReminders 一次 tick：扫描全部设置了提醒的用户，到点的异步派发。
// 单个用户的派发失败只记日志，不影响其他用户，也不影响后续 tick。
func (s *ReminderService) ProcessDueReminders(ctx context.Context) error {
	monitoring.ReminderTicks.Inc()

	now := s.nowFunc()
	current := now.Format(util.ClockLayout)

	users, err := s.UserRepo.ListWithReminders()
	if err != nil {
		return err
	}

	for _, user := range users {
		if user.ReminderTime == nil || *user.ReminderTime != current {
			continue
		}

		// 同一用户同一分钟只发一次
		key := fmt.Sprintf("reminder:fired:%d:%s:%s", user.ID, util.FormatDate(now), current)
		fresh, err := s.Guard.Once(ctx, key, s.GuardTTL)
		if err != nil {
			// 守卫不可用时宁可多发不可漏发
			logger.Log.Warn("reminder guard unavailable", zap.Uint64("user_id", user.ID), zap.Error(err))
		} else if !fresh {
			continue
		}

		habits, err := s.HabitRepo.ListByUser(user.ID)
		if err != nil {
			logger.Log.Error("reminder habit scan failed", zap.Uint64("user_id", user.ID), zap.Error(err))
			continue
		}
		if len(habits) == 0 {
			continue
		}

		text := reminderText(habits)
		userID := user.ID
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.dispatch(userID, text)
		}()
	}

	return nil
}

// dispatch 在独立 goroutine 中执行，慢或失败的外发不会拖住 tick 循环。
func (s *ReminderService) dispatch(userID uint64, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Notifier.Notify(ctx, userID, text); err != nil {
		monitoring.ReminderDispatchFailures.Inc()
		logger.Log.Error("reminder dispatch failed", zap.Uint64("user_id", userID), zap.Error(err))
		return
	}
	monitoring.ReminderDispatches.Inc()
}

func reminderText(habits []model.Habit) string {
	var b strings.Builder
	b.WriteString("🌿 该打卡啦！今天别忘了这些习惯：\n\n")
	for _, h := range habits {
		b.WriteString("• ")
		b.WriteString(h.Name)
		b.WriteString("\n")
	}
	b.WriteString("\n完成后记得回来打卡哦 💪")
	return b.String()
}
