package service

import (
	"habit_bot_backend/internal/model"
	"habit_bot_backend/internal/repository"
	"habit_bot_backend/internal/util"
	"strings"
	"time"
)

// HabitService 习惯领域规则：名称校验与去重、每日打卡、连续天数计算。
type HabitService struct {
	UserRepo  *repository.UserRepository
	HabitRepo *repository.HabitRepository
	LogRepo   *repository.HabitLogRepository

	// 参考日期时钟，测试中注入固定时间
	nowFunc func() time.Time
}

func NewHabitService(userRepo *repository.UserRepository, habitRepo *repository.HabitRepository, logRepo *repository.HabitLogRepository) *HabitService {
	return &HabitService{
		UserRepo:  userRepo,
		HabitRepo: habitRepo,
		LogRepo:   logRepo,
		nowFunc:   time.Now,
	}
}

func (s *HabitService) today() time.Time {
	return s.nowFunc()
}

// validHabitName 名称规则：去空白后至少2个字符，原始输入不超过100个字符。
func validHabitName(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if len([]rune(trimmed)) < 2 {
		return "", false
	}
	if len([]rune(raw)) > 100 {
		return "", false
	}
	return trimmed, true
}

// AddHabit 创建习惯。同名（不区分大小写）习惯已存在时返回已有习惯，created=false。
// 用户不存在时先注册，因此崩溃在两步之间只会留下无习惯的用户，可安全重试。
func (s *HabitService) AddHabit(userID uint64, username, rawName string) (*model.Habit, bool, error) {
	name, ok := validHabitName(rawName)
	if !ok {
		return nil, false, util.ErrInvalidHabitName
	}

	if err := s.UserRepo.Upsert(userID, username); err != nil {
		return nil, false, err
	}

	existing, err := s.HabitRepo.FindByUserAndName(userID, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	habit := &model.Habit{UserID: userID, Name: name}
	if err := s.HabitRepo.Create(habit); err != nil {
		return nil, false, err
	}
	return habit, true, nil
}

// MarkDone 记录今天的完成状态，后写覆盖先写。
// 返回 overwrote=true 表示今天已有记录被覆盖，前端据此提示用户而不是静默覆盖。
func (s *HabitService) MarkDone(habitID uint, done bool) (bool, error) {
	if _, err := s.HabitRepo.FindByID(habitID); err != nil {
		return false, util.ErrHabitNotFound
	}

	date := util.FormatDate(s.today())
	existing, err := s.LogRepo.FindByHabitAndDate(habitID, date)
	if err != nil {
		return false, err
	}

	if err := s.LogRepo.Record(habitID, date, done); err != nil {
		return false, err
	}
	return existing != nil, nil
}

// ComputeStreak 从今天往回数连续 done=true 的天数。
// 今天没有记录则为 0，即使昨天之前连续了30天——该语义与原产品一致。
func (s *HabitService) ComputeStreak(habitID uint) (int, error) {
	if _, err := s.HabitRepo.FindByID(habitID); err != nil {
		return 0, util.ErrHabitNotFound
	}

	dates, err := s.LogRepo.DoneDatesDesc(habitID)
	if err != nil {
		return 0, err
	}
	return consecutiveFrom(dates, s.today()), nil
}

// consecutiveFrom 在按日期倒序的 done 日期序列中，从参考日开始逐日回溯计数，
// 遇到断档立即停止。
func consecutiveFrom(datesDesc []string, from time.Time) int {
	streak := 0
	expected := util.FormatDate(from)
	cursor := from
	for _, d := range datesDesc {
		if d != expected {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
		expected = util.FormatDate(cursor)
	}
	return streak
}

// RenameHabit 重命名，沿用创建时的名称规则。
func (s *HabitService) RenameHabit(habitID uint, rawName string) error {
	name, ok := validHabitName(rawName)
	if !ok {
		return util.ErrInvalidHabitName
	}

	affected, err := s.HabitRepo.Rename(habitID, name)
	if err != nil {
		return err
	}
	if !affected {
		return util.ErrHabitNotFound
	}
	return nil
}

// DeleteHabit 属主校验的删除，连带清掉全部打卡记录。
func (s *HabitService) DeleteHabit(habitID uint, userID uint64) (bool, error) {
	return s.HabitRepo.DeleteOwned(habitID, userID)
}

func (s *HabitService) ListHabits(userID uint64) ([]model.Habit, error) {
	return s.HabitRepo.ListByUser(userID)
}

// ResetAll 删除用户全部习惯与记录。
func (s *HabitService) ResetAll(userID uint64) (bool, error) {
	return s.HabitRepo.ResetUser(userID)
}

// ResetStatsOnly 只清记录，习惯保留。
func (s *HabitService) ResetStatsOnly(userID uint64) (bool, error) {
	return s.HabitRepo.ResetLogsOnly(userID)
}
