package service

import (
	"habit_bot_backend/internal/repository"
	"habit_bot_backend/internal/util"
	"time"
)

// StreakEntry 某条习惯的连续天数
type StreakEntry struct {
	HabitName string `json:"name"`
	Days      int    `json:"days"`
}

// UserStats 用户统计汇总。
// BestRun 是历史最长连续记录（不要求延续到今天）；
// CurrentStreak 是最近创建那条习惯的当前连续天数（必须包含今天）。
// 两者语义不同，刻意分成两个字段。
type UserStats struct {
	TotalHabits   int64       `json:"totalHabits"`
	DoneToday     int64       `json:"doneToday"`
	SkippedToday  int64       `json:"skippedToday"`
	BestRun       StreakEntry `json:"bestRun"`
	CurrentStreak StreakEntry `json:"currentStreak"`
}

type StatsService struct {
	HabitRepo    *repository.HabitRepository
	LogRepo      *repository.HabitLogRepository
	HabitService *HabitService

	nowFunc func() time.Time
}

func NewStatsService(habitRepo *repository.HabitRepository, logRepo *repository.HabitLogRepository, habitService *HabitService) *StatsService {
	return &StatsService{
		HabitRepo:    habitRepo,
		LogRepo:      logRepo,
		HabitService: habitService,
		nowFunc:      time.Now,
	}
}

func (s *StatsService) GetStats(userID uint64) (*UserStats, error) {
	stats := &UserStats{}
	today := util.FormatDate(s.nowFunc())

	total, err := s.HabitRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	stats.TotalHabits = total

	if stats.DoneToday, err = s.LogRepo.CountForUserOnDate(userID, today, true); err != nil {
		return nil, err
	}
	if stats.SkippedToday, err = s.LogRepo.CountForUserOnDate(userID, today, false); err != nil {
		return nil, err
	}

	if stats.BestRun, err = s.bestRun(userID); err != nil {
		return nil, err
	}

	// 当前连续天数取最近创建的习惯（id 最大，确定性的决胜规则）
	latest, err := s.HabitRepo.LatestByUser(userID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		days, err := s.HabitService.ComputeStreak(latest.ID)
		if err != nil {
			return nil, err
		}
		stats.CurrentStreak = StreakEntry{HabitName: latest.Name, Days: days}
	}

	return stats, nil
}

// bestRun 对用户每条习惯的 done 日期做连续段分组，取全局最长的一段。
// 扫描行按 (habit_id, log_date DESC) 排好序，逐行比较相邻日期是否恰差一天。
func (s *StatsService) bestRun(userID uint64) (StreakEntry, error) {
	rows, err := s.LogRepo.DoneDatesByUserDesc(userID)
	if err != nil {
		return StreakEntry{}, err
	}

	best := StreakEntry{}
	var (
		curHabit uint
		prev     time.Time
		run      int
	)

	flush := func(name string) {
		if run > best.Days {
			best = StreakEntry{HabitName: name, Days: run}
		}
	}

	var curName string
	for _, row := range rows {
		d, err := time.Parse(util.DateLayout, row.LogDate)
		if err != nil {
			return StreakEntry{}, err
		}

		if row.HabitID != curHabit {
			flush(curName)
			curHabit, curName = row.HabitID, row.HabitName
			run = 1
		} else if prev.AddDate(0, 0, -1).Equal(d) {
			run++
		} else {
			flush(curName)
			run = 1
		}
		prev = d
	}
	flush(curName)

	return best, nil
}
