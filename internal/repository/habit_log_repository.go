package repository

import (
	"errors"
	"habit_bot_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HabitLogRepository struct {
	DB *gorm.DB
}

func NewHabitLogRepository(db *gorm.DB) *HabitLogRepository {
	return &HabitLogRepository{DB: db}
}

// Record 写入某天的完成状态。同一 (habit_id, log_date) 再次写入时覆盖 done 标记。
func (r *HabitLogRepository) Record(habitID uint, date string, done bool) error {
	log := model.HabitLog{HabitID: habitID, LogDate: date, Done: done}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "log_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"done": done}),
	}).Create(&log).Error
}

// FindByHabitAndDate 当天没有记录时返回 (nil, nil)。
func (r *HabitLogRepository) FindByHabitAndDate(habitID uint, date string) (*model.HabitLog, error) {
	var log model.HabitLog
	err := r.DB.Where("habit_id = ? AND log_date = ?", habitID, date).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// DoneDatesDesc 习惯所有 done=true 的日期，按日期倒序，供连续打卡计算回溯。
func (r *HabitLogRepository) DoneDatesDesc(habitID uint) ([]string, error) {
	var dates []string
	err := r.DB.Model(&model.HabitLog{}).
		Where("habit_id = ? AND done = ?", habitID, true).
		Order("log_date DESC").
		Pluck("log_date", &dates).Error
	return dates, err
}

func (r *HabitLogRepository) ListByHabit(habitID uint) ([]model.HabitLog, error) {
	var logs []model.HabitLog
	err := r.DB.Where("habit_id = ?", habitID).Order("log_date").Find(&logs).Error
	return logs, err
}

// CountForUserOnDate 用户在某天 done 状态为指定值的打卡数。
func (r *HabitLogRepository) CountForUserOnDate(userID uint64, date string, done bool) (int64, error) {
	var count int64
	err := r.DB.Model(&model.HabitLog{}).
		Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Where("habits.user_id = ? AND habit_logs.log_date = ? AND habit_logs.done = ?", userID, date, done).
		Count(&count).Error
	return count, err
}

// DoneDateRow 历史最佳连胜计算用的扫描行
type DoneDateRow struct {
	HabitID   uint
	HabitName string
	LogDate   string
}

// DoneDatesByUserDesc 用户所有 done=true 的打卡行，按习惯分组、组内日期倒序。
func (r *HabitLogRepository) DoneDatesByUserDesc(userID uint64) ([]DoneDateRow, error) {
	var rows []DoneDateRow
	err := r.DB.Model(&model.HabitLog{}).
		Select("habit_logs.habit_id AS habit_id, habits.name AS habit_name, habit_logs.log_date AS log_date").
		Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Where("habits.user_id = ? AND habit_logs.done = ?", userID, true).
		Order("habit_logs.habit_id, habit_logs.log_date DESC").
		Scan(&rows).Error
	return rows, err
}
