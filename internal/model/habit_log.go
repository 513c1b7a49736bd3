package model

// HabitLog 某条习惯在某个日历日的完成状态。
// (habit_id, log_date) 唯一：同一天重复写入覆盖 done 标记而不是新增行。
// swagger:model HabitLog
type HabitLog struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	HabitID uint   `gorm:"not null;uniqueIndex:idx_habit_log_date" json:"habitId"`
	LogDate string `gorm:"size:10;not null;uniqueIndex:idx_habit_log_date" json:"date"` // YYYY-MM-DD
	Done    bool   `gorm:"not null;default:true" json:"done"`
}

func (HabitLog) TableName() string {
	return "habit_logs"
}
