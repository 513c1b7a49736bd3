package model

import "time"

// Habit 用户的一条习惯。名称在同一用户下不区分大小写唯一（由服务层保证）。
// swagger:model Habit
type Habit struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"userId"`
	Name   string `gorm:"size:100;not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`

	Logs []HabitLog `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Habit) TableName() string {
	return "habits"
}
