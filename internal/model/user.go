package model

import "time"

// User 习惯打卡用户。ID 由对话前端分配（即时通讯平台的用户号），不是自增主键。
// ReminderTime 为空表示未开启每日提醒。
// swagger:model User
type User struct {
	ID           uint64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username     string  `gorm:"size:100" json:"username"`
	ReminderTime *string `gorm:"size:5" json:"reminderTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Habits []Habit `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}
