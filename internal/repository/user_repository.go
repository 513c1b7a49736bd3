package repository

import (
	"errors"
	"habit_bot_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Upsert 注册用户，已存在则不做任何修改。幂等，重复调用不报错。
func (r *UserRepository) Upsert(id uint64, username string) error {
	user := model.User{ID: id, Username: username}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetReminderTime 设置或清除（t 为 nil）提醒时间。
func (r *UserRepository) SetReminderTime(id uint64, t *string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("reminder_time", t).Error
}

// GetReminderTime 用户不存在或未设置时返回 nil。
func (r *UserRepository) GetReminderTime(id uint64) (*string, error) {
	var user model.User
	err := r.DB.Select("reminder_time").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user.ReminderTime, nil
}

// ListWithReminders 所有设置了提醒时间的用户，供调度器每分钟扫描。
func (r *UserRepository) ListWithReminders() ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("reminder_time IS NOT NULL").Find(&users).Error
	return users, err
}
