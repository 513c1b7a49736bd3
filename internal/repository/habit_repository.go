package repository

import (
	"errors"
	"habit_bot_backend/internal/model"

	"gorm.io/gorm"
)

type HabitRepository struct {
	DB *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{DB: db}
}

func (r *HabitRepository) Create(habit *model.Habit) error {
	return r.DB.Create(habit).Error
}

func (r *HabitRepository) FindByID(id uint) (*model.Habit, error) {
	var habit model.Habit
	err := r.DB.First(&habit, id).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// FindByUserAndName 按名称查找用户的习惯，不区分大小写。未找到返回 (nil, nil)。
func (r *HabitRepository) FindByUserAndName(userID uint64, name string) (*model.Habit, error) {
	var habit model.Habit
	err := r.DB.Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *HabitRepository) ListByUser(userID uint64) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.DB.Where("user_id = ?", userID).Order("id").Find(&habits).Error
	return habits, err
}

func (r *HabitRepository) CountByUser(userID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Habit{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// LatestByUser 用户最近创建的习惯（id 最大）。没有习惯时返回 (nil, nil)。
func (r *HabitRepository) LatestByUser(userID uint64) (*model.Habit, error) {
	var habit model.Habit
	err := r.DB.Where("user_id = ?", userID).Order("id DESC").First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// Rename 返回是否有行被更新，false 表示习惯不存在。
func (r *HabitRepository) Rename(id uint, newName string) (bool, error) {
	res := r.DB.Model(&model.Habit{}).Where("id = ?", id).Update("name", newName)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteOwned 删除属于指定用户的习惯及其全部打卡记录，单事务。
// 习惯不存在或不属于该用户时返回 (false, nil)，不做任何修改。
func (r *HabitRepository) DeleteOwned(id uint, userID uint64) (bool, error) {
	deleted := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var habit model.Habit
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("habit_id = ?", id).Delete(&model.HabitLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Habit{}).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

// ResetUser 删除用户的全部习惯与打卡记录，单事务。返回是否删除了任何习惯。
func (r *HabitRepository) ResetUser(userID uint64) (bool, error) {
	affected := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("DELETE FROM habit_logs WHERE habit_id IN (SELECT id FROM habits WHERE user_id = ?)", userID)
		if res.Error != nil {
			return res.Error
		}
		res = tx.Where("user_id = ?", userID).Delete(&model.Habit{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected > 0
		return nil
	})
	return affected, err
}

// ResetLogsOnly 只清空打卡记录，保留习惯。返回是否删除了任何记录。
func (r *HabitRepository) ResetLogsOnly(userID uint64) (bool, error) {
	res := r.DB.Exec("DELETE FROM habit_logs WHERE habit_id IN (SELECT id FROM habits WHERE user_id = ?)", userID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
