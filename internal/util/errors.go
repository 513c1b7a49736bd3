package util

import "errors"

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrHabitNotFound       = errors.New("习惯不存在或不属于当前用户")
	ErrInvalidHabitName    = errors.New("习惯名称长度需在2-100个字符之间")
	ErrInvalidReminderTime = errors.New("提醒时间格式应为 HH:MM（24小时制）")
	ErrInvalidConfirmation = errors.New("确认令牌无效或已过期")
	ErrConfirmationUsed    = errors.New("确认令牌已被使用")
)
