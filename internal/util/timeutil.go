package util

import "time"

const (
	// DateLayout 打卡日期的存储格式，按字典序排序即按日期排序
	DateLayout = "2006-01-02"
	// ClockLayout 提醒时间格式（24小时制）
	ClockLayout = "15:04"
)

// FormatDate 取时刻所在的日历日
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidClock 校验 "HH:MM" 提醒时间。必须是两位小时两位分钟，如 "09:30"。
func ValidClock(s string) bool {
	if len(s) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}
