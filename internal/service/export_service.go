package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"habit_bot_backend/internal/repository"
	"time"
)

// habitExport 导出文件中的一条习惯
type habitExport struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"createdAt"`
	Logs      []logExport `json:"logs"`
}

type logExport struct {
	Date string `json:"date"`
	Done bool   `json:"done"`
}

type userExport struct {
	UserID     uint64        `json:"userId"`
	ExportedAt time.Time     `json:"exportedAt"`
	Habits     []habitExport `json:"habits"`
}

// ExportService 把用户的全部习惯和打卡记录导出成 JSON 文件，
// 交给存储后端保存，返回可下载的地址。前端用它生成统计图。
type ExportService struct {
	HabitRepo *repository.HabitRepository
	LogRepo   *repository.HabitLogRepository
	Storage   *StorageService

	nowFunc func() time.Time
}

func NewExportService(habitRepo *repository.HabitRepository, logRepo *repository.HabitLogRepository, storage *StorageService) *ExportService {
	return &ExportService{
		HabitRepo: habitRepo,
		LogRepo:   logRepo,
		Storage:   storage,
		nowFunc:   time.Now,
	}
}

func (s *ExportService) Export(ctx context.Context, userID uint64) (string, error) {
	habits, err := s.HabitRepo.ListByUser(userID)
	if err != nil {
		return "", err
	}

	now := s.nowFunc()
	export := userExport{UserID: userID, ExportedAt: now}

	for _, h := range habits {
		logs, err := s.LogRepo.ListByHabit(h.ID)
		if err != nil {
			return "", err
		}
		he := habitExport{ID: h.ID, Name: h.Name, CreatedAt: h.CreatedAt, Logs: make([]logExport, 0, len(logs))}
		for _, l := range logs {
			he.Logs = append(he.Logs, logExport{Date: l.LogDate, Done: l.Done})
		}
		export.Habits = append(export.Habits, he)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("exports/%d/habits-%s.json", userID, now.Format("20060102-150405"))
	return s.Storage.Provider.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), "application/json")
}
