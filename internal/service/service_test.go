package service

import (
	"testing"
	"time"

	"habit_bot_backend/internal/model"
	"habit_bot_backend/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 测试共用的内存数据库和固定时钟

type testRepos struct {
	users  *repository.UserRepository
	habits *repository.HabitRepository
	logs   *repository.HabitLogRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Habit{}, &model.HabitLog{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return testRepos{
		users:  repository.NewUserRepository(db),
		habits: repository.NewHabitRepository(db),
		logs:   repository.NewHabitLogRepository(db),
	}
}

func newTestHabitService(t *testing.T, now time.Time) (*HabitService, testRepos) {
	t.Helper()
	repos := newTestRepos(t)
	svc := NewHabitService(repos.users, repos.habits, repos.logs)
	svc.nowFunc = func() time.Time { return now }
	return svc, repos
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("测试日期 %q 非法: %v", s, err)
	}
	return d
}
