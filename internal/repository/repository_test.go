package repository

import (
	"testing"

	"habit_bot_backend/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func TestUserUpsertIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	if err := repo.Upsert(42, "alice"); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	// 重复注册不报错也不覆盖
	if err := repo.Upsert(42, "renamed"); err != nil {
		t.Fatalf("重复注册不应报错: %v", err)
	}

	user, err := repo.FindByID(42)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("重复注册覆盖了用户名: got %q", user.Username)
	}
}

func TestUserReminderTimeRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	if err := repo.Upsert(1, "alice"); err != nil {
		t.Fatal(err)
	}

	clock := "09:30"
	if err := repo.SetReminderTime(1, &clock); err != nil {
		t.Fatalf("设置提醒失败: %v", err)
	}
	got, err := repo.GetReminderTime(1)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != "09:30" {
		t.Errorf("提醒时间不对: got %v", got)
	}

	if err := repo.SetReminderTime(1, nil); err != nil {
		t.Fatalf("清除提醒失败: %v", err)
	}
	got, err = repo.GetReminderTime(1)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("清除后应返回 nil，got %v", *got)
	}

	// 不存在的用户也是 nil，不报错
	got, err = repo.GetReminderTime(999)
	if err != nil || got != nil {
		t.Errorf("不存在的用户: got %v, err %v", got, err)
	}
}

func TestListWithReminders(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	clock := "08:00"
	for _, u := range []struct {
		id    uint64
		clock *string
	}{{1, &clock}, {2, nil}, {3, &clock}} {
		if err := repo.Upsert(u.id, "u"); err != nil {
			t.Fatal(err)
		}
		if u.clock != nil {
			if err := repo.SetReminderTime(u.id, u.clock); err != nil {
				t.Fatal(err)
			}
		}
	}

	users, err := repo.ListWithReminders()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Fatalf("应只返回设置了提醒的用户: got %d", len(users))
	}
	for _, u := range users {
		if u.ReminderTime == nil {
			t.Errorf("用户 %d 的提醒时间为 nil", u.ID)
		}
	}
}

func TestFindByUserAndNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	habitRepo := NewHabitRepository(db)

	if err := userRepo.Upsert(1, "alice"); err != nil {
		t.Fatal(err)
	}
	habit := &model.Habit{UserID: 1, Name: "Read Books"}
	if err := habitRepo.Create(habit); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"read books", "READ BOOKS", "Read Books"} {
		found, err := habitRepo.FindByUserAndName(1, name)
		if err != nil {
			t.Fatal(err)
		}
		if found == nil || found.ID != habit.ID {
			t.Errorf("按 %q 查找应命中同一条习惯", name)
		}
	}

	// 别的用户看不到
	found, err := habitRepo.FindByUserAndName(2, "read books")
	if err != nil {
		t.Fatal(err)
	}
	if found != nil {
		t.Error("跨用户不应命中")
	}
}

func TestRecordLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	habitRepo := NewHabitRepository(db)
	logRepo := NewHabitLogRepository(db)

	if err := userRepo.Upsert(1, "alice"); err != nil {
		t.Fatal(err)
	}
	habit := &model.Habit{UserID: 1, Name: "运动"}
	if err := habitRepo.Create(habit); err != nil {
		t.Fatal(err)
	}

	if err := logRepo.Record(habit.ID, "2026-08-28", true); err != nil {
		t.Fatal(err)
	}
	if err := logRepo.Record(habit.ID, "2026-08-28", false); err != nil {
		t.Fatal(err)
	}

	logs, err := logRepo.ListByHabit(habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("同一天只能有一行记录: got %d", len(logs))
	}
	if logs[0].Done {
		t.Error("后写应覆盖先写，done 应为 false")
	}
}

func TestDeleteOwned(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	habitRepo := NewHabitRepository(db)
	logRepo := NewHabitLogRepository(db)

	if err := userRepo.Upsert(1, "alice"); err != nil {
		t.Fatal(err)
	}
	habit := &model.Habit{UserID: 1, Name: "阅读"}
	if err := habitRepo.Create(habit); err != nil {
		t.Fatal(err)
	}
	if err := logRepo.Record(habit.ID, "2026-08-27", true); err != nil {
		t.Fatal(err)
	}

	// 非属主删除无效
	affected, err := habitRepo.DeleteOwned(habit.ID, 999)
	if err != nil {
		t.Fatal(err)
	}
	if affected {
		t.Error("非属主删除不应生效")
	}

	affected, err = habitRepo.DeleteOwned(habit.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !affected {
		t.Fatal("属主删除应生效")
	}

	// 记录连带删除
	logs, err := logRepo.ListByHabit(habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 0 {
		t.Errorf("删除习惯后记录应清空: got %d 行", len(logs))
	}
}

func TestResetScoping(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	habitRepo := NewHabitRepository(db)
	logRepo := NewHabitLogRepository(db)

	seed := func(userID uint64) *model.Habit {
		if err := userRepo.Upsert(userID, "u"); err != nil {
			t.Fatal(err)
		}
		h := &model.Habit{UserID: userID, Name: "习惯A"}
		if err := habitRepo.Create(h); err != nil {
			t.Fatal(err)
		}
		if err := logRepo.Record(h.ID, "2026-08-28", true); err != nil {
			t.Fatal(err)
		}
		return h
	}

	h1 := seed(1)
	h2 := seed(2)

	// 只清记录：习惯保留
	affected, err := habitRepo.ResetLogsOnly(1)
	if err != nil {
		t.Fatal(err)
	}
	if !affected {
		t.Error("有记录被清掉，affected 应为 true")
	}
	if logs, _ := logRepo.ListByHabit(h1.ID); len(logs) != 0 {
		t.Error("用户1的记录应被清空")
	}
	if count, _ := habitRepo.CountByUser(1); count != 1 {
		t.Error("只清记录时习惯应保留")
	}

	// 全量重置：习惯和记录都删掉
	affected, err = habitRepo.ResetUser(1)
	if err != nil {
		t.Fatal(err)
	}
	if !affected {
		t.Error("有习惯被删掉，affected 应为 true")
	}
	if count, _ := habitRepo.CountByUser(1); count != 0 {
		t.Error("全量重置后习惯应清空")
	}

	// 用户2的数据不受影响
	if count, _ := habitRepo.CountByUser(2); count != 1 {
		t.Error("重置不应波及其他用户")
	}
	if logs, _ := logRepo.ListByHabit(h2.ID); len(logs) != 1 {
		t.Error("其他用户的记录不应被清")
	}

	// 空用户重置：affected=false
	affected, err = habitRepo.ResetUser(999)
	if err != nil {
		t.Fatal(err)
	}
	if affected {
		t.Error("无数据可删时 affected 应为 false")
	}
}

func TestDoneDatesByUserDesc(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	habitRepo := NewHabitRepository(db)
	logRepo := NewHabitLogRepository(db)

	if err := userRepo.Upsert(1, "alice"); err != nil {
		t.Fatal(err)
	}
	h := &model.Habit{UserID: 1, Name: "冥想"}
	if err := habitRepo.Create(h); err != nil {
		t.Fatal(err)
	}
	for _, rec := range []struct {
		date string
		done bool
	}{
		{"2026-08-26", true},
		{"2026-08-27", false}, // 跳过的不计入
		{"2026-08-28", true},
	} {
		if err := logRepo.Record(h.ID, rec.date, rec.done); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := logRepo.DoneDatesByUserDesc(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("只应返回 done=true 的行: got %d", len(rows))
	}
	if rows[0].LogDate != "2026-08-28" || rows[1].LogDate != "2026-08-26" {
		t.Errorf("日期应倒序: got %v", rows)
	}
	if rows[0].HabitName != "冥想" {
		t.Errorf("习惯名应一并带出: got %q", rows[0].HabitName)
	}
}

func TestCountForUserOnDate(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	habitRepo := NewHabitRepository(db)
	logRepo := NewHabitLogRepository(db)

	if err := userRepo.Upsert(1, "alice"); err != nil {
		t.Fatal(err)
	}
	for i, done := range []bool{true, true, false} {
		h := &model.Habit{UserID: 1, Name: "习惯" + string(rune('A'+i))}
		if err := habitRepo.Create(h); err != nil {
			t.Fatal(err)
		}
		if err := logRepo.Record(h.ID, "2026-08-28", done); err != nil {
			t.Fatal(err)
		}
	}

	doneCount, err := logRepo.CountForUserOnDate(1, "2026-08-28", true)
	if err != nil {
		t.Fatal(err)
	}
	skipCount, err := logRepo.CountForUserOnDate(1, "2026-08-28", false)
	if err != nil {
		t.Fatal(err)
	}
	if doneCount != 2 || skipCount != 1 {
		t.Errorf("今日统计不对: done=%d skip=%d", doneCount, skipCount)
	}
}
