// @title HabitBot 后端 API
// @version 1.0
// @description 习惯打卡机器人的后端服务：习惯管理、连续打卡统计与定时提醒。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BotSecretAuth
// @in header
// @name X-Bot-Secret

package main

import (
	"flag"
	"habit_bot_backend/internal/app"
	"habit_bot_backend/internal/config"
	"habit_bot_backend/pkg/logger"
	"log"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	application.Run()
}
