package controller

import (
	"habit_bot_backend/internal/service"
	"habit_bot_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService  *service.StatsService
	ExportService *service.ExportService
}

func NewStatsController(statsService *service.StatsService, exportService *service.ExportService) *StatsController {
	return &StatsController{
		StatsService:  statsService,
		ExportService: exportService,
	}
}

// @Summary 用户统计
// @Description 习惯总数、今日完成/跳过数、历史最佳连续记录和最新习惯的当前连续天数
// @Tags 统计
// @Produce json
// @Security BotSecretAuth
// @Param user_id query int true "用户ID"
// @Success 200 {object} util.Response
// @Router /stats [get]
func (c *StatsController) GetStats(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	stats, err := c.StatsService.GetStats(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 导出打卡数据
// @Description 导出用户全部习惯与打卡记录为 JSON 文件，返回下载地址
// @Tags 统计
// @Produce json
// @Security BotSecretAuth
// @Param user_id query int true "用户ID"
// @Success 200 {object} util.Response
// @Router /export [post]
func (c *StatsController) Export(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	url, err := c.ExportService.Export(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
