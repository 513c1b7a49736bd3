package controller

import (
	"errors"
	"habit_bot_backend/internal/service"
	"habit_bot_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	ReminderService *service.ReminderService
}

func NewReminderController(reminderService *service.ReminderService) *ReminderController {
	return &ReminderController{ReminderService: reminderService}
}

// @Summary 设置每日提醒时间
// @Tags 提醒
// @Accept json
// @Produce json
// @Security BotSecretAuth
// @Param request body object true "user_id、username、time（HH:MM）"
// @Success 200 {object} util.Response
// @Router /reminder [put]
func (c *ReminderController) SetReminder(ctx *gin.Context) {
	var req struct {
		UserID   uint64 `json:"user_id" binding:"required"`
		Username string `json:"username"`
		Time     string `json:"time" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ReminderService.SetReminderTime(req.UserID, req.Username, req.Time); err != nil {
		if errors.Is(err, util.ErrInvalidReminderTime) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"time": req.Time})
}

// @Summary 查询提醒时间
// @Tags 提醒
// @Produce json
// @Security BotSecretAuth
// @Param user_id query int true "用户ID"
// @Success 200 {object} util.Response
// @Router /reminder [get]
func (c *ReminderController) GetReminder(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	t, err := c.ReminderService.GetReminderTime(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"time": t})
}

// @Summary 关闭每日提醒
// @Tags 提醒
// @Produce json
// @Security BotSecretAuth
// @Param user_id query int true "用户ID"
// @Success 200 {object} util.Response
// @Router /reminder [delete]
func (c *ReminderController) ClearReminder(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	if err := c.ReminderService.ClearReminderTime(userID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"time": nil})
}
