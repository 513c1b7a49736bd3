package controller

import (
	"errors"
	"habit_bot_backend/internal/service"
	"habit_bot_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ConfirmationController struct {
	ConfirmationService *service.ConfirmationService
}

func NewConfirmationController(confirmationService *service.ConfirmationService) *ConfirmationController {
	return &ConfirmationController{ConfirmationService: confirmationService}
}

// @Summary 请求重置用户数据
// @Description mode 为 all 时删除全部习惯与记录，stats 时只清空打卡记录；返回确认令牌
// @Tags 确认
// @Accept json
// @Produce json
// @Security BotSecretAuth
// @Param request body object true "user_id、mode（all|stats）"
// @Success 200 {object} util.Response
// @Router /reset [post]
func (c *ConfirmationController) RequestReset(ctx *gin.Context) {
	var req struct {
		UserID uint64 `json:"user_id" binding:"required"`
		Mode   string `json:"mode" binding:"required,oneof=all stats"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	action := service.ActionResetAll
	if req.Mode == "stats" {
		action = service.ActionResetStats
	}

	token, expiresAt, err := c.ConfirmationService.Issue(req.UserID, action, 0)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"confirmToken": token, "expiresAt": expiresAt})
}

// @Summary 执行已确认的操作
// @Description 消费确认令牌并执行其中的破坏性操作，令牌只能使用一次
// @Tags 确认
// @Accept json
// @Produce json
// @Security BotSecretAuth
// @Param request body object true "token"
// @Success 200 {object} util.Response
// @Router /confirm [post]
func (c *ConfirmationController) Confirm(ctx *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ConfirmationService.Confirm(ctx.Request.Context(), req.Token)
	switch {
	case errors.Is(err, util.ErrInvalidConfirmation):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrConfirmationUsed):
		util.Error(ctx, 409, err.Error())
	case err != nil:
		util.LogInternalError(ctx, err)
	default:
		util.Success(ctx, result)
	}
}
