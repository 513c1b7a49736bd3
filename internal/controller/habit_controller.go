package controller

import (
	"errors"
	"habit_bot_backend/internal/service"
	"habit_bot_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type HabitController struct {
	HabitService        *service.HabitService
	ConfirmationService *service.ConfirmationService
}

func NewHabitController(habitService *service.HabitService, confirmationService *service.ConfirmationService) *HabitController {
	return &HabitController{
		HabitService:        habitService,
		ConfirmationService: confirmationService,
	}
}

// parseHabitID 路径参数 :id
func parseHabitID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的习惯ID")
		return 0, false
	}
	return uint(id), true
}

// parseUserID 查询参数 user_id
func parseUserID(ctx *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(ctx.Query("user_id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的用户ID")
		return 0, false
	}
	return userID, true
}

// @Summary 创建习惯
// @Description 为用户创建习惯；同名（不区分大小写）习惯已存在时返回已有习惯，created 为 false
// @Tags 习惯
// @Accept json
// @Produce json
// @Security BotSecretAuth
// @Param request body object true "user_id、username、name"
// @Success 201 {object} util.Response
// @Router /habits [post]
func (c *HabitController) CreateHabit(ctx *gin.Context) {
	var req struct {
		UserID   uint64 `json:"user_id" binding:"required"`
		Username string `json:"username"`
		Name     string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	habit, created, err := c.HabitService.AddHabit(req.UserID, req.Username, req.Name)
	if err != nil {
		if errors.Is(err, util.ErrInvalidHabitName) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	resp := gin.H{"habit": habit, "created": created}
	if created {
		util.Created(ctx, resp)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 习惯列表
// @Tags 习惯
// @Produce json
// @Security BotSecretAuth
// @Param user_id query int true "用户ID"
// @Success 200 {object} util.Response
// @Router /habits [get]
func (c *HabitController) ListHabits(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	habits, err := c.HabitService.ListHabits(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"habits": habits})
}

// @Summary 重命名习惯
// @Tags 习惯
// @Accept json
// @Produce json
// @Security BotSecretAuth
// @Param id path int true "习惯ID"
// @Param request body object true "name"
// @Success 200 {object} util.Response
// @Router /habits/{id} [put]
func (c *HabitController) RenameHabit(ctx *gin.Context) {
	habitID, ok := parseHabitID(ctx)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.HabitService.RenameHabit(habitID, req.Name)
	switch {
	case errors.Is(err, util.ErrInvalidHabitName):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrHabitNotFound):
		util.NotFound(ctx, err.Error())
	case err != nil:
		util.LogInternalError(ctx, err)
	default:
		util.Success(ctx, gin.H{"renamed": true})
	}
}

// @Summary 今日打卡
// @Description 记录习惯今天的完成/跳过状态，同一天重复打卡覆盖之前的状态并返回 overwrote=true
// @Tags 习惯
// @Accept json
// @Produce json
// @Security BotSecretAuth
// @Param id path int true "习惯ID"
// @Param request body object true "done"
// @Success 200 {object} util.Response
// @Router /habits/{id}/logs [post]
func (c *HabitController) MarkHabit(ctx *gin.Context) {
	habitID, ok := parseHabitID(ctx)
	if !ok {
		return
	}

	var req struct {
		Done *bool `json:"done" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	overwrote, err := c.HabitService.MarkDone(habitID, *req.Done)
	if err != nil {
		if errors.Is(err, util.ErrHabitNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"done": *req.Done, "overwrote": overwrote})
}

// @Summary 当前连续打卡天数
// @Description 从今天往回数连续完成的天数，今天未打卡则为 0
// @Tags 习惯
// @Produce json
// @Security BotSecretAuth
// @Param id path int true "习惯ID"
// @Success 200 {object} util.Response
// @Router /habits/{id}/streak [get]
func (c *HabitController) GetStreak(ctx *gin.Context) {
	habitID, ok := parseHabitID(ctx)
	if !ok {
		return
	}

	streak, err := c.HabitService.ComputeStreak(habitID)
	if err != nil {
		if errors.Is(err, util.ErrHabitNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"streak": streak})
}

// @Summary 请求删除习惯
// @Description 删除是破坏性操作，这里只签发确认令牌，前端在确认回调里带回 /confirm 执行
// @Tags 习惯
// @Produce json
// @Security BotSecretAuth
// @Param id path int true "习惯ID"
// @Param user_id query int true "用户ID"
// @Success 200 {object} util.Response
// @Router /habits/{id} [delete]
func (c *HabitController) RequestDeleteHabit(ctx *gin.Context) {
	habitID, ok := parseHabitID(ctx)
	if !ok {
		return
	}
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	token, expiresAt, err := c.ConfirmationService.Issue(userID, service.ActionDeleteHabit, habitID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"confirmToken": token, "expiresAt": expiresAt})
}
