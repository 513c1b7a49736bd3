package middleware

import (
	"crypto/subtle"
	"habit_bot_backend/internal/config"
	"habit_bot_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// BotAuthMiddleware 校验对话前端携带的共享密钥。
// 后端信任机器人进程提交的 user_id，不做用户级鉴权。
func BotAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader("X-Bot-Secret")
		if secret == "" {
			secret = c.Query("secret")
		}

		expected := cfg.Bot.APISecret
		if expected == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) != 1 {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
