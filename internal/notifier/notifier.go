package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"habit_bot_backend/pkg/logger"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Client 向对话前端（机器人进程）回推消息的 webhook 客户端。
// 机器人侧收到 {user_id, text} 后再投递到聊天平台。
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	secret     string
	httpClient *http.Client
	stubMode   bool
}

type notifyPayload struct {
	UserID uint64 `json:"user_id"`
	Text   string `json:"text"`
}

func New(baseURL, secret string, stubMode bool) *Client {
	return &Client{
		baseURL:    baseURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		stubMode:   stubMode,
	}
}

// UpdateTarget 配置热更新时替换回调地址与密钥。
func (c *Client) UpdateTarget(baseURL, secret string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = baseURL
	c.secret = secret
}

// Notify 尽力送达，失败由调用方决定如何处理（调度器只记日志）。
func (c *Client) Notify(ctx context.Context, userID uint64, text string) error {
	c.mu.RLock()
	baseURL, secret, stub := c.baseURL, c.secret, c.stubMode
	c.mu.RUnlock()

	if stub {
		logger.Log.Info("stub notify", zap.Uint64("user_id", userID), zap.String("text", text))
		return nil
	}

	body, err := json.Marshal(notifyPayload{UserID: userID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/notify", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Bot-Secret", secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
