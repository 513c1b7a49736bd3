package service

import (
	"context"
	"habit_bot_backend/internal/util"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ConfirmationAction 需要二次确认的破坏性操作
type ConfirmationAction string

const (
	ActionDeleteHabit ConfirmationAction = "delete_habit"
	ActionResetAll    ConfirmationAction = "reset_all"
	ActionResetStats  ConfirmationAction = "reset_stats"
)

type confirmationClaims struct {
	UserID  uint64             `json:"user_id"`
	Action  ConfirmationAction `json:"action"`
	HabitID uint               `json:"habit_id,omitempty"`
	jwt.RegisteredClaims
}

// ConfirmResult 确认执行后的结果
type ConfirmResult struct {
	Action   ConfirmationAction `json:"action"`
	Affected bool               `json:"affected"`
}

// ConfirmationService 破坏性操作的确认令牌。
// 令牌自带用户/习惯标识与过期时间，前端在确认回调里原样带回；
// 消费时烧掉一次性键，令牌不可重放。取代旧版常驻内存、永不过期的待确认集合。
type ConfirmationService struct {
	Habits *HabitService
	Store  OnceStore
	Secret string
	TTL    time.Duration

	nowFunc func() time.Time
}

func NewConfirmationService(habits *HabitService, store OnceStore, secret string, ttl time.Duration) *ConfirmationService {
	return &ConfirmationService{
		Habits:  habits,
		Store:   store,
		Secret:  secret,
		TTL:     ttl,
		nowFunc: time.Now,
	}
}

// Issue 签发确认令牌。
func (s *ConfirmationService) Issue(userID uint64, action ConfirmationAction, habitID uint) (string, time.Time, error) {
	now := s.nowFunc()
	expiresAt := now.Add(s.TTL)

	claims := &confirmationClaims{
		UserID:  userID,
		Action:  action,
		HabitID: habitID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Confirm 校验并执行令牌中的操作。过期、伪造返回 ErrInvalidConfirmation，
// 重放返回 ErrConfirmationUsed。
func (s *ConfirmationService) Confirm(ctx context.Context, tokenString string) (*ConfirmResult, error) {
	token, err := jwt.ParseWithClaims(tokenString, &confirmationClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, util.ErrInvalidConfirmation
	}

	claims, ok := token.Claims.(*confirmationClaims)
	if !ok || claims.ID == "" {
		return nil, util.ErrInvalidConfirmation
	}

	fresh, err := s.Store.Once(ctx, "confirm:used:"+claims.ID, s.TTL)
	if err != nil {
		return nil, err
	}
	if !fresh {
		return nil, util.ErrConfirmationUsed
	}

	result := &ConfirmResult{Action: claims.Action}
	switch claims.Action {
	case ActionDeleteHabit:
		result.Affected, err = s.Habits.DeleteHabit(claims.HabitID, claims.UserID)
	case ActionResetAll:
		result.Affected, err = s.Habits.ResetAll(claims.UserID)
	case ActionResetStats:
		result.Affected, err = s.Habits.ResetStatsOnly(claims.UserID)
	default:
		return nil, util.ErrInvalidConfirmation
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
