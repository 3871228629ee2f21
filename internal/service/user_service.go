package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/pkg/security"
	"CommandCenter/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// userSyncInterval 同一用户两次同步的最短间隔
const userSyncInterval = 10 * time.Minute

type UserService interface {
	Touch(ctx context.Context, actor dto.Actor)
	ListAdminIDs(ctx context.Context) ([]string, error)
	Logout(ctx context.Context, token string) error
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

// Touch 将身份提供方的用户同步到本地，按间隔节流
func (s *userServiceImpl) Touch(ctx context.Context, actor dto.Actor) {
	if actor.UserID == "" {
		return
	}
	ok, err := redis.SetNX(ctx, consts.UserSeenKey+actor.UserID, actor.Role, userSyncInterval)
	if err != nil {
		log.WarnContext(ctx, "user sync throttle failed", "user_id", actor.UserID, "err", err)
	} else if !ok {
		return
	}

	user := &model.User{
		ID:    actor.UserID,
		Email: actor.Email,
		Role:  actor.Role,
	}
	if err = s.userRepo.UpsertUser(ctx, user); err != nil {
		log.ErrorContext(ctx, "upsert user failed", "user_id", actor.UserID, "err", err)
		_ = redis.DeleteKey(ctx, consts.UserSeenKey+actor.UserID)
	}
}

// ListAdminIDs 所有管理员ID
func (s *userServiceImpl) ListAdminIDs(ctx context.Context) ([]string, error) {
	users, err := s.userRepo.ListUsersByRole(ctx, consts.RoleAdmin)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

// Logout 吊销 token，记录保留到 token 自然过期
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return ErrUnauthorized
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrUnauthorized
	}
	if err = redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, claims.Subject, security.RemainingTTL(claims)); err != nil {
		return err
	}
	log.InfoContext(ctx, "token revoked", "user_id", claims.Subject)
	return nil
}
