package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/mongo"
	"CommandCenter/internal/pkg/util"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// NotificationService 后台站内通知
type NotificationService interface {
	GetNotificationList(ctx context.Context, userID string, page, pageSize int) ([]*dto.SysBoxDTO, error)
	GetUnreadCount(ctx context.Context, userID string) (*dto.SysBoxUnreadDTO, error)
	MarkRead(ctx context.Context, userID string, msgID string) error
	MarkAllRead(ctx context.Context, userID string) error
	NotifyAdmins(ctx context.Context, notifyType, targetID, content string, payload map[string]any) error
}

type sysBoxServiceImpl struct {
	sysBoxRepo mongo.SysBoxRepo
	users      UserService
	events     EventBus
}

func NewNotificationService(sysBox mongo.SysBoxRepo, users UserService, events EventBus) NotificationService {
	return &sysBoxServiceImpl{
		sysBoxRepo: sysBox,
		users:      users,
		events:     events,
	}
}

// GetNotificationList 获取通知列表
func (s *sysBoxServiceImpl) GetNotificationList(ctx context.Context, userID string, page, pageSize int) ([]*dto.SysBoxDTO, error) {
	page, pageSize = util.NormalizePage(page, pageSize, consts.DefaultPageSize, consts.MaxPageSize)
	limit := int64(pageSize)
	offset := int64((page - 1) * pageSize)

	list, err := s.sysBoxRepo.GetNotificationList(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SysBoxDTO, 0, len(list))
	for _, m := range list {
		d := &dto.SysBoxDTO{}
		_ = copier.Copy(d, m)
		d.ID = m.ID.Hex()
		d.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)
		res = append(res, d)
	}
	return res, nil
}

// GetUnreadCount 获取未读数
func (s *sysBoxServiceImpl) GetUnreadCount(ctx context.Context, userID string) (*dto.SysBoxUnreadDTO, error) {
	count, err := s.sysBoxRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SysBoxUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 标记单条已读，只能操作自己的通知
func (s *sysBoxServiceImpl) MarkRead(ctx context.Context, userID string, msgID string) error {
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return ErrParamInvalid
	}

	notice, err := s.sysBoxRepo.GetByID(ctx, objectID)
	if err != nil {
		return err
	}
	if notice == nil || notice.ReceiverID != userID {
		return ErrSysBoxNotFound
	}
	if notice.IsRead {
		return nil
	}

	if err = s.sysBoxRepo.MarkAsRead(ctx, userID, objectID); err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return ErrSysBoxNotFound
		}
		return err
	}
	return nil
}

// MarkAllRead 一键已读
func (s *sysBoxServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	return s.sysBoxRepo.MarkAllAsRead(ctx, userID)
}

// NotifyAdmins 给每个管理员写一条通知并实时推送
func (s *sysBoxServiceImpl) NotifyAdmins(ctx context.Context, notifyType, targetID, content string, payload map[string]any) error {
	adminIDs, err := s.users.ListAdminIDs(ctx)
	if err != nil {
		return errors.Wrap(err, "list admins")
	}
	if len(adminIDs) == 0 {
		log.WarnContext(ctx, "no admin to notify", "type", notifyType, "target_id", targetID)
		return nil
	}

	now := time.Now()
	msgs := make([]*mongo.SysBoxModel, 0, len(adminIDs))
	for _, id := range adminIDs {
		msgs = append(msgs, &mongo.SysBoxModel{
			ReceiverID: id,
			Type:       notifyType,
			TargetID:   targetID,
			Content:    content,
			Payload:    payload,
			CreatedAt:  now,
		})
	}
	if err = s.sysBoxRepo.CreateNotifications(ctx, msgs); err != nil {
		return errors.Wrap(err, "create notifications")
	}

	log.InfoContext(ctx, "admins notified", "type", notifyType, "target_id", targetID, "count", len(msgs))
	s.events.Publish(ctx, dto.NewEvent(dto.EventNotification, targetID, "", map[string]any{
		"type":      notifyType,
		"content":   content,
		"receivers": adminIDs,
	}))
	return nil
}
