package service

import (
	"context"

	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"

	"go.uber.org/zap"
)

// NotificationService 站内通知
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify 写一条通知，尽力而为：失败只记日志，绝不影响主流程
func (s *NotificationService) Notify(ctx context.Context, userID int64, typ, title, body string, orderID int64) {
	n := &model.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Body:    body,
		OrderID: orderID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		zap.L().Warn("写通知失败", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// List 通知列表
func (s *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool, page, pageSize int) ([]model.Notification, int64, error) {
	return s.repo.ListByUserID(ctx, userID, unreadOnly, page, pageSize)
}

// MarkRead 标记已读
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead 全部标记已读
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

// CountUnread 未读数
func (s *NotificationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
