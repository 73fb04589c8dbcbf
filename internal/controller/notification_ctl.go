package controller

import (
	"net/http"
	"strconv"

	"tradeon_v1_202608/internal/middleware"
	"tradeon_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notificationService *service.NotificationService
}

func NewNotificationController(s *service.NotificationService) *NotificationController {
	return &NotificationController{notificationService: s}
}

// List 自己的通知列表
func (ctrl *NotificationController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	unreadOnly := c.Query("unread") == "true"

	items, total, err := ctrl.notificationService.List(
		c.Request.Context(), middleware.GetUserID(c), unreadOnly, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": page, "page_size": pageSize})
}

// UnreadCount 未读数
func (ctrl *NotificationController) UnreadCount(c *gin.Context) {
	count, err := ctrl.notificationService.CountUnread(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"unread": count}})
}

// MarkRead 标记单条已读
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.notificationService.MarkRead(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "操作失败", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已读"})
}

// MarkAllRead 全部标记已读
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	if err := ctrl.notificationService.MarkAllRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "操作失败", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "全部已读"})
}
