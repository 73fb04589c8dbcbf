package controller

import (
	"net/http"

	"tradeon_v1_202608/internal/api/dto"
	"tradeon_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settingsService *service.SettingsService
}

func NewSettingsController(s *service.SettingsService) *SettingsController {
	return &SettingsController{settingsService: s}
}

// Get 站点配置（公开接口，走缓存）
func (ctrl *SettingsController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": ctrl.settingsService.Get(c.Request.Context())})
}

// Update 管理端修改单条配置，写库后立刻失效缓存
func (ctrl *SettingsController) Update(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key 不能为空"})
		return
	}

	var req dto.UpdateSettingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误", "detail": err.Error()})
		return
	}

	if err := ctrl.settingsService.Update(c.Request.Context(), key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}
