package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"
	"tradeon_v1_202608/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 请求构造辅助 ====================

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func setupSettingsCtl(t *testing.T) (*gin.Engine, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.AppSetting{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	svc := service.NewSettingsService(repository.NewSettingsRepository(db))
	ctl := NewSettingsController(svc)

	r := gin.New()
	r.GET("/api/settings", ctl.Get)
	r.PUT("/api/admin/settings/:key", ctl.Update)
	return r, db
}

// ==================== 测试 ====================

func TestSettingsCtl_Get_Defaults(t *testing.T) {
	r, _ := setupSettingsCtl(t)

	w := performRequest(r, http.MethodGet, "/api/settings", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// 空库也要有默认配置兜底
	assert.Equal(t, "17.5", resp.Data[model.SettingKeyCNYToBDTRate])
	assert.NotEmpty(t, resp.Data[model.SettingKeySiteName])
}

func TestSettingsCtl_Update_ThenGet(t *testing.T) {
	r, db := setupSettingsCtl(t)

	w := performRequest(r, http.MethodPut, "/api/admin/settings/cny_to_bdt_rate",
		map[string]string{"value": "18.9"})
	assert.Equal(t, http.StatusOK, w.Code)

	// 落库了
	var row model.AppSetting
	assert.NoError(t, db.Where("key = ?", model.SettingKeyCNYToBDTRate).First(&row).Error)
	assert.Equal(t, "18.9", row.Value)

	// 更新后读取应立刻是新值（缓存已失效）
	w = performRequest(r, http.MethodGet, "/api/settings", nil)
	var resp struct {
		Data map[string]string `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "18.9", resp.Data[model.SettingKeyCNYToBDTRate])
}

func TestSettingsCtl_Update_InvalidBody(t *testing.T) {
	r, _ := setupSettingsCtl(t)

	w := performRequest(r, http.MethodPut, "/api/admin/settings/site_name",
		map[string]string{"wrong_field": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
