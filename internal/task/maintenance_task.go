package task

import (
	"context"
	"time"

	"tradeon_v1_202608/internal/cache"
	"tradeon_v1_202608/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ==================== MaintenanceTask 后台维护任务 ====================

// MaintenanceTask 统一管理周期性维护工作：
// 站点配置缓存定时失效（兜底，防止外部直改数据库后缓存长期漂移）、
// 进程内缓存过期清扫。
type MaintenanceTask struct {
	settings *service.SettingsService
	memStore *cache.MemoryStore // 用 Redis 时为 nil
	cron     *cron.Cron
}

// NewMaintenanceTask 创建维护任务
func NewMaintenanceTask(settings *service.SettingsService, memStore *cache.MemoryStore) *MaintenanceTask {
	return &MaintenanceTask{
		settings: settings,
		memStore: memStore,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start 注册并启动定时任务
func (t *MaintenanceTask) Start() {
	// 每 10 分钟强制失效一次配置缓存
	t.cron.AddFunc("0 */10 * * * *", func() {
		t.settings.Invalidate()
		zap.L().Debug("配置缓存已定时失效")
	})

	// 每小时清一次进程内缓存的过期条目
	if t.memStore != nil {
		t.cron.AddFunc("0 0 * * * *", func() {
			n := t.memStore.PurgeExpired()
			if n > 0 {
				zap.L().Info("清理过期缓存", zap.Int("count", n))
			}
		})
	}

	t.cron.Start()
	zap.L().Info("后台维护任务已启动")
}

// Stop 停止定时任务，等在途任务跑完
func (t *MaintenanceTask) Stop(ctx context.Context) {
	stopCtx := t.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
	}
	zap.L().Info("后台维护任务已停止")
}
