package service

import (
	"context"
	"sync"

	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"

	"go.uber.org/zap"
)

// ==================== 默认配置 ====================

// defaultSettings 硬编码默认值。
// 既是初始值也是远端读取失败时的兜底，所以 Get 永远不对外报错。
var defaultSettings = map[string]string{
	model.SettingKeySiteName:     "TradeOn.global",
	model.SettingKeyCNYToBDTRate: "17.5",
	model.SettingKeySupportPhone: "+8801700000000",
	model.SettingKeySupportEmail: "support@tradeon.global",
	model.SettingKeyOfficeAddr:   "Dhaka, Bangladesh",
}

// ==================== SettingsService 站点配置缓存 ====================

// SettingsService 进程级配置缓存。
// 首次 Get 只打一次库（并发调用共享同一个 in-flight 请求），
// 之后一直用缓存，直到 Invalidate 显式失效。
type SettingsService struct {
	repo repository.SettingsRepository

	mu      sync.Mutex
	cached  map[string]string
	pending chan struct{} // 非 nil 表示有拉取在途，用来合并并发请求
}

// NewSettingsService 创建配置服务
func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get 返回完整配置表。缓存命中直接返回；未命中时保证全进程只有一次拉取，
// 其余调用方等待同一次结果。拉库失败时退回默认表，不向外传递错误。
func (s *SettingsService) Get(ctx context.Context) map[string]string {
	for {
		s.mu.Lock()
		if s.cached != nil {
			m := s.cached
			s.mu.Unlock()
			return m
		}
		if s.pending != nil {
			// 已有人在拉，等它完成后重试
			ch := s.pending
			s.mu.Unlock()
			<-ch
			continue
		}
		ch := make(chan struct{})
		s.pending = ch
		s.mu.Unlock()

		merged := make(map[string]string, len(defaultSettings))
		for k, v := range defaultSettings {
			merged[k] = v
		}

		rows, err := s.repo.GetAll(ctx)
		if err != nil {
			zap.L().Warn("读取 app_settings 失败，使用默认配置", zap.Error(err))
		} else {
			// 远端值覆盖默认值
			for k, v := range rows {
				merged[k] = v
			}
		}

		s.mu.Lock()
		// Invalidate 可能在拉取期间把 pending 清掉了，那这次结果不进缓存
		if s.pending == ch {
			s.cached = merged
			s.pending = nil
		}
		s.mu.Unlock()
		close(ch)

		return merged
	}
}

// GetValue 取单个配置项，key 不存在返回空串
func (s *SettingsService) GetValue(ctx context.Context, key string) string {
	return s.Get(ctx)[key]
}

// Invalidate 清空缓存和 in-flight 标记，下一次 Get 必定重新拉库
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.pending = nil
	s.mu.Unlock()
}

// Update 写入配置并立刻失效缓存
func (s *SettingsService) Update(ctx context.Context, key, value string) error {
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}
