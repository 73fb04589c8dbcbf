package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"tradeon_v1_202608/internal/cache"

	"go.uber.org/zap"
)

// searchCacheTTL 搜索结果缓存时长
const searchCacheTTL = 12 * time.Hour

// ItemSearcher 上游搜索接口（便于测试替换）
type ItemSearcher interface {
	SearchItems(ctx context.Context, query string, page int) ([]SearchItem, error)
}

// ==================== 缓存载荷 ====================

// searchCacheEntry 缓存里的一页搜索结果
type searchCacheEntry struct {
	Items      []SearchItem `json:"items"`
	Translated bool         `json:"translated"`
	CachedAt   time.Time    `json:"cached_at"`
}

// ==================== SearchService 搜索服务 ====================

// SearchService 1688 搜索 + 结果缓存 + 后台翻译。
// 读穿透缓存：命中直接回，未翻译的命中先回原文、后台补翻译（最终一致）；
// 未命中打上游，先存原文返回，再后台翻译改写缓存。
type SearchService struct {
	upstream   ItemSearcher
	translator Translator
	store      cache.Store

	// 每个 key 同时最多一个在途翻译
	inflight sync.Map
}

// NewSearchService 创建搜索服务
func NewSearchService(upstream ItemSearcher, translator Translator, store cache.Store) *SearchService {
	return &SearchService{
		upstream:   upstream,
		translator: translator,
		store:      store,
	}
}

// cacheKey 规范化后的查询词 + 页码
func cacheKey(query string, page int) string {
	return fmt.Sprintf("search:%s:%d", strings.ToLower(strings.TrimSpace(query)), page)
}

// Search 搜索 1688 商品。返回值第二项表示结果是否已翻译。
func (s *SearchService) Search(ctx context.Context, query string, page int) ([]SearchItem, bool, error) {
	if page <= 0 {
		page = 1
	}
	key := cacheKey(query, page)

	// 缓存命中
	if raw, ok := s.store.Get(ctx, key); ok {
		var entry searchCacheEntry
		if err := json.Unmarshal(raw, &entry); err == nil {
			if !entry.Translated {
				// 先回原文，后台补翻译
				go s.translateEntry(key, entry)
			}
			return entry.Items, entry.Translated, nil
		}
		// 载荷损坏按未命中处理
		s.store.Delete(ctx, key)
	}

	// 未命中，打上游
	items, err := s.upstream.SearchItems(ctx, query, page)
	if err != nil {
		return nil, false, err
	}

	entry := searchCacheEntry{
		Items:    items,
		CachedAt: time.Now(),
	}
	s.writeEntry(context.WithoutCancel(ctx), key, entry)

	// 后台翻译，失败就让原文一直留着（没有重试调度）
	go s.translateEntry(key, entry)

	return items, false, nil
}

// Invalidate 手动清掉某一页缓存
func (s *SearchService) Invalidate(ctx context.Context, query string, page int) {
	s.store.Delete(ctx, cacheKey(query, page))
}

// ==================== 后台翻译 ====================

// translateEntry 把缓存条目的标题翻成英文后原地改写。
// 同一个 key 只允许一个在途翻译，其余直接放弃。
func (s *SearchService) translateEntry(key string, entry searchCacheEntry) {
	if s.translator == nil {
		return
	}
	if _, loaded := s.inflight.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	defer s.inflight.Delete(key)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	titles := make([]string, len(entry.Items))
	for i, it := range entry.Items {
		titles[i] = it.Title
	}

	translated, err := s.translator.Translate(ctx, titles, "zh", "en")
	if err != nil {
		zap.L().Warn("后台翻译失败，保留原文", zap.String("key", key), zap.Error(err))
		return
	}

	// 调用方还拿着 entry.Items 的底层数组，改写前必须拷贝
	items := make([]SearchItem, len(entry.Items))
	copy(items, entry.Items)
	for i := range items {
		items[i].Title = translated[i]
	}
	entry.Items = items
	entry.Translated = true
	s.writeEntry(ctx, key, entry)
}

// writeEntry 写缓存，TTL 按首次缓存时间折算剩余时长
func (s *SearchService) writeEntry(ctx context.Context, key string, entry searchCacheEntry) {
	ttl := searchCacheTTL - time.Since(entry.CachedAt)
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	s.store.Set(ctx, key, raw, ttl)
}
