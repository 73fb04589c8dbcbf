package service

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ==================== 配置 ====================

// TranslateConfig 翻译接口配置
type TranslateConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// ==================== Translator 翻译接口 ====================

// Translator 文本翻译接口，搜索服务靠它把中文标题翻成英文
type Translator interface {
	Translate(ctx context.Context, texts []string, source, target string) ([]string, error)
}

// ==================== HTTP 实现 ====================

// TranslateService LibreTranslate 风格的翻译客户端
type TranslateService struct {
	cfg    *TranslateConfig
	client *resty.Client
}

// NewTranslateService 创建翻译服务
func NewTranslateService(cfg *TranslateConfig) *TranslateService {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &TranslateService{cfg: cfg, client: client}
}

// Translate 批量翻译。约定：任何失败都返回原文 + 错误，
// 调用方可以直接把返回值当译文用（降级为不翻译）。
func (s *TranslateService) Translate(ctx context.Context, texts []string, source, target string) ([]string, error) {
	out := make([]string, len(texts))
	copy(out, texts)

	for i, text := range texts {
		if text == "" {
			continue
		}

		var result struct {
			TranslatedText string `json:"translatedText"`
		}

		resp, err := s.client.R().
			SetContext(ctx).
			SetBody(map[string]string{
				"q":       text,
				"source":  source,
				"target":  target,
				"api_key": s.cfg.APIKey,
			}).
			SetResult(&result).
			Post("/translate")
		if err != nil {
			return out, err
		}
		if resp.IsError() {
			zap.L().Warn("翻译接口返回错误", zap.Int("status", resp.StatusCode()))
			continue
		}
		if result.TranslatedText != "" {
			out[i] = result.TranslatedText
		}
	}

	return out, nil
}
