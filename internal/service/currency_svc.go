package service

import (
	"context"
	"strconv"

	"tradeon_v1_202608/internal/model"
)

// DefaultCNYToBDTRate 配置缺失/非法时的兜底汇率
const DefaultCNYToBDTRate = 17.5

// CurrencyService 人民币 -> 塔卡换算，本身无状态，汇率从站点配置取
type CurrencyService struct {
	settings *SettingsService
}

// NewCurrencyService 创建汇率服务
func NewCurrencyService(settings *SettingsService) *CurrencyService {
	return &CurrencyService{settings: settings}
}

// Rate 当前 CNY->BDT 汇率
func (s *CurrencyService) Rate(ctx context.Context) float64 {
	raw := s.settings.GetValue(ctx, model.SettingKeyCNYToBDTRate)
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate <= 0 {
		return DefaultCNYToBDTRate
	}
	return rate
}

// CNYToBDT 人民币金额换算成塔卡
func (s *CurrencyService) CNYToBDT(ctx context.Context, cny float64) float64 {
	return cny * s.Rate(ctx)
}
