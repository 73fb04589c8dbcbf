package service

import (
	"context"
	"testing"

	"tradeon_v1_202608/internal/model"
)

func newCurrencyWithRate(rate string) *CurrencyService {
	repo := &fakeSettingsRepo{rows: map[string]string{}}
	if rate != "" {
		repo.rows[model.SettingKeyCNYToBDTRate] = rate
	}
	return NewCurrencyService(NewSettingsService(repo))
}

func TestCurrencyService_Rate(t *testing.T) {
	tests := []struct {
		name string
		rate string
		want float64
	}{
		{"配置的汇率", "18.25", 18.25},
		{"未配置走默认", "", DefaultCNYToBDTRate},
		{"非数字走默认", "abc", DefaultCNYToBDTRate},
		{"零走默认", "0", DefaultCNYToBDTRate},
		{"负数走默认", "-3", DefaultCNYToBDTRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newCurrencyWithRate(tt.rate)
			if got := svc.Rate(context.Background()); got != tt.want {
				t.Errorf("Rate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCurrencyService_CNYToBDT(t *testing.T) {
	svc := newCurrencyWithRate("17.5")
	if got := svc.CNYToBDT(context.Background(), 100); got != 1750 {
		t.Errorf("CNYToBDT(100) = %v, want 1750", got)
	}
	if got := svc.CNYToBDT(context.Background(), 0); got != 0 {
		t.Errorf("CNYToBDT(0) = %v, want 0", got)
	}
}
