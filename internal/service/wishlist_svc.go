package service

import (
	"context"
	"fmt"
	"strings"

	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"

	"github.com/lib/pq"
)

// ==================== WishlistService 心愿单服务 ====================

// AddWishlistInput 收藏参数，价格传人民币，入库前换算成塔卡
type AddWishlistInput struct {
	ProductName  string
	ProductImage string
	ProductURL   string
	PriceCNY     float64
	Images       []string
}

// WishlistService 心愿单
type WishlistService struct {
	repo     repository.WishlistRepository
	currency *CurrencyService
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(repo repository.WishlistRepository, currency *CurrencyService) *WishlistService {
	return &WishlistService{repo: repo, currency: currency}
}

// Add 收藏一个 1688 商品。塔卡价按收藏时的汇率定格，之后汇率变动不回填。
func (s *WishlistService) Add(ctx context.Context, userID int64, in AddWishlistInput) (*model.WishlistItem, error) {
	if strings.TrimSpace(in.ProductName) == "" {
		return nil, fmt.Errorf("商品名称不能为空")
	}
	if strings.TrimSpace(in.ProductURL) == "" {
		return nil, fmt.Errorf("商品链接不能为空")
	}

	item := &model.WishlistItem{
		UserID:       userID,
		ProductName:  in.ProductName,
		ProductImage: in.ProductImage,
		ProductURL:   in.ProductURL,
		PriceBDT:     s.currency.CNYToBDT(ctx, in.PriceCNY),
		Images:       pq.StringArray(in.Images),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("收藏失败: %v", err)
	}
	return item, nil
}

// List 用户心愿单
func (s *WishlistService) List(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Remove 移除心愿单条目，只能删自己的
func (s *WishlistService) Remove(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}
