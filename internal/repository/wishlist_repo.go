package repository

import (
	"context"

	"tradeon_v1_202608/internal/model"

	"gorm.io/gorm"
)

// WishlistRepository 收藏仓储接口
type WishlistRepository interface {
	Create(ctx context.Context, item *model.WishlistItem) error
	GetByID(ctx context.Context, id int64) (*model.WishlistItem, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	Delete(ctx context.Context, id int64, userID int64) error
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏仓储
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, item *model.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *wishlistRepository) GetByID(ctx context.Context, id int64) (*model.WishlistItem, error) {
	var item model.WishlistItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *wishlistRepository) Delete(ctx context.Context, id int64, userID int64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.WishlistItem{}).Error
}
