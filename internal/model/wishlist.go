package model

import "github.com/lib/pq"

// WishlistItem 收藏的 1688 商品
type WishlistItem struct {
	BaseModel
	UserID int64 `gorm:"index;not null" json:"user_id"`

	ProductName  string  `gorm:"size:500;not null" json:"product_name"`
	ProductImage string  `gorm:"size:1000" json:"product_image"`
	ProductURL   string  `gorm:"size:1000;not null" json:"product_url"`
	PriceBDT     float64 `json:"price_bdt"`

	// 商品图集（Go slice -> Postgres Array）
	Images pq.StringArray `gorm:"type:text[]" json:"images"`
}

func (WishlistItem) TableName() string {
	return "wishlist"
}
