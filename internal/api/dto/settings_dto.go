package dto

// UpdateSettingReq 更新单条站点配置
type UpdateSettingReq struct {
	Value string `json:"value" binding:"required"`
}

// WishlistAddReq 加入心愿单请求
type WishlistAddReq struct {
	ProductName  string   `json:"product_name" binding:"required,max=500"`
	ProductImage string   `json:"product_image" binding:"omitempty,max=1000"`
	ProductURL   string   `json:"product_url" binding:"required,max=1000"`
	PriceCNY     float64  `json:"price_cny" binding:"omitempty,min=0"`
	Images       []string `json:"images" binding:"omitempty,max=10"`
}
