package controller

import (
	"net/http"

	"tradeon_v1_202608/internal/api/dto"
	"tradeon_v1_202608/internal/middleware"
	"tradeon_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlistService *service.WishlistService
}

func NewWishlistController(s *service.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: s}
}

// Add 收藏商品
func (ctrl *WishlistController) Add(c *gin.Context) {
	var req dto.WishlistAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误", "detail": err.Error()})
		return
	}

	item, err := ctrl.wishlistService.Add(c.Request.Context(), middleware.GetUserID(c), service.AddWishlistInput{
		ProductName:  req.ProductName,
		ProductImage: req.ProductImage,
		ProductURL:   req.ProductURL,
		PriceCNY:     req.PriceCNY,
		Images:       req.Images,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已收藏", "data": item})
}

// List 自己的心愿单
func (ctrl *WishlistController) List(c *gin.Context) {
	items, err := ctrl.wishlistService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// Remove 移除收藏
func (ctrl *WishlistController) Remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.wishlistService.Remove(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已移除"})
}
