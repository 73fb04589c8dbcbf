package controller

import (
	"net/http"
	"strconv"

	"tradeon_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	searchService *service.SearchService
	marketplace   *service.MarketplaceService
	currency      *service.CurrencyService
}

func NewSearchController(
	searchService *service.SearchService,
	marketplace *service.MarketplaceService,
	currency *service.CurrencyService,
) *SearchController {
	return &SearchController{
		searchService: searchService,
		marketplace:   marketplace,
		currency:      currency,
	}
}

// searchItemResp 搜索条目 + 换算塔卡价
type searchItemResp struct {
	service.SearchItem
	PriceBDT float64 `json:"price_bdt"`
}

// Search 关键词搜索 1688 商品。
// translated 为 false 时前端先展示原文，翻译在后台补。
func (ctrl *SearchController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q 不能为空"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	items, translated, err := ctrl.searchService.Search(c.Request.Context(), query, page)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "搜索失败", "detail": err.Error()})
		return
	}

	rate := ctrl.currency.Rate(c.Request.Context())
	resp := make([]searchItemResp, 0, len(items))
	for _, it := range items {
		resp = append(resp, searchItemResp{
			SearchItem: it,
			PriceBDT:   it.PriceCNY * rate,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       resp,
		"translated": translated,
		"rate":       rate,
		"page":       page,
	})
}

// ItemDetail 1688 商品详情
func (ctrl *SearchController) ItemDetail(c *gin.Context) {
	itemID := c.Param("item_id")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id 不能为空"})
		return
	}

	item, err := ctrl.marketplace.GetItem(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "获取商品失败", "detail": err.Error()})
		return
	}

	rate := ctrl.currency.Rate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"data":      item,
		"price_bdt": item.PriceCNY * rate,
		"rate":      rate,
	})
}
