package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ==================== 配置 ====================

// MarketplaceConfig 1688 开放接口网关配置（OneBound 聚合网关）
type MarketplaceConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string // 默认 https://api-gw.onebound.cn
	Timeout   time.Duration
}

// ==================== 数据结构 ====================

// SearchItem 搜索结果条目（价格单位为 CNY，换算塔卡在上层做）
type SearchItem struct {
	ItemID    string  `json:"item_id"`
	Title     string  `json:"title"`
	PriceCNY  float64 `json:"price_cny"`
	Image     string  `json:"image"`
	DetailURL string  `json:"detail_url"`
	Sales     int     `json:"sales"`
}

// MarketplaceItem 商品详情
type MarketplaceItem struct {
	ItemID      string          `json:"item_id"`
	Title       string          `json:"title"`
	PriceCNY    float64         `json:"price_cny"`
	Images      []string        `json:"images"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	MinOrderQty int             `json:"min_order_qty"`
	SKUs        []MarketplaceSKU `json:"skus,omitempty"`
	RawData     json.RawMessage `json:"raw_data"`
}

// MarketplaceSKU 商品变体
type MarketplaceSKU struct {
	SkuID    string  `json:"sku_id"`
	PriceCNY float64 `json:"price_cny"`
	Quantity int     `json:"quantity"`
	PropName string  `json:"prop_name"`
}

// ==================== 服务实现 ====================

// MarketplaceService 1688 商品搜索/详情客户端
type MarketplaceService struct {
	Config     *MarketplaceConfig
	HttpClient *http.Client
}

// NewMarketplaceService 创建 1688 客户端
func NewMarketplaceService(cfg *MarketplaceConfig) *MarketplaceService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-gw.onebound.cn"
	}
	if cfg.Timeout == 0 {
		// 上游偶尔很慢，固定超时兜底，应用层不做重试
		cfg.Timeout = 15 * time.Second
	}

	return &MarketplaceService{
		Config: cfg,
		HttpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ==================== 搜索 ====================

// SearchItems 关键词搜索 1688 商品
func (s *MarketplaceService) SearchItems(ctx context.Context, query string, page int) ([]SearchItem, error) {
	if page <= 0 {
		page = 1
	}

	apiURL := fmt.Sprintf("%s/1688/item_search/?key=%s&secret=%s&q=%s&page=%d&page_size=40",
		s.Config.BaseURL, s.Config.APIKey, s.Config.APISecret, url.QueryEscape(query), page)

	data, err := s.doRequest(ctx, apiURL)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Items struct {
			Item []struct {
				NumIid    json.Number `json:"num_iid"`
				Title     string      `json:"title"`
				Price     string      `json:"price"`
				PicURL    string      `json:"pic_url"`
				DetailURL string      `json:"detail_url"`
				Sales     json.Number `json:"sales"`
			} `json:"item"`
		} `json:"items"`
		Error string `json:"error"`
	}

	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("解析搜索响应失败: %v", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("API错误: %s", resp.Error)
	}

	items := make([]SearchItem, 0, len(resp.Items.Item))
	for _, it := range resp.Items.Item {
		price, _ := strconv.ParseFloat(it.Price, 64)
		sales, _ := it.Sales.Int64()
		items = append(items, SearchItem{
			ItemID:    it.NumIid.String(),
			Title:     it.Title,
			PriceCNY:  price,
			Image:     it.PicURL,
			DetailURL: it.DetailURL,
			Sales:     int(sales),
		})
	}

	return items, nil
}

// ==================== 详情 ====================

// GetItem 抓取 1688 商品详情
func (s *MarketplaceService) GetItem(ctx context.Context, itemID string) (*MarketplaceItem, error) {
	apiURL := fmt.Sprintf("%s/1688/item_get/?key=%s&secret=%s&num_iid=%s",
		s.Config.BaseURL, s.Config.APIKey, s.Config.APISecret, url.QueryEscape(itemID))

	data, err := s.doRequest(ctx, apiURL)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Item struct {
			Title    string `json:"title"`
			Price    string `json:"price"`
			Desc     string `json:"desc"`
			Location string `json:"location"`
			MinNum   int    `json:"min_num"`
			ItemImgs []struct {
				URL string `json:"url"`
			} `json:"item_imgs"`
			Skus struct {
				Sku []struct {
					Price          json.Number `json:"price"`
					Quantity       int         `json:"quantity"`
					SkuID          json.Number `json:"sku_id"`
					PropertiesName string      `json:"properties_name"`
				} `json:"sku"`
			} `json:"skus"`
		} `json:"item"`
		Error string `json:"error"`
	}

	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("解析商品响应失败: %v", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("API错误: %s", resp.Error)
	}

	images := make([]string, 0, len(resp.Item.ItemImgs))
	for _, img := range resp.Item.ItemImgs {
		if img.URL != "" {
			images = append(images, img.URL)
		}
	}

	skus := make([]MarketplaceSKU, 0, len(resp.Item.Skus.Sku))
	for _, sku := range resp.Item.Skus.Sku {
		price, _ := sku.Price.Float64()
		skus = append(skus, MarketplaceSKU{
			SkuID:    sku.SkuID.String(),
			PriceCNY: price,
			Quantity: sku.Quantity,
			PropName: sku.PropertiesName,
		})
	}

	price, _ := strconv.ParseFloat(resp.Item.Price, 64)
	return &MarketplaceItem{
		ItemID:      itemID,
		Title:       resp.Item.Title,
		PriceCNY:    price,
		Images:      images,
		Description: resp.Item.Desc,
		Location:    resp.Item.Location,
		MinOrderQty: resp.Item.MinNum,
		SKUs:        skus,
		RawData:     data,
	}, nil
}

// ==================== 内部方法 ====================

func (s *MarketplaceService) doRequest(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %v", err)
	}

	resp, err := s.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP错误 [%d]: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
