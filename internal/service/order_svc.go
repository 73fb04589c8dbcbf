package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ==================== 下单参数 ====================

// PlaceOrderInput 买家下单参数
type PlaceOrderInput struct {
	ProductName  string
	ProductImage string
	ProductURL   string
	VariantName  string
	Quantity     int
	UnitPrice    float64
	Notes        string
	SourceData   []byte // 1688 原始数据快照，可为空
}

// OrderStats 订单状态分布统计
type OrderStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Delivered  int64 `json:"delivered"`
	Cancelled  int64 `json:"cancelled"`
}

// ==================== OrderService 订单服务 ====================

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
	notifier  *NotificationService
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, notifier *NotificationService) *OrderService {
	return &OrderService{orderRepo: orderRepo, notifier: notifier}
}

// generateOrderNumber 人类可读订单号：TO-日期-短随机段
func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("TO-%s-%s", time.Now().Format("20060102"), suffix)
}

// ==================== 下单与编辑 ====================

// PlaceOrder 买家下单。数量必须 >= 1（边界校验，不会写半截数据）。
// total_price 默认 unit_price * quantity；备注里带明细行时以明细为准的
// 合计由发票聚合器负责展示，这里不做强一致校验（刻意保留的宽松行为）。
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (*model.Order, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("至少选择 1 件商品")
	}
	if strings.TrimSpace(in.ProductName) == "" {
		return nil, fmt.Errorf("商品名称不能为空")
	}

	order := &model.Order{
		OrderNumber:  generateOrderNumber(),
		UserID:       userID,
		ProductName:  in.ProductName,
		ProductImage: in.ProductImage,
		ProductURL:   in.ProductURL,
		VariantName:  in.VariantName,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		TotalPrice:   in.UnitPrice * float64(in.Quantity),
		Notes:        in.Notes,
		Status:       model.OrderStatusPending,
	}
	if len(in.SourceData) > 0 {
		order.SourceData = datatypes.JSON(in.SourceData)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("创建订单失败: %v", err)
	}

	s.notifier.Notify(ctx, userID, model.NotificationTypeOrder,
		"Order placed", fmt.Sprintf("Order %s has been received.", order.OrderNumber), order.ID)

	return order, nil
}

// adminEditableFields 管理端可编辑的订单字段白名单
var adminEditableFields = map[string]bool{
	"unit_price":              true,
	"total_price":             true,
	"shipping_charges":        true,
	"commission":              true,
	"domestic_courier_charge": true,
	"notes":                   true,
	"tracking_number":         true,
	"variant_name":            true,
	"quantity":                true,
	"status":                  true,
}

// AdminUpdate 管理端编辑订单（价格、备注、运单号等）
func (s *OrderService) AdminUpdate(ctx context.Context, id int64, fields map[string]interface{}) error {
	for k := range fields {
		if !adminEditableFields[k] {
			return fmt.Errorf("不允许修改字段: %s", k)
		}
	}
	if len(fields) == 0 {
		return fmt.Errorf("没有可更新的字段")
	}
	return s.orderRepo.UpdateFields(ctx, id, fields)
}

// Cancel 买家取消自己的订单
func (s *OrderService) Cancel(ctx context.Context, orderID, userID int64) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("订单不存在: %v", err)
	}
	if order.UserID != userID {
		return fmt.Errorf("无权操作该订单")
	}
	if !order.CanCancel() {
		return fmt.Errorf("当前状态不允许取消")
	}
	return s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCancelled)
}

// ==================== 查询 ====================

// GetByID 订单详情（带运单和客户资料）
func (s *OrderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return s.orderRepo.GetByIDWithRelations(ctx, id)
}

// List 订单列表
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int64, error) {
	return s.orderRepo.List(ctx, filter)
}

// Delete 管理端删除订单（软删除）
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.orderRepo.Delete(ctx, id)
}

// ==================== 看板统计 ====================

// Stats 各状态订单数，五个计数查询并发执行
func (s *OrderService) Stats(ctx context.Context) (*OrderStats, error) {
	statuses := []string{
		"",
		model.OrderStatusPending,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	}

	counts := make([]int64, len(statuses))
	errs := make([]error, len(statuses))

	var wg sync.WaitGroup
	for i, status := range statuses {
		wg.Add(1)
		go func(i int, status string) {
			defer wg.Done()
			counts[i], errs[i] = s.orderRepo.CountByStatus(ctx, status)
		}(i, status)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("统计订单失败: %v", err)
		}
	}

	return &OrderStats{
		Total:      counts[0],
		Pending:    counts[1],
		Processing: counts[2],
		Shipped:    counts[3],
		Delivered:  counts[4],
		Cancelled:  counts[5],
	}, nil
}
