package service

import (
	"context"
	"regexp"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"
)

func setupOrderSvcTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Order{}, &model.Shipment{}, &model.Notification{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		NewNotificationService(repository.NewNotificationRepository(db)),
	)
}

func TestOrderService_PlaceOrder(t *testing.T) {
	db := setupOrderSvcTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, 3, PlaceOrderInput{
		ProductName: "保温杯",
		VariantName: "500ml 白色",
		Quantity:    3,
		UnitPrice:   450,
		Notes:       "尽快发货",
	})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	if order.Status != model.OrderStatusPending {
		t.Errorf("新订单状态 = %q, want %q", order.Status, model.OrderStatusPending)
	}
	if order.TotalPrice != 1350 {
		t.Errorf("TotalPrice = %v, want 1350", order.TotalPrice)
	}

	// 订单号格式：TO-日期-8 位大写段
	pattern := regexp.MustCompile(`^TO-\d{8}-[0-9A-Z]{8}$`)
	if !pattern.MatchString(order.OrderNumber) {
		t.Errorf("订单号格式错误: %q", order.OrderNumber)
	}

	// 下单成功应写通知
	var count int64
	db.Model(&model.Notification{}).Where("user_id = ? AND type = ?", 3, model.NotificationTypeOrder).Count(&count)
	if count != 1 {
		t.Errorf("下单通知数 = %d, want 1", count)
	}
}

func TestOrderService_PlaceOrder_Validation(t *testing.T) {
	db := setupOrderSvcTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	tests := []struct {
		name string
		in   PlaceOrderInput
	}{
		{"零数量", PlaceOrderInput{ProductName: "x", Quantity: 0}},
		{"负数量", PlaceOrderInput{ProductName: "x", Quantity: -2}},
		{"空商品名", PlaceOrderInput{ProductName: "  ", Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.PlaceOrder(ctx, 1, tt.in); err == nil {
				t.Error("应该报错")
			}
		})
	}

	// 校验失败不应写任何行
	var count int64
	db.Model(&model.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("校验失败后订单数 = %d, want 0", count)
	}
}

func TestOrderService_AdminUpdate_Whitelist(t *testing.T) {
	db := setupOrderSvcTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, 4, PlaceOrderInput{ProductName: "风扇", Quantity: 1, UnitPrice: 2000})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	// 白名单内字段
	err = svc.AdminUpdate(ctx, order.ID, map[string]interface{}{
		"shipping_charges": 350.0,
		"commission":       100.0,
	})
	if err != nil {
		t.Fatalf("AdminUpdate() error = %v", err)
	}

	var got model.Order
	db.First(&got, order.ID)
	if got.ShippingCharges != 350 || got.Commission != 100 {
		t.Errorf("费用更新失败: %+v", got)
	}

	// 白名单外字段
	if err := svc.AdminUpdate(ctx, order.ID, map[string]interface{}{"user_id": 999}); err == nil {
		t.Error("白名单外字段应该报错")
	}
	if err := svc.AdminUpdate(ctx, order.ID, map[string]interface{}{}); err == nil {
		t.Error("空字段集应该报错")
	}
}

func TestOrderService_Cancel(t *testing.T) {
	db := setupOrderSvcTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	order, _ := svc.PlaceOrder(ctx, 5, PlaceOrderInput{ProductName: "插座", Quantity: 1, UnitPrice: 150})

	// 他人不能取消
	if err := svc.Cancel(ctx, order.ID, 6); err == nil {
		t.Error("他人取消应该报错")
	}

	// pending 可以取消
	if err := svc.Cancel(ctx, order.ID, 5); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	var got model.Order
	db.First(&got, order.ID)
	if got.Status != model.OrderStatusCancelled {
		t.Errorf("取消后状态 = %q", got.Status)
	}

	// 已发货不能取消
	shipped, _ := svc.PlaceOrder(ctx, 5, PlaceOrderInput{ProductName: "灯泡", Quantity: 1, UnitPrice: 80})
	db.Model(&model.Order{}).Where("id = ?", shipped.ID).Update("status", model.OrderStatusShipped)
	if err := svc.Cancel(ctx, shipped.ID, 5); err == nil {
		t.Error("已发货订单取消应该报错")
	}
}

func TestOrderService_Stats(t *testing.T) {
	db := setupOrderSvcTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	statuses := []string{
		model.OrderStatusPending, model.OrderStatusPending,
		model.OrderStatusProcessing,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	}
	for i, status := range statuses {
		order := &model.Order{
			OrderNumber: "TO-STATS-" + string(rune('A'+i)),
			UserID:      1, ProductName: "x", Quantity: 1, Status: status,
		}
		if err := db.Create(order).Error; err != nil {
			t.Fatalf("写入失败: %v", err)
		}
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 5 || stats.Pending != 2 || stats.Processing != 1 ||
		stats.Delivered != 1 || stats.Cancelled != 1 || stats.Shipped != 0 {
		t.Errorf("统计错误: %+v", stats)
	}
}
