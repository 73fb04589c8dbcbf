package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradeon_v1_202608/internal/model"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Order{}, &model.Shipment{}, &model.Profile{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func seedOrders(t *testing.T, db *gorm.DB) {
	orders := []model.Order{
		{OrderNumber: "TO-20260801-A1", UserID: 1, ProductName: "蓝牙耳机", Status: model.OrderStatusPending, Quantity: 1, TotalPrice: 700},
		{OrderNumber: "TO-20260802-B2", UserID: 1, ProductName: "充电宝", Status: model.OrderStatusProcessing, Quantity: 2, TotalPrice: 1200, TrackingNumber: "TRK-555"},
		{OrderNumber: "TO-20260803-C3", UserID: 2, ProductName: "数据线", Status: model.OrderStatusDelivered, Quantity: 5, TotalPrice: 500},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("写入测试订单失败: %v", err)
		}
	}
}

func TestOrderRepo_List_Filters(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	seedOrders(t, db)

	tests := []struct {
		name   string
		filter OrderFilter
		want   int
	}{
		{"全量", OrderFilter{}, 3},
		{"按用户", OrderFilter{UserID: 1}, 2},
		{"按状态", OrderFilter{Status: model.OrderStatusDelivered}, 1},
		{"按订单号关键词", OrderFilter{Keyword: "20260802"}, 1},
		{"按商品名关键词", OrderFilter{Keyword: "耳机"}, 1},
		{"按运单号关键词", OrderFilter{Keyword: "TRK-555"}, 1},
		{"无匹配", OrderFilter{Keyword: "不存在的词"}, 0},
		{"用户+状态组合", OrderFilter{UserID: 1, Status: model.OrderStatusPending}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, total, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if int(total) != tt.want || len(orders) != tt.want {
				t.Errorf("List() = %d 条 (total %d), want %d", len(orders), total, tt.want)
			}
		})
	}
}

func TestOrderRepo_List_Pagination(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	seedOrders(t, db)

	orders, total, err := repo.List(ctx, OrderFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 || len(orders) != 2 {
		t.Errorf("第一页 = %d 条 (total %d), want 2 (total 3)", len(orders), total)
	}

	orders, _, err = repo.List(ctx, OrderFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List() 第二页 error = %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("第二页 = %d 条, want 1", len(orders))
	}
}

func TestOrderRepo_List_DateRange(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	old := model.Order{OrderNumber: "TO-OLD", UserID: 3, ProductName: "旧订单", Status: model.OrderStatusPending}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	// 把创建时间改到一年前
	past := time.Now().AddDate(-1, 0, 0)
	db.Model(&model.Order{}).Where("id = ?", old.ID).Update("created_at", past)

	recent := model.Order{OrderNumber: "TO-NEW", UserID: 3, ProductName: "新订单", Status: model.OrderStatusPending}
	if err := db.Create(&recent).Error; err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	start := time.Now().AddDate(0, -1, 0)
	orders, _, err := repo.List(ctx, OrderFilter{StartDate: &start})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(orders) != 1 || orders[0].OrderNumber != "TO-NEW" {
		t.Errorf("近一月订单 = %d 条, want 1 条 TO-NEW", len(orders))
	}
}

func TestOrderRepo_UpdateStatus(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	seedOrders(t, db)

	order, err := repo.GetByOrderNumber(ctx, "TO-20260801-A1")
	if err != nil {
		t.Fatalf("GetByOrderNumber() error = %v", err)
	}

	if err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusShipped); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	got, _ := repo.GetByID(ctx, order.ID)
	if got.Status != model.OrderStatusShipped {
		t.Errorf("状态 = %q, want %q", got.Status, model.OrderStatusShipped)
	}
}

func TestOrderRepo_CountByStatus(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	seedOrders(t, db)

	total, err := repo.CountByStatus(ctx, "")
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if total != 3 {
		t.Errorf("全量计数 = %d, want 3", total)
	}

	pending, _ := repo.CountByStatus(ctx, model.OrderStatusPending)
	if pending != 1 {
		t.Errorf("pending 计数 = %d, want 1", pending)
	}
}

func TestOrderRepo_SoftDelete(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	seedOrders(t, db)

	order, _ := repo.GetByOrderNumber(ctx, "TO-20260803-C3")
	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.GetByID(ctx, order.ID); err == nil {
		t.Error("软删除后不应再查到")
	}

	// 软删除：行还在表里
	var count int64
	db.Unscoped().Model(&model.Order{}).Where("id = ?", order.ID).Count(&count)
	if count != 1 {
		t.Error("软删除不应物理删行")
	}
}
