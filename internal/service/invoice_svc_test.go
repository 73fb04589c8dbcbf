package service

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"
)

func setupInvoiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Order{}, &model.Profile{}, &model.AppSetting{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newInvoiceService(db *gorm.DB) *InvoiceService {
	settings := NewSettingsService(repository.NewSettingsRepository(db))
	return NewInvoiceService(repository.NewOrderRepository(db), settings)
}

// ==================== 备注明细行解析 ====================

func TestInvoiceService_ParseOrderLines_Itemized(t *testing.T) {
	svc := newInvoiceService(setupInvoiceTestDB(t))

	order := &model.Order{
		ProductName: "打包单",
		Quantity:    1,
		UnitPrice:   0,
		TotalPrice:  9999, // 明细模式下不参与行计算
		Notes: strings.Join([]string{
			"USB 数据线: 10 pcs × ৳120",
			"手机壳: 5 pcs × ৳1,250.50",
			"这行不是明细格式",
			"",
			"蓝牙耳机: 2 pcs × ৳ 3,000",
		}, "\n"),
	}

	lines := svc.ParseOrderLines(order)
	if len(lines) != 3 {
		t.Fatalf("明细行数 = %d, want 3", len(lines))
	}

	if lines[0].Name != "USB 数据线" || lines[0].Qty != 10 || lines[0].UnitPrice != 120 || lines[0].Total != 1200 {
		t.Errorf("第一行解析错误: %+v", lines[0])
	}
	if lines[1].UnitPrice != 1250.50 || lines[1].Total != 5*1250.50 {
		t.Errorf("千分位价格解析错误: %+v", lines[1])
	}
	if lines[2].Name != "蓝牙耳机" || lines[2].Total != 6000 {
		t.Errorf("货币符号后带空格的行解析错误: %+v", lines[2])
	}
}

func TestInvoiceService_ParseOrderLines_Fallback(t *testing.T) {
	svc := newInvoiceService(setupInvoiceTestDB(t))

	tests := []struct {
		name  string
		order model.Order
		want  string
	}{
		{
			name: "备注为空",
			order: model.Order{
				ProductName: "毛绒玩具", Quantity: 3, UnitPrice: 200, TotalPrice: 600,
			},
			want: "毛绒玩具",
		},
		{
			name: "备注全是非法行",
			order: model.Order{
				ProductName: "毛绒玩具", VariantName: "粉色 30cm",
				Quantity: 3, UnitPrice: 200, TotalPrice: 600,
				Notes: "客户要求加急\n周五前发货",
			},
			want: "毛绒玩具 (粉色 30cm)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := svc.ParseOrderLines(&tt.order)
			if len(lines) != 1 {
				t.Fatalf("兜底应只有一行, got %d", len(lines))
			}
			if lines[0].Name != tt.want {
				t.Errorf("兜底行名称 = %q, want %q", lines[0].Name, tt.want)
			}
			if lines[0].Qty != 3 || lines[0].UnitPrice != 200 || lines[0].Total != 600 {
				t.Errorf("兜底行取值错误: %+v", lines[0])
			}
		})
	}
}

// ==================== 合计 ====================

func TestInvoiceService_CalcTotals(t *testing.T) {
	svc := newInvoiceService(setupInvoiceTestDB(t))

	orders := []model.Order{
		{TotalPrice: 1000, DomesticCourierCharge: 50, ShippingCharges: 300, Commission: 100},
		{TotalPrice: 2000, DomesticCourierCharge: 0, ShippingCharges: 500, Commission: 200},
	}

	totals := svc.CalcTotals(orders)
	if totals.ProductTotal != 3000 {
		t.Errorf("ProductTotal = %v, want 3000", totals.ProductTotal)
	}
	if totals.DomesticTotal != 50 || totals.ShippingTotal != 800 || totals.CommissionTotal != 300 {
		t.Errorf("分项合计错误: %+v", totals)
	}
	if totals.GrandTotal != 4150 {
		t.Errorf("GrandTotal = %v, want 4150", totals.GrandTotal)
	}
}

// ==================== BuildInvoice ====================

func TestInvoiceService_BuildInvoice(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc := newInvoiceService(db)
	ctx := context.Background()

	profile := &model.Profile{
		FullName: "Rahim Uddin", Email: "rahim@example.com",
		Phone: "+8801711111111", Address: "House 12, Road 5", City: "Dhaka",
		IsActive: true,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("写入客户资料失败: %v", err)
	}

	o1 := &model.Order{
		OrderNumber: "TO-20260810-AAAA", UserID: profile.ID,
		ProductName: "充电宝", Quantity: 1, UnitPrice: 1500, TotalPrice: 1500,
		ShippingCharges: 200, Commission: 75,
	}
	o2 := &model.Order{
		OrderNumber: "TO-20260810-BBBB", UserID: profile.ID,
		ProductName: "数据线", Quantity: 4, UnitPrice: 100, TotalPrice: 400,
		DomesticCourierCharge: 60,
	}
	if err := db.Create(o1).Error; err != nil {
		t.Fatalf("写入订单失败: %v", err)
	}
	if err := db.Create(o2).Error; err != nil {
		t.Fatalf("写入订单失败: %v", err)
	}

	// 单订单：发票号即订单号
	inv, err := svc.BuildInvoice(ctx, []int64{o1.ID})
	if err != nil {
		t.Fatalf("BuildInvoice() error = %v", err)
	}
	if inv.IsCombined {
		t.Error("单订单不应标记为合并发票")
	}
	if inv.InvoiceNo != o1.OrderNumber {
		t.Errorf("发票号 = %q, want %q", inv.InvoiceNo, o1.OrderNumber)
	}
	if inv.BillTo.Name != "Rahim Uddin" {
		t.Errorf("抬头 = %q, want %q", inv.BillTo.Name, "Rahim Uddin")
	}
	if inv.Company.Name == "" {
		t.Error("开票方名称应有默认值兜底")
	}

	// 多订单：合并发票，INV- 前缀，合计跨订单累加
	inv, err = svc.BuildInvoice(ctx, []int64{o1.ID, o2.ID})
	if err != nil {
		t.Fatalf("BuildInvoice() 合并 error = %v", err)
	}
	if !inv.IsCombined {
		t.Error("多订单应标记为合并发票")
	}
	if !strings.HasPrefix(inv.InvoiceNo, "INV-") {
		t.Errorf("合并发票号 = %q, 应以 INV- 开头", inv.InvoiceNo)
	}
	if len(inv.Lines) != 2 {
		t.Errorf("明细行数 = %d, want 2", len(inv.Lines))
	}
	if inv.Totals.GrandTotal != 1500+400+200+75+60 {
		t.Errorf("GrandTotal = %v, want %v", inv.Totals.GrandTotal, 1500+400+200+75+60)
	}

	// 空列表
	if _, err := svc.BuildInvoice(ctx, nil); err == nil {
		t.Error("空订单列表应该报错")
	}
	// 全部不存在
	if _, err := svc.BuildInvoice(ctx, []int64{98765}); err == nil {
		t.Error("订单不存在应该报错")
	}
}

func TestInvoiceService_BuildInvoiceForUser_Ownership(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc := newInvoiceService(db)
	ctx := context.Background()

	order := &model.Order{
		OrderNumber: "TO-20260811-CCCC", UserID: 77,
		ProductName: "台灯", Quantity: 1, UnitPrice: 900, TotalPrice: 900,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("写入订单失败: %v", err)
	}

	if _, err := svc.BuildInvoiceForUser(ctx, []int64{order.ID}, 77); err != nil {
		t.Errorf("本人开票不应报错: %v", err)
	}
	if _, err := svc.BuildInvoiceForUser(ctx, []int64{order.ID}, 88); err == nil {
		t.Error("他人订单开票应该报错")
	}
}
