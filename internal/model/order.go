package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单粗粒度状态（legacy 五态）
const (
	OrderStatusPending    = "pending"    // 待处理
	OrderStatusProcessing = "processing" // 处理中
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已签收
	OrderStatusCancelled  = "cancelled"  // 已取消
)

// ==================== 运单阶段常量 ====================

// ShipmentStages 固定的 8 个物流阶段，顺序即进度（按索引定位，不存数字字段）。
// 这组字符串是对外契约，其他系统对接时必须逐字匹配。
var ShipmentStages = []string{
	"Ordered",
	"Purchased from 1688",
	"Shipped to Warehouse",
	"Arrived at Warehouse",
	"Shipped to Bangladesh",
	"In Customs",
	"Out for Delivery",
	"Delivered",
}

// 常用阶段名
const (
	StageOrdered   = "Ordered"
	StageDelivered = "Delivered"
)

// ==================== Order 订单主表 ====================

// Order 订单（一行即一个采购条目）
type Order struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string `gorm:"size:64;uniqueIndex;not null" json:"order_number"`
	UserID      int64  `gorm:"index;not null" json:"user_id"`

	// 商品信息（来自 1688 商品页）
	ProductName  string `gorm:"size:500;not null" json:"product_name"`
	ProductImage string `gorm:"size:1000" json:"product_image"`
	ProductURL   string `gorm:"size:1000" json:"product_url"`
	VariantName  string `gorm:"size:255" json:"variant_name"`

	// 数量与金额（BDT）
	Quantity              int     `gorm:"not null;default:1" json:"quantity"`
	UnitPrice             float64 `json:"unit_price"`
	TotalPrice            float64 `json:"total_price"`
	ShippingCharges       float64 `json:"shipping_charges"`
	Commission            float64 `json:"commission"`
	DomesticCourierCharge float64 `json:"domestic_courier_charge"`

	// 备注：每行一条 "<name>: <qty> pcs × ৳<price>" 的明细文本
	Notes string `gorm:"type:text" json:"notes"`

	// 下单时抓取的 1688 原始数据快照（PostgreSQL JSONB）
	SourceData datatypes.JSON `gorm:"type:jsonb" json:"-"`

	// 状态
	Status string `gorm:"size:32;index;default:pending" json:"status"`

	// 运单号（管理端可直接编辑）
	TrackingNumber string `gorm:"size:64" json:"tracking_number"`

	// 审计字段
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 关联
	Shipment *Shipment `gorm:"foreignKey:OrderID" json:"shipment,omitempty"`
	Profile  *Profile  `gorm:"foreignKey:UserID;references:ID" json:"profile,omitempty"`
}

func (*Order) TableName() string {
	return "orders"
}

// HasItemizedNotes 备注里是否可能带明细行
func (o *Order) HasItemizedNotes() bool {
	return o.Notes != ""
}

// CanCancel 检查是否可以取消
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

// ==================== Shipment 运单 ====================

// Shipment 运单（与订单 0..1 对应，管理端首次设置阶段时才创建）
type Shipment struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"uniqueIndex;not null" json:"order_id"`
	UserID  int64 `gorm:"index;not null" json:"user_id"`

	// 状态必须是 ShipmentStages 里的某个字符串
	Status string `gorm:"size:64;index;default:Ordered" json:"status"`

	// 物流信息
	TrackingNumber string `gorm:"size:64;index" json:"tracking_number"`
	Carrier        string `gorm:"size:64" json:"carrier"`
	Notes          string `gorm:"type:text" json:"notes"`

	// 预计送达
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`

	// 审计字段
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Shipment) TableName() string {
	return "shipments"
}
