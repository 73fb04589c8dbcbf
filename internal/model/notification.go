package model

// NotificationType 通知类型
const (
	NotificationTypeOrder    = "order"
	NotificationTypeShipment = "shipment"
	NotificationTypeRefund   = "refund"
	NotificationTypeSystem   = "system"
)

// Notification 站内通知
type Notification struct {
	BaseModel
	UserID  int64  `gorm:"index;not null" json:"user_id"`
	Type    string `gorm:"size:16;index;default:system" json:"type"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Body    string `gorm:"size:1000" json:"body"`
	OrderID int64  `gorm:"index" json:"order_id"`
	IsRead  bool   `gorm:"index;default:false" json:"is_read"`
}

func (Notification) TableName() string {
	return "notifications"
}
