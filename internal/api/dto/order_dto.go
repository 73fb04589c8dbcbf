package dto

import "encoding/json"

// PlaceOrderReq 买家下单请求
type PlaceOrderReq struct {
	ProductName  string          `json:"product_name" binding:"required,max=500"`
	ProductImage string          `json:"product_image" binding:"omitempty,max=1000"`
	ProductURL   string          `json:"product_url" binding:"omitempty,max=1000"`
	VariantName  string          `json:"variant_name" binding:"omitempty,max=255"`
	Quantity     int             `json:"quantity" binding:"required,min=1"`
	UnitPrice    float64         `json:"unit_price" binding:"omitempty,min=0"`
	Notes        string          `json:"notes"`
	SourceData   json.RawMessage `json:"source_data"` // 1688 原始数据快照
}

// AdminUpdateOrderReq 管理端编辑订单请求
type AdminUpdateOrderReq struct {
	UnitPrice             *float64 `json:"unit_price" binding:"omitempty,min=0"`
	TotalPrice            *float64 `json:"total_price" binding:"omitempty,min=0"`
	ShippingCharges       *float64 `json:"shipping_charges" binding:"omitempty,min=0"`
	Commission            *float64 `json:"commission" binding:"omitempty,min=0"`
	DomesticCourierCharge *float64 `json:"domestic_courier_charge" binding:"omitempty,min=0"`
	Quantity              *int     `json:"quantity" binding:"omitempty,min=1"`
	VariantName           *string  `json:"variant_name" binding:"omitempty,max=255"`
	Notes                 *string  `json:"notes"`
	TrackingNumber        *string  `json:"tracking_number" binding:"omitempty,max=100"`
	Status                *string  `json:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
}

// Fields 转成按列更新的 map
func (r *AdminUpdateOrderReq) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.UnitPrice != nil {
		fields["unit_price"] = *r.UnitPrice
	}
	if r.TotalPrice != nil {
		fields["total_price"] = *r.TotalPrice
	}
	if r.ShippingCharges != nil {
		fields["shipping_charges"] = *r.ShippingCharges
	}
	if r.Commission != nil {
		fields["commission"] = *r.Commission
	}
	if r.DomesticCourierCharge != nil {
		fields["domestic_courier_charge"] = *r.DomesticCourierCharge
	}
	if r.Quantity != nil {
		fields["quantity"] = *r.Quantity
	}
	if r.VariantName != nil {
		fields["variant_name"] = *r.VariantName
	}
	if r.Notes != nil {
		fields["notes"] = *r.Notes
	}
	if r.TrackingNumber != nil {
		fields["tracking_number"] = *r.TrackingNumber
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	return fields
}

// InvoiceReq 开票请求，支持多订单合并
type InvoiceReq struct {
	OrderIDs []int64 `json:"order_ids" binding:"required,min=1,dive,min=1"`
}
