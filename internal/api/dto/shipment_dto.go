package dto

import "time"

// SetStageReq 设置运单阶段请求
type SetStageReq struct {
	StageIndex *int `json:"stage_index" binding:"required,min=0,max=7"`
}

// UpdateShipmentReq 编辑运单信息请求
type UpdateShipmentReq struct {
	TrackingNumber    *string    `json:"tracking_number" binding:"omitempty,max=100"`
	Carrier           *string    `json:"carrier" binding:"omitempty,max=100"`
	Notes             *string    `json:"notes"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

// Fields 转成按列更新的 map
func (r *UpdateShipmentReq) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.TrackingNumber != nil {
		fields["tracking_number"] = *r.TrackingNumber
	}
	if r.Carrier != nil {
		fields["carrier"] = *r.Carrier
	}
	if r.Notes != nil {
		fields["notes"] = *r.Notes
	}
	if r.EstimatedDelivery != nil {
		fields["estimated_delivery"] = *r.EstimatedDelivery
	}
	return fields
}

// ShipmentProgressResp 运单进度响应
type ShipmentProgressResp struct {
	OrderID           int64      `json:"order_id"`
	Stage             string     `json:"stage"`
	StageIndex        int        `json:"stage_index"`
	ProgressPercent   float64    `json:"progress_percent"`
	Stages            []string   `json:"stages"`
	TrackingNumber    string     `json:"tracking_number,omitempty"`
	Carrier           string     `json:"carrier,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}
