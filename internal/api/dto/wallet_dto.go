package dto

// AdjustWalletReq 管理端手工调账请求
type AdjustWalletReq struct {
	UserID  int64   `json:"user_id" binding:"required,min=1"`
	Type    string  `json:"type" binding:"required,oneof=credit debit"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Note    string  `json:"note" binding:"omitempty,max=255"`
	OrderID int64   `json:"order_id" binding:"omitempty,min=1"`
}

// RequestRefundReq 买家退款申请
type RequestRefundReq struct {
	OrderID int64   `json:"order_id" binding:"required,min=1"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Reason  string  `json:"reason" binding:"omitempty,max=500"`
}

// ReviewRefundReq 管理端审批退款
type ReviewRefundReq struct {
	Approve   *bool  `json:"approve" binding:"required"`
	AdminNote string `json:"admin_note" binding:"omitempty,max=500"`
}
