package model

// ==================== 交易常量 ====================

// TransactionType 钱包交易类型
const (
	TransactionTypeCredit = "credit" // 入账（充值 / 退款）
	TransactionTypeDebit  = "debit"  // 出账（下单扣款）
)

// RefundStatus 退款状态
const (
	RefundStatusPending  = "pending"
	RefundStatusApproved = "approved"
	RefundStatusRejected = "rejected"
)

// ==================== Wallet 钱包 ====================

// Wallet 用户钱包（BDT 余额）
type Wallet struct {
	BaseModel
	UserID  int64   `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance float64 `gorm:"default:0" json:"balance"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// ==================== Transaction 交易流水 ====================

// Transaction 钱包交易流水（只追加，不修改）
type Transaction struct {
	BaseModel
	UserID  int64   `gorm:"index;not null" json:"user_id"`
	OrderID int64   `gorm:"index" json:"order_id"`
	Type    string  `gorm:"size:16;not null" json:"type"`
	Amount  float64 `gorm:"not null" json:"amount"`
	Note    string  `gorm:"size:255" json:"note"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// ==================== Refund 退款申请 ====================

// Refund 退款申请
type Refund struct {
	BaseModel
	UserID  int64   `gorm:"index;not null" json:"user_id"`
	OrderID int64   `gorm:"index;not null" json:"order_id"`
	Amount  float64 `gorm:"not null" json:"amount"`
	Reason  string  `gorm:"size:500" json:"reason"`
	Status  string  `gorm:"size:16;index;default:pending" json:"status"`

	// 管理端处理备注
	AdminNote string `gorm:"size:500" json:"admin_note"`
}

func (Refund) TableName() string {
	return "refunds"
}
