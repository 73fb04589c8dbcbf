package repository

import (
	"context"

	"tradeon_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== WalletRepository 钱包仓储 ====================

// WalletRepository 钱包仓储接口
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*model.Wallet, error)
	GetOrCreate(ctx context.Context, userID int64) (*model.Wallet, error)
	AddBalance(ctx context.Context, userID int64, delta float64) error
	DeductBalance(ctx context.Context, userID int64, amount float64) (bool, error)
}

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository 创建钱包仓储
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID int64) (*model.Wallet, error) {
	var wallet model.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) GetOrCreate(ctx context.Context, userID int64) (*model.Wallet, error) {
	var wallet model.Wallet
	err := r.db.WithContext(ctx).
		Where(model.Wallet{UserID: userID}).
		FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// AddBalance 原子加减余额（delta 可为负）
func (r *walletRepository) AddBalance(ctx context.Context, userID int64, delta float64) error {
	return r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", delta)).Error
}

// DeductBalance 余额够才扣，条件写在 UPDATE 里，返回是否扣成功。
// 余额判断和扣减必须是同一条语句，否则并发出账会透支。
func (r *walletRepository) DeductBalance(ctx context.Context, userID int64, amount float64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	return res.RowsAffected > 0, res.Error
}

// ==================== TransactionRepository 流水仓储 ====================

// TransactionRepository 交易流水仓储接口
type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	ListByUserID(ctx context.Context, userID int64, page, pageSize int) ([]model.Transaction, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建交易流水仓储
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) ListByUserID(ctx context.Context, userID int64, page, pageSize int) ([]model.Transaction, int64, error) {
	var txs []model.Transaction
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Transaction{}).Where("user_id = ?", userID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	err := db.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&txs).Error

	return txs, total, err
}

// ==================== RefundRepository 退款仓储 ====================

// RefundFilter 退款过滤条件
type RefundFilter struct {
	UserID   int64
	Status   string
	Page     int
	PageSize int
}

// RefundRepository 退款仓储接口
type RefundRepository interface {
	Create(ctx context.Context, refund *model.Refund) error
	GetByID(ctx context.Context, id int64) (*model.Refund, error)
	List(ctx context.Context, filter RefundFilter) ([]model.Refund, int64, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	MarkReviewed(ctx context.Context, id int64, status, adminNote string) (bool, error)
}

type refundRepository struct {
	db *gorm.DB
}

// NewRefundRepository 创建退款仓储
func NewRefundRepository(db *gorm.DB) RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) Create(ctx context.Context, refund *model.Refund) error {
	return r.db.WithContext(ctx).Create(refund).Error
}

func (r *refundRepository) GetByID(ctx context.Context, id int64) (*model.Refund, error) {
	var refund model.Refund
	if err := r.db.WithContext(ctx).First(&refund, id).Error; err != nil {
		return nil, err
	}
	return &refund, nil
}

func (r *refundRepository) List(ctx context.Context, filter RefundFilter) ([]model.Refund, int64, error) {
	var refunds []model.Refund
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Refund{})
	if filter.UserID > 0 {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	err := db.Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&refunds).Error

	return refunds, total, err
}

func (r *refundRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Refund{}).Where("id = ?", id).Updates(fields).Error
}

// MarkReviewed 只在待处理状态下落审批结果，返回是否抢到这次审批。
// 两个审批并发时 WHERE status 条件保证只有一个能改成功。
func (r *refundRepository) MarkReviewed(ctx context.Context, id int64, status, adminNote string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Refund{}).
		Where("id = ? AND status = ?", id, model.RefundStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"admin_note": adminNote,
		})
	return res.RowsAffected > 0, res.Error
}

// ==================== WalletUnitOfWork 钱包工作单元 ====================

// WalletUnitOfWork 钱包工作单元（事务）
// 退款审批要同时写退款状态、钱包余额、交易流水，三笔同事务落库
type WalletUnitOfWork struct {
	db           *gorm.DB
	Wallets      WalletRepository
	Transactions TransactionRepository
	Refunds      RefundRepository
}

// NewWalletUnitOfWork 创建工作单元
func NewWalletUnitOfWork(db *gorm.DB) *WalletUnitOfWork {
	return &WalletUnitOfWork{
		db:           db,
		Wallets:      NewWalletRepository(db),
		Transactions: NewTransactionRepository(db),
		Refunds:      NewRefundRepository(db),
	}
}

// Transaction 执行事务
func (u *WalletUnitOfWork) Transaction(ctx context.Context, fn func(uow *WalletUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &WalletUnitOfWork{
			db:           tx,
			Wallets:      NewWalletRepository(tx),
			Transactions: NewTransactionRepository(tx),
			Refunds:      NewRefundRepository(tx),
		}
		return fn(txUow)
	})
}
