package service

import (
	"context"
	"fmt"

	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"
)

// ==================== WalletService 钱包服务 ====================

// WalletService 钱包 / 流水 / 退款
type WalletService struct {
	uow        *repository.WalletUnitOfWork
	walletRepo repository.WalletRepository
	txRepo     repository.TransactionRepository
	refundRepo repository.RefundRepository
	orderRepo  repository.OrderRepository
	notifier   *NotificationService
}

// NewWalletService 创建钱包服务
func NewWalletService(
	uow *repository.WalletUnitOfWork,
	walletRepo repository.WalletRepository,
	txRepo repository.TransactionRepository,
	refundRepo repository.RefundRepository,
	orderRepo repository.OrderRepository,
	notifier *NotificationService,
) *WalletService {
	return &WalletService{
		uow:        uow,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		refundRepo: refundRepo,
		orderRepo:  orderRepo,
		notifier:   notifier,
	}
}

// ==================== 余额与流水 ====================

// GetWallet 取钱包，不存在就建一个零余额的
func (s *WalletService) GetWallet(ctx context.Context, userID int64) (*model.Wallet, error) {
	return s.walletRepo.GetOrCreate(ctx, userID)
}

// ListTransactions 流水列表
func (s *WalletService) ListTransactions(ctx context.Context, userID int64, page, pageSize int) ([]model.Transaction, int64, error) {
	return s.txRepo.ListByUserID(ctx, userID, page, pageSize)
}

// Credit 入账：余额和流水同事务落库
func (s *WalletService) Credit(ctx context.Context, userID int64, amount float64, note string, orderID int64) error {
	if amount <= 0 {
		return fmt.Errorf("入账金额必须大于 0")
	}
	return s.uow.Transaction(ctx, func(uow *repository.WalletUnitOfWork) error {
		if _, err := uow.Wallets.GetOrCreate(ctx, userID); err != nil {
			return err
		}
		if err := uow.Wallets.AddBalance(ctx, userID, amount); err != nil {
			return err
		}
		return uow.Transactions.Create(ctx, &model.Transaction{
			UserID:  userID,
			OrderID: orderID,
			Type:    model.TransactionTypeCredit,
			Amount:  amount,
			Note:    note,
		})
	})
}

// Debit 出账：余额不足直接拒绝
func (s *WalletService) Debit(ctx context.Context, userID int64, amount float64, note string, orderID int64) error {
	if amount <= 0 {
		return fmt.Errorf("出账金额必须大于 0")
	}
	return s.uow.Transaction(ctx, func(uow *repository.WalletUnitOfWork) error {
		if _, err := uow.Wallets.GetOrCreate(ctx, userID); err != nil {
			return err
		}
		// 余额校验走条件扣减，并发出账也不会透支
		ok, err := uow.Wallets.DeductBalance(ctx, userID, amount)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("余额不足")
		}
		return uow.Transactions.Create(ctx, &model.Transaction{
			UserID:  userID,
			OrderID: orderID,
			Type:    model.TransactionTypeDebit,
			Amount:  amount,
			Note:    note,
		})
	})
}

// ==================== 退款 ====================

// RequestRefund 买家发起退款申请
func (s *WalletService) RequestRefund(ctx context.Context, userID, orderID int64, amount float64, reason string) (*model.Refund, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("退款金额必须大于 0")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %v", err)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("无权操作该订单")
	}

	refund := &model.Refund{
		UserID:  userID,
		OrderID: orderID,
		Amount:  amount,
		Reason:  reason,
		Status:  model.RefundStatusPending,
	}
	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, fmt.Errorf("创建退款申请失败: %v", err)
	}
	return refund, nil
}

// ListRefunds 退款列表
func (s *WalletService) ListRefunds(ctx context.Context, filter repository.RefundFilter) ([]model.Refund, int64, error) {
	return s.refundRepo.List(ctx, filter)
}

// ReviewRefund 管理端审批退款。
// 通过时退款状态、钱包余额、交易流水三笔写在同一个事务里。
func (s *WalletService) ReviewRefund(ctx context.Context, refundID int64, approve bool, adminNote string) error {
	refund, err := s.refundRepo.GetByID(ctx, refundID)
	if err != nil {
		return fmt.Errorf("退款申请不存在: %v", err)
	}

	newStatus := model.RefundStatusRejected
	if approve {
		newStatus = model.RefundStatusApproved
	}

	err = s.uow.Transaction(ctx, func(uow *repository.WalletUnitOfWork) error {
		// 状态守卫在事务里做，两个审批并发只有一个能通过，钱包只会入账一次
		ok, err := uow.Refunds.MarkReviewed(ctx, refundID, newStatus, adminNote)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("退款申请已处理")
		}
		if !approve {
			return nil
		}
		if _, err := uow.Wallets.GetOrCreate(ctx, refund.UserID); err != nil {
			return err
		}
		if err := uow.Wallets.AddBalance(ctx, refund.UserID, refund.Amount); err != nil {
			return err
		}
		return uow.Transactions.Create(ctx, &model.Transaction{
			UserID:  refund.UserID,
			OrderID: refund.OrderID,
			Type:    model.TransactionTypeCredit,
			Amount:  refund.Amount,
			Note:    "Refund approved",
		})
	})
	if err != nil {
		return err
	}

	title := "Refund rejected"
	if approve {
		title = "Refund approved"
	}
	s.notifier.Notify(ctx, refund.UserID, model.NotificationTypeRefund, title, adminNote, refund.OrderID)

	return nil
}
