package controller

import (
	"net/http"
	"strconv"

	"tradeon_v1_202608/internal/api/dto"
	"tradeon_v1_202608/internal/middleware"
	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"
	"tradeon_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type WalletController struct {
	walletService *service.WalletService
}

func NewWalletController(s *service.WalletService) *WalletController {
	return &WalletController{walletService: s}
}

// ==================== 买家端 ====================

// MyWallet 自己的钱包
func (ctrl *WalletController) MyWallet(c *gin.Context) {
	wallet, err := ctrl.walletService.GetWallet(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": wallet})
}

// MyTransactions 自己的流水
func (ctrl *WalletController) MyTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	txs, total, err := ctrl.walletService.ListTransactions(c.Request.Context(), middleware.GetUserID(c), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": txs, "total": total, "page": page, "page_size": pageSize})
}

// RequestRefund 买家发起退款申请
func (ctrl *WalletController) RequestRefund(c *gin.Context) {
	var req dto.RequestRefundReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误", "detail": err.Error()})
		return
	}

	refund, err := ctrl.walletService.RequestRefund(
		c.Request.Context(), middleware.GetUserID(c), req.OrderID, req.Amount, req.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "退款申请已提交", "data": refund})
}

// MyRefunds 自己的退款申请列表
func (ctrl *WalletController) MyRefunds(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	refunds, total, err := ctrl.walletService.ListRefunds(c.Request.Context(), repository.RefundFilter{
		UserID:   middleware.GetUserID(c),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": refunds, "total": total, "page": page, "page_size": pageSize})
}

// ==================== 管理端 ====================

// Adjust 管理端手工调账
func (ctrl *WalletController) Adjust(c *gin.Context) {
	var req dto.AdjustWalletReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误", "detail": err.Error()})
		return
	}

	var err error
	if req.Type == model.TransactionTypeCredit {
		err = ctrl.walletService.Credit(c.Request.Context(), req.UserID, req.Amount, req.Note, req.OrderID)
	} else {
		err = ctrl.walletService.Debit(c.Request.Context(), req.UserID, req.Amount, req.Note, req.OrderID)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "调账成功"})
}

// ListRefunds 管理端退款列表
func (ctrl *WalletController) ListRefunds(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.RefundFilter{
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}
	if v := c.Query("user_id"); v != "" {
		filter.UserID, _ = strconv.ParseInt(v, 10, 64)
	}

	refunds, total, err := ctrl.walletService.ListRefunds(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": refunds, "total": total, "page": page, "page_size": pageSize})
}

// ReviewRefund 管理端审批退款
func (ctrl *WalletController) ReviewRefund(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewRefundReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误", "detail": err.Error()})
		return
	}

	if err := ctrl.walletService.ReviewRefund(c.Request.Context(), id, *req.Approve, req.AdminNote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "审批完成"})
}
