package controller

import (
	"net/http"

	"tradeon_v1_202608/internal/api/dto"
	"tradeon_v1_202608/internal/middleware"
	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	invoiceService *service.InvoiceService
}

func NewInvoiceController(s *service.InvoiceService) *InvoiceController {
	return &InvoiceController{invoiceService: s}
}

// Build 生成发票视图（支持多订单合并）。
// 买家只能给自己的订单开票，管理员不受限。
func (ctrl *InvoiceController) Build(c *gin.Context) {
	var req dto.InvoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误", "detail": err.Error()})
		return
	}

	var inv *service.Invoice
	var err error
	if middleware.GetRole(c) == model.RoleAdmin {
		inv, err = ctrl.invoiceService.BuildInvoice(c.Request.Context(), req.OrderIDs)
	} else {
		inv, err = ctrl.invoiceService.BuildInvoiceForUser(c.Request.Context(), req.OrderIDs, middleware.GetUserID(c))
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}
