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

type ShipmentController struct {
	shipmentService *service.ShipmentService
	orderService    *service.OrderService
}

func NewShipmentController(shipmentService *service.ShipmentService, orderService *service.OrderService) *ShipmentController {
	return &ShipmentController{shipmentService: shipmentService, orderService: orderService}
}

// ==================== 进度查询 ====================

// Progress 订单物流进度（买家看自己的，管理员不受限）
func (ctrl *ShipmentController) Progress(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "订单不存在"})
		return
	}
	if middleware.GetRole(c) != model.RoleAdmin && order.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "无权查看该订单"})
		return
	}

	shipment, err := ctrl.shipmentService.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}

	// 没有运单记录按第 0 阶段展示
	idx := service.StageIndex(shipment)
	resp := dto.ShipmentProgressResp{
		OrderID:         orderID,
		Stage:           model.ShipmentStages[idx],
		StageIndex:      idx,
		ProgressPercent: service.ProgressPercent(idx),
		Stages:          model.ShipmentStages,
	}
	if shipment != nil {
		resp.TrackingNumber = shipment.TrackingNumber
		resp.Carrier = shipment.Carrier
		resp.EstimatedDelivery = shipment.EstimatedDelivery
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ==================== 管理端 ====================

// List 管理端运单列表
func (ctrl *ShipmentController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.ShipmentFilter{
		Status:         c.Query("status"),
		TrackingNumber: c.Query("tracking_number"),
		Page:           page,
		PageSize:       pageSize,
	}
	if v := c.Query("user_id"); v != "" {
		filter.UserID, _ = strconv.ParseInt(v, 10, 64)
	}

	shipments, total, err := ctrl.shipmentService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": shipments, "total": total, "page": page, "page_size": pageSize})
}

// SetStage 管理端设置运单阶段（允许往回跳）
func (ctrl *ShipmentController) SetStage(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var req dto.SetStageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误", "detail": err.Error()})
		return
	}

	order, err := ctrl.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "订单不存在"})
		return
	}

	shipment, err := ctrl.shipmentService.SetStage(c.Request.Context(), orderID, order.UserID, *req.StageIndex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "阶段已更新", "data": shipment})
}

// Update 管理端编辑运单信息（运单号、承运商、备注、预计送达）
func (ctrl *ShipmentController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateShipmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误", "detail": err.Error()})
		return
	}

	if err := ctrl.shipmentService.UpdateInfo(c.Request.Context(), id, req.Fields()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}
