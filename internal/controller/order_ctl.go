package controller

import (
	"net/http"
	"strconv"
	"time"

	"tradeon_v1_202608/internal/api/dto"
	"tradeon_v1_202608/internal/middleware"
	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"
	"tradeon_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(s *service.OrderService) *OrderController {
	return &OrderController{orderService: s}
}

// parseID 从路径参数取数字 ID
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " 必须是正整数"})
		return 0, false
	}
	return id, true
}

// ==================== 买家端 ====================

// Place 买家下单
func (ctrl *OrderController) Place(c *gin.Context) {
	var req dto.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误", "detail": err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	order, err := ctrl.orderService.PlaceOrder(c.Request.Context(), userID, service.PlaceOrderInput{
		ProductName:  req.ProductName,
		ProductImage: req.ProductImage,
		ProductURL:   req.ProductURL,
		VariantName:  req.VariantName,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Notes:        req.Notes,
		SourceData:   req.SourceData,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "下单成功", "data": order})
}

// MyOrders 买家自己的订单列表
func (ctrl *OrderController) MyOrders(c *gin.Context) {
	filter := buildOrderFilter(c)
	filter.UserID = middleware.GetUserID(c)

	orders, total, err := ctrl.orderService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders, "total": total, "page": filter.Page, "page_size": filter.PageSize})
}

// Detail 订单详情。买家只能看自己的，管理员不受限。
func (ctrl *OrderController) Detail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "订单不存在"})
		return
	}

	if middleware.GetRole(c) != model.RoleAdmin && order.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "无权查看该订单"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

// Cancel 买家取消订单
func (ctrl *OrderController) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	if err := ctrl.orderService.Cancel(c.Request.Context(), id, userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "订单已取消"})
}

// ==================== 管理端 ====================

// List 管理端订单列表
func (ctrl *OrderController) List(c *gin.Context) {
	filter := buildOrderFilter(c)
	if v := c.Query("user_id"); v != "" {
		filter.UserID, _ = strconv.ParseInt(v, 10, 64)
	}

	orders, total, err := ctrl.orderService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders, "total": total, "page": filter.Page, "page_size": filter.PageSize})
}

// Update 管理端编辑订单
func (ctrl *OrderController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.AdminUpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误", "detail": err.Error()})
		return
	}

	if err := ctrl.orderService.AdminUpdate(c.Request.Context(), id, req.Fields()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// Delete 管理端删除订单
func (ctrl *OrderController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.orderService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// Stats 看板统计
func (ctrl *OrderController) Stats(c *gin.Context) {
	stats, err := ctrl.orderService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计失败", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// buildOrderFilter 从查询参数组装过滤条件
func buildOrderFilter(c *gin.Context) repository.OrderFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.OrderFilter{
		Status:   c.Query("status"),
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	}

	if v := c.Query("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Second)
			filter.EndDate = &end
		}
	}

	return filter
}
