package service

import (
	"context"
	"errors"
	"fmt"

	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"

	"gorm.io/gorm"
)

// ==================== ShipmentService 运单阶段引擎 ====================

// ShipmentService 维护运单在固定 8 阶段流水线中的位置，
// 并保持父订单的粗粒度状态同步。
type ShipmentService struct {
	uow          *repository.ShipmentUnitOfWork
	shipmentRepo repository.ShipmentRepository
	orderRepo    repository.OrderRepository
	notifier     *NotificationService
}

// NewShipmentService 创建运单服务
func NewShipmentService(
	uow *repository.ShipmentUnitOfWork,
	shipmentRepo repository.ShipmentRepository,
	orderRepo repository.OrderRepository,
	notifier *NotificationService,
) *ShipmentService {
	return &ShipmentService{
		uow:          uow,
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
		notifier:     notifier,
	}
}

// ==================== 阶段计算（纯函数） ====================

// StageIndex 返回运单状态在固定阶段表中的索引。
// 运单不存在、或状态不在阶段表里时返回 0（兜底默认，不算错误）。
func StageIndex(shipment *model.Shipment) int {
	if shipment == nil {
		return 0
	}
	for i, stage := range model.ShipmentStages {
		if shipment.Status == stage {
			return i
		}
	}
	return 0
}

// ProgressPercent 根据阶段索引计算进度百分比
func ProgressPercent(stageIndex int) float64 {
	return float64(stageIndex) / float64(len(model.ShipmentStages)-1) * 100
}

// CoarseOrderStatus 细粒度阶段 -> 粗粒度订单状态的唯一映射点
func CoarseOrderStatus(stage string) string {
	switch stage {
	case model.StageDelivered:
		return model.OrderStatusDelivered
	case model.StageOrdered:
		return model.OrderStatusPending
	default:
		return model.OrderStatusProcessing
	}
}

// ==================== 阶段推进 ====================

// SetStage 把订单的运单设置到指定阶段。
// 运单行是懒创建的：订单首次设置阶段时才插入；之后只更新 status。
// 任意阶段都可以直接跳到任意阶段（包括回退），这是刻意保留的宽松行为，
// 管理端需要这种自由度来纠错。
// 运单状态和订单粗粒度状态在同一个事务里落库，不会出现两边不一致。
func (s *ShipmentService) SetStage(ctx context.Context, orderID, userID int64, stageIndex int) (*model.Shipment, error) {
	if stageIndex < 0 || stageIndex >= len(model.ShipmentStages) {
		return nil, fmt.Errorf("无效的阶段索引: %d", stageIndex)
	}
	stage := model.ShipmentStages[stageIndex]

	var result *model.Shipment
	err := s.uow.Transaction(ctx, func(uow *repository.ShipmentUnitOfWork) error {
		// 订单必须存在
		order, err := uow.Orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("订单不存在: %v", err)
		}

		// 懒创建运单行
		shipment, err := uow.Shipments.GetByOrderID(ctx, orderID)
		switch {
		case err == nil:
			if err := uow.Shipments.UpdateStatus(ctx, shipment.ID, stage); err != nil {
				return fmt.Errorf("更新运单状态失败: %v", err)
			}
			shipment.Status = stage
		case errors.Is(err, gorm.ErrRecordNotFound):
			shipment = &model.Shipment{
				OrderID: orderID,
				UserID:  userID,
				Status:  stage,
			}
			if err := uow.Shipments.Create(ctx, shipment); err != nil {
				return fmt.Errorf("创建运单失败: %v", err)
			}
		default:
			return fmt.Errorf("查询运单失败: %v", err)
		}

		// 同步父订单的粗粒度状态
		coarse := CoarseOrderStatus(stage)
		if order.Status != coarse {
			if err := uow.Orders.UpdateStatus(ctx, orderID, coarse); err != nil {
				return fmt.Errorf("同步订单状态失败: %v", err)
			}
		}

		result = shipment
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 事务之外的尽力而为通知，失败只记日志
	s.notifier.Notify(ctx, userID, model.NotificationTypeShipment,
		"Shipment update", fmt.Sprintf("Your shipment is now: %s", stage), orderID)

	return result, nil
}

// ==================== 查询与维护 ====================

// GetByOrderID 获取订单对应的运单，未发货订单返回 nil
func (s *ShipmentService) GetByOrderID(ctx context.Context, orderID int64) (*model.Shipment, error) {
	shipment, err := s.shipmentRepo.GetByOrderID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return shipment, err
}

// List 运单列表
func (s *ShipmentService) List(ctx context.Context, filter repository.ShipmentFilter) ([]model.Shipment, int64, error) {
	return s.shipmentRepo.List(ctx, filter)
}

// UpdateInfo 管理端编辑运单的物流信息（不改阶段）
func (s *ShipmentService) UpdateInfo(ctx context.Context, id int64, fields map[string]interface{}) error {
	allowed := map[string]bool{
		"tracking_number":    true,
		"carrier":            true,
		"notes":              true,
		"estimated_delivery": true,
	}
	for k := range fields {
		if !allowed[k] {
			return fmt.Errorf("不允许修改字段: %s", k)
		}
	}
	return s.shipmentRepo.UpdateFields(ctx, id, fields)
}
