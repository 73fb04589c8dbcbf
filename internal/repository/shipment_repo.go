package repository

import (
	"context"

	"tradeon_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== 过滤条件 ====================

// ShipmentFilter 运单过滤条件
type ShipmentFilter struct {
	UserID         int64
	OrderID        int64
	Status         string
	TrackingNumber string
	Page           int
	PageSize       int
}

// ==================== ShipmentRepository 运单仓储 ====================

// ShipmentRepository 运单仓储接口
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *model.Shipment) error
	GetByID(ctx context.Context, id int64) (*model.Shipment, error)
	GetByOrderID(ctx context.Context, orderID int64) (*model.Shipment, error)
	List(ctx context.Context, filter ShipmentFilter) ([]model.Shipment, int64, error)
	Update(ctx context.Context, shipment *model.Shipment) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository 创建运单仓储
func NewShipmentRepository(db *gorm.DB) ShipmentRepository {
	return &shipmentRepository{db: db}
}

func (r *shipmentRepository) Create(ctx context.Context, shipment *model.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

func (r *shipmentRepository) GetByID(ctx context.Context, id int64) (*model.Shipment, error) {
	var shipment model.Shipment
	err := r.db.WithContext(ctx).First(&shipment, id).Error
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Shipment, error) {
	var shipment model.Shipment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&shipment).Error
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepository) List(ctx context.Context, filter ShipmentFilter) ([]model.Shipment, int64, error) {
	var shipments []model.Shipment
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Shipment{})

	if filter.UserID > 0 {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.OrderID > 0 {
		db = db.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.TrackingNumber != "" {
		db = db.Where("tracking_number = ?", filter.TrackingNumber)
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
	offset := (filter.Page - 1) * filter.PageSize

	err := db.
		Order("updated_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&shipments).Error

	return shipments, total, err
}

func (r *shipmentRepository) Update(ctx context.Context, shipment *model.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

func (r *shipmentRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Shipment{}).Where("id = ?", id).Updates(fields).Error
}

func (r *shipmentRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&model.Shipment{}).Where("id = ?", id).Update("status", status).Error
}

func (r *shipmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Shipment{}, id).Error
}

// ==================== ShipmentUnitOfWork 运单工作单元 ====================

// ShipmentUnitOfWork 运单工作单元（事务）
// 阶段推进需要同时写 shipments.status 和 orders.status，两笔必须同事务落库
type ShipmentUnitOfWork struct {
	db        *gorm.DB
	Shipments ShipmentRepository
	Orders    OrderRepository
}

// NewShipmentUnitOfWork 创建工作单元
func NewShipmentUnitOfWork(db *gorm.DB) *ShipmentUnitOfWork {
	return &ShipmentUnitOfWork{
		db:        db,
		Shipments: NewShipmentRepository(db),
		Orders:    NewOrderRepository(db),
	}
}

// Transaction 执行事务
func (u *ShipmentUnitOfWork) Transaction(ctx context.Context, fn func(uow *ShipmentUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &ShipmentUnitOfWork{
			db:        tx,
			Shipments: NewShipmentRepository(tx),
			Orders:    NewOrderRepository(tx),
		}
		return fn(txUow)
	})
}
