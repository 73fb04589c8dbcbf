package repository

import (
	"context"

	"tradeon_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== ProfileRepository 用户资料仓储 ====================

// ProfileRepository 用户资料仓储接口
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, id int64) (*model.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	List(ctx context.Context, keyword string, page, pageSize int) ([]model.Profile, int64, error)
	Update(ctx context.Context, profile *model.Profile) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建用户资料仓储
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id int64) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByUserID 按用户 ID 取资料。profiles 的主键就是用户 ID。
func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	return r.GetByID(ctx, userID)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, keyword string, page, pageSize int) ([]model.Profile, int64, error) {
	var profiles []model.Profile
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Profile{})
	if keyword != "" {
		kw := "%" + keyword + "%"
		db = db.Where("full_name LIKE ? OR email LIKE ? OR phone LIKE ?", kw, kw, kw)
	}

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
		Find(&profiles).Error

	return profiles, total, err
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Updates(fields).Error
}

func (r *profileRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Profile{}, id).Error
}

// ==================== UserRoleRepository 用户角色仓储 ====================

// UserRoleRepository 用户角色仓储接口
type UserRoleRepository interface {
	Create(ctx context.Context, role *model.UserRole) error
	GetByUserID(ctx context.Context, userID int64) ([]model.UserRole, error)
	HasRole(ctx context.Context, userID int64, role string) (bool, error)
	Delete(ctx context.Context, userID int64, role string) error
}

type userRoleRepository struct {
	db *gorm.DB
}

// NewUserRoleRepository 创建用户角色仓储
func NewUserRoleRepository(db *gorm.DB) UserRoleRepository {
	return &userRoleRepository{db: db}
}

func (r *userRoleRepository) Create(ctx context.Context, role *model.UserRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *userRoleRepository) GetByUserID(ctx context.Context, userID int64) ([]model.UserRole, error) {
	var roles []model.UserRole
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&roles).Error
	return roles, err
}

func (r *userRoleRepository) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	return count > 0, err
}

func (r *userRoleRepository) Delete(ctx context.Context, userID int64, role string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&model.UserRole{}).Error
}
