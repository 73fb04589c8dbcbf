package repository

import (
	"context"

	"tradeon_v1_202608/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== SettingsRepository 站点配置仓储 ====================

// SettingsRepository 站点配置仓储接口
type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository 创建站点配置仓储
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	var rows []model.AppSetting
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings, nil
}

func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	var row model.AppSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, key, value string) error {
	row := model.AppSetting{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *settingsRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&model.AppSetting{}).Error
}
