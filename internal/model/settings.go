package model

// ==================== AppSetting 站点配置 ====================

// AppSetting 站点配置键值对（品牌、联系方式、汇率等）
type AppSetting struct {
	BaseModel
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

func (AppSetting) TableName() string {
	return "app_settings"
}

// 常用配置键
const (
	SettingKeyCNYToBDTRate = "cny_to_bdt_rate"
	SettingKeySiteName     = "site_name"
	SettingKeySupportPhone = "support_phone"
	SettingKeySupportEmail = "support_email"
	SettingKeyOfficeAddr   = "office_address"
)
