package model

// ==================== 角色常量 ====================

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ==================== Profile 用户资料 ====================

// Profile 买家资料（发票抬头、收货信息都从这里取）
// 主键 ID 即全局 user_id，orders.user_id / wallets.user_id 都指向它
type Profile struct {
	BaseModel

	FullName string `gorm:"size:255" json:"full_name"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	Phone    string `gorm:"size:32" json:"phone"`
	Address  string `gorm:"size:500" json:"address"`
	City     string `gorm:"size:100" json:"city"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ==================== UserRole 用户角色 ====================

// UserRole 用户角色表（一个用户可以有多个角色）
type UserRole struct {
	BaseModel
	UserID int64  `gorm:"index;not null" json:"user_id"`
	Role   string `gorm:"size:20;not null;default:user" json:"role"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
