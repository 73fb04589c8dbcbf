package dto

// Request DTO (前端传进来的数据)

// RegisterReq 注册请求
type RegisterReq struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Address  string `json:"address" binding:"omitempty,max=255"`
	City     string `json:"city" binding:"omitempty,max=50"`
}

// LoginReq 登录请求
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshReq 刷新 Token 请求
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileReq 用户修改自己资料的请求
type UpdateProfileReq struct {
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Address  *string `json:"address" binding:"omitempty,max=255"`
	City     *string `json:"city" binding:"omitempty,max=50"`
}

// Fields 转成按列更新的 map，nil 字段跳过
func (r *UpdateProfileReq) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.FullName != nil {
		fields["full_name"] = *r.FullName
	}
	if r.Phone != nil {
		fields["phone"] = *r.Phone
	}
	if r.Address != nil {
		fields["address"] = *r.Address
	}
	if r.City != nil {
		fields["city"] = *r.City
	}
	return fields
}

// SetActiveReq 管理端启用 / 禁用账号
type SetActiveReq struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// RoleReq 授予 / 收回角色
type RoleReq struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}
