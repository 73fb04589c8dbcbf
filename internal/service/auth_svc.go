package service

import (
	"context"
	"fmt"
	"strings"

	"tradeon_v1_202608/internal/middleware"
	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ==================== AuthService 认证服务 ====================

// AuthService 注册 / 登录 / 资料维护
type AuthService struct {
	profileRepo repository.ProfileRepository
	roleRepo    repository.UserRoleRepository
	walletRepo  repository.WalletRepository
}

// NewAuthService 创建认证服务
func NewAuthService(
	profileRepo repository.ProfileRepository,
	roleRepo repository.UserRoleRepository,
	walletRepo repository.WalletRepository,
) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		roleRepo:    roleRepo,
		walletRepo:  walletRepo,
	}
}

// RegisterInput 注册参数
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Address  string
	City     string
}

// AuthResult 登录结果
type AuthResult struct {
	Profile      *model.Profile `json:"profile"`
	Role         string         `json:"role"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
}

// ==================== 注册 ====================

// Register 注册买家账号：资料、角色、零余额钱包一起建
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, fmt.Errorf("邮箱不能为空")
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("密码至少 6 位")
	}

	if existing, err := s.profileRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("邮箱已注册")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %v", err)
	}

	profile := &model.Profile{
		FullName: in.FullName,
		Email:    email,
		Password: string(hash),
		Phone:    in.Phone,
		Address:  in.Address,
		City:     in.City,
		IsActive: true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("创建用户失败: %v", err)
	}

	if err := s.roleRepo.Create(ctx, &model.UserRole{
		UserID: profile.ID,
		Role:   model.RoleUser,
	}); err != nil {
		return nil, fmt.Errorf("分配角色失败: %v", err)
	}

	if _, err := s.walletRepo.GetOrCreate(ctx, profile.ID); err != nil {
		return nil, fmt.Errorf("初始化钱包失败: %v", err)
	}

	return profile, nil
}

// ==================== 登录 ====================

// Login 邮箱密码登录，返回 Token 对
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		// 不区分用户不存在和密码错误
		return nil, fmt.Errorf("邮箱或密码错误")
	}
	if !profile.IsActive {
		return nil, fmt.Errorf("账号已被禁用")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("邮箱或密码错误")
	}

	role := s.resolveRole(ctx, profile.ID)

	accessToken, refreshToken, err := middleware.GenerateTokenPair(profile.ID, profile.Email, role)
	if err != nil {
		return nil, fmt.Errorf("生成 Token 失败: %v", err)
	}

	return &AuthResult{
		Profile:      profile,
		Role:         role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh 用 Refresh Token 换新 Token 对
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh" {
		return nil, fmt.Errorf("Refresh Token 无效")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("用户不存在")
	}
	if !profile.IsActive {
		return nil, fmt.Errorf("账号已被禁用")
	}

	role := s.resolveRole(ctx, profile.ID)

	accessToken, newRefresh, err := middleware.GenerateTokenPair(profile.ID, profile.Email, role)
	if err != nil {
		return nil, fmt.Errorf("生成 Token 失败: %v", err)
	}

	return &AuthResult{
		Profile:      profile,
		Role:         role,
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

// resolveRole 取用户最高角色，没有记录按普通买家处理
func (s *AuthService) resolveRole(ctx context.Context, userID int64) string {
	if ok, err := s.roleRepo.HasRole(ctx, userID, model.RoleAdmin); err == nil && ok {
		return model.RoleAdmin
	}
	return model.RoleUser
}

// ==================== 资料 ====================

// GetProfile 查用户资料
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("用户不存在")
		}
		return nil, err
	}
	return profile, nil
}

// profileEditableFields 用户可自助修改的资料字段
var profileEditableFields = map[string]bool{
	"full_name": true,
	"phone":     true,
	"address":   true,
	"city":      true,
}

// UpdateProfile 用户修改自己的资料
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, fields map[string]interface{}) error {
	for k := range fields {
		if !profileEditableFields[k] {
			return fmt.Errorf("不允许修改字段: %s", k)
		}
	}
	if len(fields) == 0 {
		return fmt.Errorf("没有可更新的字段")
	}
	return s.profileRepo.UpdateFields(ctx, userID, fields)
}

// ==================== 管理端用户管理 ====================

// ListProfiles 管理端用户列表
func (s *AuthService) ListProfiles(ctx context.Context, keyword string, page, pageSize int) ([]model.Profile, int64, error) {
	return s.profileRepo.List(ctx, keyword, page, pageSize)
}

// SetActive 启用 / 禁用账号
func (s *AuthService) SetActive(ctx context.Context, userID int64, active bool) error {
	return s.profileRepo.UpdateFields(ctx, userID, map[string]interface{}{"is_active": active})
}

// GrantRole 给用户授予角色
func (s *AuthService) GrantRole(ctx context.Context, userID int64, role string) error {
	if role != model.RoleAdmin && role != model.RoleUser {
		return fmt.Errorf("未知角色: %s", role)
	}
	if ok, err := s.roleRepo.HasRole(ctx, userID, role); err == nil && ok {
		return nil
	}
	return s.roleRepo.Create(ctx, &model.UserRole{UserID: userID, Role: role})
}

// RevokeRole 收回用户角色
func (s *AuthService) RevokeRole(ctx context.Context, userID int64, role string) error {
	return s.roleRepo.Delete(ctx, userID, role)
}
