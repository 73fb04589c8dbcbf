package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradeon_v1_202608/internal/middleware"
	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Profile{}, &model.UserRole{}, &model.Wallet{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repository.NewProfileRepository(db),
		repository.NewUserRoleRepository(db),
		repository.NewWalletRepository(db),
	)
}

func TestAuthService_Register(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	profile, err := svc.Register(ctx, RegisterInput{
		FullName: "Karim Ahmed",
		Email:    "  Karim@Example.COM ",
		Password: "secret123",
		City:     "Chattogram",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// 邮箱应归一化为小写
	if profile.Email != "karim@example.com" {
		t.Errorf("邮箱 = %q, want 小写", profile.Email)
	}
	// 密码必须是散列，不能存明文
	if profile.Password == "secret123" || profile.Password == "" {
		t.Error("密码不应明文入库")
	}

	// 角色和钱包应一起建好
	var role model.UserRole
	if err := db.Where("user_id = ?", profile.ID).First(&role).Error; err != nil {
		t.Fatalf("角色行缺失: %v", err)
	}
	if role.Role != model.RoleUser {
		t.Errorf("默认角色 = %q, want %q", role.Role, model.RoleUser)
	}
	var wallet model.Wallet
	if err := db.Where("user_id = ?", profile.ID).First(&wallet).Error; err != nil {
		t.Fatalf("钱包行缺失: %v", err)
	}
	if wallet.Balance != 0 {
		t.Errorf("初始余额 = %v, want 0", wallet.Balance)
	}

	// 重复邮箱
	if _, err := svc.Register(ctx, RegisterInput{
		FullName: "Another", Email: "karim@example.com", Password: "whatever1",
	}); err == nil {
		t.Error("重复邮箱注册应该报错")
	}

	// 弱密码
	if _, err := svc.Register(ctx, RegisterInput{
		FullName: "Weak", Email: "weak@example.com", Password: "123",
	}); err == nil {
		t.Error("短密码应该报错")
	}
}

func TestAuthService_GetProfile_AfterRegister(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	profile, err := svc.Register(ctx, RegisterInput{
		FullName: "Rafiq Hossain", Email: "rafiq@example.com", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// 资料表主键就是用户 ID，注册完应能直接按 ID 取回
	got, err := svc.GetProfile(ctx, profile.ID)
	if err != nil {
		t.Fatalf("GetProfile() 对刚注册的用户报错: %v", err)
	}
	if got.ID != profile.ID || got.Email != "rafiq@example.com" {
		t.Errorf("取回的资料不匹配: %+v", got)
	}

	// 不存在的用户
	if _, err := svc.GetProfile(ctx, 9999); err == nil {
		t.Error("不存在的用户应该报错")
	}
}

func TestAuthService_Login(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		FullName: "Nadia Islam", Email: "nadia@example.com", Password: "pass1234",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := svc.Login(ctx, "nadia@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("登录应返回 Token 对")
	}
	if result.Role != model.RoleUser {
		t.Errorf("角色 = %q, want %q", result.Role, model.RoleUser)
	}

	// Token 应能解析回同一个用户
	claims, err := middleware.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != result.Profile.ID || claims.Subject != "access" {
		t.Errorf("claims 错误: %+v", claims)
	}

	// Refresh Token 应能换出新 Token 对
	refreshed, err := svc.Refresh(ctx, result.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.Profile.ID != result.Profile.ID {
		t.Errorf("刷新结果错误: %+v", refreshed)
	}
	// Access Token 不能当 Refresh 用
	if _, err := svc.Refresh(ctx, result.AccessToken); err == nil {
		t.Error("Access Token 刷新应该报错")
	}

	// 错误密码
	if _, err := svc.Login(ctx, "nadia@example.com", "wrong"); err == nil {
		t.Error("错误密码应该报错")
	}
	// 不存在的用户
	if _, err := svc.Login(ctx, "ghost@example.com", "pass1234"); err == nil {
		t.Error("不存在用户应该报错")
	}
}

func TestAuthService_Login_Disabled(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	profile, err := svc.Register(ctx, RegisterInput{
		FullName: "Banned", Email: "banned@example.com", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.SetActive(ctx, profile.ID, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if _, err := svc.Login(ctx, "banned@example.com", "pass1234"); err == nil {
		t.Error("禁用账号登录应该报错")
	}
}

func TestAuthService_Roles(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	profile, err := svc.Register(ctx, RegisterInput{
		FullName: "Ops", Email: "ops@example.com", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.GrantRole(ctx, profile.ID, model.RoleAdmin); err != nil {
		t.Fatalf("GrantRole() error = %v", err)
	}
	// 重复授予应幂等
	if err := svc.GrantRole(ctx, profile.ID, model.RoleAdmin); err != nil {
		t.Fatalf("重复 GrantRole() error = %v", err)
	}
	var count int64
	db.Model(&model.UserRole{}).Where("user_id = ? AND role = ?", profile.ID, model.RoleAdmin).Count(&count)
	if count != 1 {
		t.Errorf("admin 角色行数 = %d, want 1", count)
	}

	// 授予后登录应拿到 admin 角色
	result, err := svc.Login(ctx, "ops@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Role != model.RoleAdmin {
		t.Errorf("角色 = %q, want %q", result.Role, model.RoleAdmin)
	}

	// 未知角色
	if err := svc.GrantRole(ctx, profile.ID, "superuser"); err == nil {
		t.Error("未知角色应该报错")
	}

	// 收回
	if err := svc.RevokeRole(ctx, profile.ID, model.RoleAdmin); err != nil {
		t.Fatalf("RevokeRole() error = %v", err)
	}
	result, _ = svc.Login(ctx, "ops@example.com", "pass1234")
	if result.Role != model.RoleUser {
		t.Errorf("收回后角色 = %q, want %q", result.Role, model.RoleUser)
	}
}

func TestAuthService_UpdateProfile_Whitelist(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	profile, err := svc.Register(ctx, RegisterInput{
		FullName: "Old Name", Email: "profile@example.com", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.UpdateProfile(ctx, profile.ID, map[string]interface{}{
		"full_name": "New Name",
		"city":      "Sylhet",
	}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	got, err := svc.GetProfile(ctx, profile.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.FullName != "New Name" || got.City != "Sylhet" {
		t.Errorf("资料更新失败: %+v", got)
	}

	// email / password 不在白名单内
	if err := svc.UpdateProfile(ctx, profile.ID, map[string]interface{}{"email": "x@x.com"}); err == nil {
		t.Error("修改邮箱应该报错")
	}
	if err := svc.UpdateProfile(ctx, profile.ID, map[string]interface{}{"password": "hack"}); err == nil {
		t.Error("直接改密码应该报错")
	}
}
