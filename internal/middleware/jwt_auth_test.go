package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{JWTAuth()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	r.GET("/protected", chain...)
	return r
}

func doGet(r http.Handler, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_TokenRoundTrip(t *testing.T) {
	access, refresh, err := GenerateTokenPair(42, "buyer@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	claims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 42 || claims.Email != "buyer@example.com" || claims.Role != "user" {
		t.Errorf("claims 错误: %+v", claims)
	}
	if claims.Subject != "access" {
		t.Errorf("Subject = %q, want access", claims.Subject)
	}

	refreshClaims, err := ParseToken(refresh)
	if err != nil {
		t.Fatalf("ParseToken(refresh) error = %v", err)
	}
	if refreshClaims.Subject != "refresh" {
		t.Errorf("Refresh Subject = %q, want refresh", refreshClaims.Subject)
	}
}

func TestJWTAuth_Middleware(t *testing.T) {
	r := protectedRouter()

	// 无 Token
	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("无 Token 状态码 = %d, want 401", w.Code)
	}

	// 乱 Token
	if w := doGet(r, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("乱 Token 状态码 = %d, want 401", w.Code)
	}

	// Refresh Token 不能当 Access 用
	_, refresh, _ := GenerateTokenPair(1, "x@example.com", "user")
	if w := doGet(r, refresh); w.Code != http.StatusUnauthorized {
		t.Errorf("Refresh Token 状态码 = %d, want 401", w.Code)
	}

	// 正常 Token
	access, _, _ := GenerateTokenPair(1, "x@example.com", "user")
	if w := doGet(r, access); w.Code != http.StatusOK {
		t.Errorf("合法 Token 状态码 = %d, want 200", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter(RequireRole("admin"))

	userToken, _, _ := GenerateTokenPair(2, "user@example.com", "user")
	if w := doGet(r, userToken); w.Code != http.StatusForbidden {
		t.Errorf("普通用户访问管理接口状态码 = %d, want 403", w.Code)
	}

	adminToken, _, _ := GenerateTokenPair(3, "admin@example.com", "admin")
	if w := doGet(r, adminToken); w.Code != http.StatusOK {
		t.Errorf("管理员访问状态码 = %d, want 200", w.Code)
	}
}
