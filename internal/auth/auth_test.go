package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KevinKickass/OpenIOTable/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(enabled bool) *AuthService {
	return NewAuthService(config.AuthConfig{
		Enabled:        enabled,
		JWTSecretEnv:   "IOT_AUTH_TEST_SECRET",
		AccessTokenTTL: time.Hour,
	})
}

func TestIssueAndValidate(t *testing.T) {
	a := newService(true)

	token, expires, err := a.IssueToken("ci-bot", RoleEngineer)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	perms, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, []Permission{PermRead, PermGenerate}, perms)

	_, _, err = a.IssueToken("x", "root")
	assert.Error(t, err)
}

func TestValidateRejectsForeignAndExpiredTokens(t *testing.T) {
	a := newService(true)

	other := NewJWTHandler("another-secret-another-secret-xx", time.Hour)
	token, _, err := other.GenerateAccessToken(uuid.New(), "x", RoleAdmin)
	require.NoError(t, err)
	_, err = a.ValidateToken(token)
	assert.Error(t, err)

	cfg := config.AuthConfig{JWTSecretEnv: "IOT_AUTH_TEST_SECRET"}
	expired := NewJWTHandler(cfg.GetJWTSecret(), -time.Minute)
	token, _, err = expired.GenerateAccessToken(uuid.New(), "x", RoleAdmin)
	require.NoError(t, err)
	_, err = a.ValidateToken(token)
	assert.Error(t, err)
}

func TestRolePermissions(t *testing.T) {
	assert.Equal(t, []Permission{PermRead}, RolePermissions(RoleViewer))
	assert.Equal(t, []Permission{PermRead, PermGenerate, PermManage}, RolePermissions(RoleAdmin))
	assert.Empty(t, RolePermissions("nobody"))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := newService(true)
	viewer, _, err := a.IssueToken("v", RoleViewer)
	require.NoError(t, err)
	engineer, _, err := a.IssueToken("e", RoleEngineer)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/generate", a.AuthMiddleware(), RequirePermission(PermGenerate), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"viewer", "Bearer " + viewer, http.StatusForbidden},
		{"engineer", "Bearer " + engineer, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/generate", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestMiddlewareDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := newService(false)

	r := gin.New()
	r.GET("/x", a.AuthMiddleware(), RequirePermission(PermManage), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
