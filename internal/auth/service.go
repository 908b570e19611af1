package auth

import (
	"fmt"
	"time"

	"github.com/KevinKickass/OpenIOTable/internal/config"
	"github.com/google/uuid"
)

type Permission string

const (
	// PermRead allows catalog, summary and stored-data queries.
	PermRead Permission = "read"
	// PermGenerate allows building and exporting point tables.
	PermGenerate Permission = "generate"
	// PermManage allows changing stored station equipment lists.
	PermManage Permission = "manage"
)

const (
	RoleViewer   = "viewer"
	RoleEngineer = "engineer"
	RoleAdmin    = "admin"
)

type AuthService struct {
	jwtHandler *JWTHandler
	enabled    bool
}

func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		jwtHandler: NewJWTHandler(cfg.GetJWTSecret(), cfg.AccessTokenTTL),
		enabled:    cfg.Enabled,
	}
}

// Enabled reports whether requests must carry a token.
func (a *AuthService) Enabled() bool {
	return a.enabled
}

// IssueToken creates an access token for subject with role.
func (a *AuthService) IssueToken(subject, role string) (string, time.Time, error) {
	if !ValidRole(role) {
		return "", time.Time{}, fmt.Errorf("unknown role %q", role)
	}
	return a.jwtHandler.GenerateAccessToken(uuid.New(), subject, role)
}

// ValidateToken returns the permissions granted by token.
func (a *AuthService) ValidateToken(token string) ([]Permission, error) {
	claims, err := a.jwtHandler.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	return RolePermissions(claims.Role), nil
}

func ValidRole(role string) bool {
	switch role {
	case RoleViewer, RoleEngineer, RoleAdmin:
		return true
	default:
		return false
	}
}

func RolePermissions(role string) []Permission {
	switch role {
	case RoleAdmin:
		return []Permission{PermRead, PermGenerate, PermManage}
	case RoleEngineer:
		return []Permission{PermRead, PermGenerate}
	case RoleViewer:
		return []Permission{PermRead}
	default:
		return []Permission{}
	}
}

// AllPermissions is granted to every request when auth is disabled.
func AllPermissions() []Permission {
	return []Permission{PermRead, PermGenerate, PermManage}
}
