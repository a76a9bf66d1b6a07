package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agrimarket/agrimarket/internal/config"
	"github.com/agrimarket/agrimarket/internal/constants"
	"github.com/agrimarket/agrimarket/internal/models"
	"github.com/agrimarket/agrimarket/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func newAuthTestService(t *testing.T, name string) *UserAuthService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "auth-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 1
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	svc := newAuthTestService(t, "auth_roundtrip")

	user, err := svc.Register(RegisterInput{
		Name:     "Grace",
		Email:    "  Grace@Example.com ",
		Password: "secret-pass",
		Role:     constants.RoleFarmer,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "grace@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "secret-pass" || user.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}

	token, loggedIn, err := svc.Login("grace@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, loggedIn.ID)
	}

	claims := &UserJWTClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("auth-test-secret-key-0123456789abcdef"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != constants.RoleFarmer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthTestService(t, "auth_dup_email")

	input := RegisterInput{Name: "A", Email: "dup@example.com", Password: "pw123456"}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	input.Email = "DUP@example.com"
	if _, err := svc.Register(input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email taken, got: %v", err)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := newAuthTestService(t, "auth_admin_role")

	_, err := svc.Register(RegisterInput{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "pw123456",
		Role:     constants.RoleAdmin,
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected invalid role, got: %v", err)
	}
}

func TestRegisterDefaultsToBuyer(t *testing.T) {
	svc := newAuthTestService(t, "auth_default_role")

	user, err := svc.Register(RegisterInput{Name: "B", Email: "b@example.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != constants.RoleBuyer {
		t.Fatalf("expected buyer role, got %q", user.Role)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthTestService(t, "auth_bad_creds")

	if _, _, err := svc.Login("nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got: %v", err)
	}

	if _, err := svc.Register(RegisterInput{Name: "C", Email: "c@example.com", Password: "pw123456"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login("c@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got: %v", err)
	}
}
