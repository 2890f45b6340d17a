package service

import (
	"errors"
	"testing"

	"github.com/portrait-next/internal/config"
	"github.com/portrait-next/internal/models"
	"github.com/portrait-next/internal/repository"

	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) (*AuthService, repository.StaffRepository) {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-that-is-long-enough"
	cfg.JWT.ExpireHours = 1
	repo := repository.NewStaffRepository(db)
	return NewAuthService(cfg, repo), repo
}

func seedStaff(t *testing.T, svc *AuthService, repo repository.StaffRepository, username, password string) *models.Staff {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	staff := &models.Staff{Username: username, PasswordHash: hash}
	if err := repo.Create(staff); err != nil {
		t.Fatalf("create staff failed: %v", err)
	}
	return staff
}

func TestStaffLoginAndTokenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc, repo := newAuthService(db)
	seedStaff(t, svc, repo, "emma", "sup3r-secret")

	staff, token, expiresAt, err := svc.Login("emma", "sup3r-secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("expected token and expiry, got %q %v", token, expiresAt)
	}
	if staff.LastLoginAt == nil {
		t.Fatal("expected last_login_at to be stamped")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.StaffID != staff.ID || claims.Username != "emma" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestStaffLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc, repo := newAuthService(db)
	seedStaff(t, svc, repo, "emma", "sup3r-secret")

	if _, _, _, err := svc.Login("emma", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("ghost", "sup3r-secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	db := newTestDB(t)
	svc, repo := newAuthService(db)
	staff := seedStaff(t, svc, repo, "emma", "sup3r-secret")

	if err := svc.ChangePassword(staff.ID, "wrong", "another-secret"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(staff.ID, "sup3r-secret", "short"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for weak password, got %v", err)
	}

	if err := svc.ChangePassword(staff.ID, "sup3r-secret", "another-secret"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	reloaded, err := repo.GetByID(staff.ID)
	if err != nil {
		t.Fatalf("reload staff failed: %v", err)
	}
	if reloaded.TokenVersion != staff.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", reloaded.TokenVersion)
	}
	if reloaded.TokenInvalidBefore == nil {
		t.Fatal("expected token_invalid_before to be set")
	}
	if _, _, _, err := svc.Login("emma", "another-secret"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
