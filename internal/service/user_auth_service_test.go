package service

import (
	"errors"
	"testing"

	"github.com/pazar-next/internal/constants"
	"github.com/pazar-next/internal/models"
	"github.com/pazar-next/internal/repository"

	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *UserAuthService {
	return NewUserAuthService(
		testAuthConfig(),
		repository.NewUserRepository(db),
		repository.NewCartRepository(db),
		repository.NewShopRepository(db),
	)
}

func TestRegisterCustomerCreatesCart(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestAuthService(db)

	user, token, expiresAt, err := svc.Register(RegisterInput{
		Email:     "Ayse@Example.com",
		Password:  "Sifre123!",
		FirstName: "Ayse",
		LastName:  "Demir",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "ayse@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.Role != constants.RoleCustomer {
		t.Fatalf("expected default role customer, got %s", user.Role)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("expected token and expiry")
	}

	var cart models.Cart
	if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
		t.Fatalf("expected cart created on register: %v", err)
	}
	var shopCount int64
	if err := db.Model(&models.Shop{}).Where("user_id = ?", user.ID).Count(&shopCount).Error; err != nil {
		t.Fatalf("count shops failed: %v", err)
	}
	if shopCount != 0 {
		t.Fatalf("customer should not get a shop, got %d", shopCount)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("ParseUserJWT failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != user.Role {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterSellerCreatesShop(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestAuthService(db)

	user, _, _, err := svc.Register(RegisterInput{
		Email:     "deniz@example.com",
		Password:  "Sifre123!",
		FirstName: "Deniz",
		LastName:  "Aksoy",
		Role:      constants.RoleSeller,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	var shop models.Shop
	if err := db.Where("user_id = ?", user.ID).First(&shop).Error; err != nil {
		t.Fatalf("expected shop created for seller: %v", err)
	}
	if shop.Name != "Deniz's Shop" {
		t.Fatalf("unexpected shop name: %s", shop.Name)
	}
	if shop.Slug == "" {
		t.Fatalf("expected shop slug")
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestAuthService(db)

	if _, _, _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "Sifre123!"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "a@example.com", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "a@example.com", Password: "Sifre123!", Role: "admin"}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for admin self-registration, got %v", err)
	}

	if _, _, _, err := svc.Register(RegisterInput{Email: "a@example.com", Password: "Sifre123!", FirstName: "A"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "A@EXAMPLE.COM", Password: "Sifre123!", FirstName: "A"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists for duplicate email, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestAuthService(db)

	if _, _, _, err := svc.Register(RegisterInput{Email: "mert@example.com", Password: "Sifre123!", FirstName: "Mert"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, token, _, err := svc.Login("MERT@example.com", "Sifre123!")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last_login_at to be set")
	}

	if _, _, _, err := svc.Login("mert@example.com", "WrongPass1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "Sifre123!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	if err := db.Model(&models.User{}).Where("email = ?", "mert@example.com").Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("mert@example.com", "Sifre123!"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestParseUserJWTRejectsTampered(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestAuthService(db)

	_, token, _, err := svc.Register(RegisterInput{Email: "mert@example.com", Password: "Sifre123!", FirstName: "Mert"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.ParseUserJWT(token + "x"); err == nil {
		t.Fatalf("expected error for tampered token")
	}

	other := NewUserAuthService(testAuthConfig(), repository.NewUserRepository(db), repository.NewCartRepository(db), repository.NewShopRepository(db))
	other.cfg.JWT.SecretKey = "another-secret-key-entirely-different!"
	if _, err := other.ParseUserJWT(token); err == nil {
		t.Fatalf("expected error for wrong signing key")
	}
}
