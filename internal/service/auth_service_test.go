package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"afiliasi/config"
	"afiliasi/internal/domain"
	"afiliasi/internal/models"

	"github.com/shopspring/decimal"
)

type fakeUserStore struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserStore) GetByGoogleID(googleID string) (*models.User, error) {
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserStore) GetAffiliateByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok || u.Role != domain.RoleAffiliate {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetActiveAffiliateByCode(code string) (*models.User, error) {
	for _, u := range f.users {
		if u.ReferralCode != nil && *u.ReferralCode == code && u.Role == domain.RoleAffiliate && u.IsActive {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserStore) ReferralCodeTaken(code string) (bool, error) {
	for _, u := range f.users {
		if u.ReferralCode != nil && *u.ReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Create(u *models.User) error {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) Update(u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access",
			RefreshSecret: "test-refresh",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "afiliasi-test",
		},
		Commission: config.CommissionConfig{
			DefaultRate: decimal.NewFromFloat(10.00),
			MinPayout:   decimal.NewFromInt(10000),
		},
	}
}

func TestRegisterAffiliateIssuesReferralCode(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(testConfig(), store)

	u, access, refresh, err := svc.RegisterAffiliate("Dewi Lestari", "dewi@example.com", "rahasia123", "0812000111")
	if err != nil {
		t.Fatalf("RegisterAffiliate: %v", err)
	}
	if u.Role != domain.RoleAffiliate {
		t.Errorf("role = %q, want affiliate", u.Role)
	}
	if u.ReferralCode == nil || !strings.HasPrefix(*u.ReferralCode, "EB") || len(*u.ReferralCode) != 8 {
		t.Errorf("referral code = %v, want EB + 6 chars", u.ReferralCode)
	}
	if !u.CommissionRate.Equal(decimal.NewFromFloat(10.00)) {
		t.Errorf("commission rate = %s, want default 10.00", u.CommissionRate)
	}
	if !u.IsActive {
		t.Errorf("new affiliate not active")
	}
	if access == "" || refresh == "" {
		t.Errorf("token pair missing: access=%q refresh=%q", access, refresh)
	}
	if u.PasswordHash == "rahasia123" {
		t.Errorf("password stored in plain text")
	}
}

func TestRegisterAffiliateDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(testConfig(), store)

	if _, _, _, err := svc.RegisterAffiliate("A", "dup@example.com", "pw123456", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, _, err := svc.RegisterAffiliate("B", "dup@example.com", "pw123456", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}
}

func TestCreateAffiliateCustomRate(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(testConfig(), store)

	u, err := svc.CreateAffiliate(CreateAffiliateInput{
		Name:           "Rudi",
		Email:          "rudi@example.com",
		Password:       "pw123456",
		CommissionRate: decimal.NewNullDecimal(decimal.NewFromFloat(17.50)),
		IsActive:       true,
	})
	if err != nil {
		t.Fatalf("CreateAffiliate: %v", err)
	}
	if !u.CommissionRate.Equal(decimal.NewFromFloat(17.50)) {
		t.Errorf("commission rate = %s, want 17.50", u.CommissionRate)
	}
	if u.EmailVerifiedAt == nil {
		t.Errorf("admin-created affiliate not verified")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(testConfig(), store)

	if _, _, _, err := svc.RegisterAffiliate("A", "a@example.com", "correct-pw", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, _, err := svc.Login("a@example.com", "wrong-pw"); !errors.Is(err, ErrInvalidCreds) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCreds", err)
	}
	if _, _, _, err := svc.Login("missing@example.com", "whatever"); !errors.Is(err, ErrInvalidCreds) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCreds", err)
	}
	if _, _, _, err := svc.Login("a@example.com", "correct-pw"); err != nil {
		t.Errorf("valid login: %v", err)
	}
}

func TestLoginWithGoogleLinksByEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(testConfig(), store)

	existing, _, _, err := svc.RegisterAffiliate("Eka", "eka@example.com", "pw123456", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	u, _, _, isNew, err := svc.LoginWithGoogle("goog-123", "eka@example.com", "Eka")
	if err != nil {
		t.Fatalf("LoginWithGoogle: %v", err)
	}
	if isNew {
		t.Errorf("linking reported as new account")
	}
	if u.ID != existing.ID {
		t.Errorf("linked to user %d, want %d", u.ID, existing.ID)
	}
	if u.GoogleID == nil || *u.GoogleID != "goog-123" {
		t.Errorf("google id not linked: %v", u.GoogleID)
	}

	// Subsequent sign-ins resolve by Google ID.
	again, _, _, isNew, err := svc.LoginWithGoogle("goog-123", "eka@example.com", "Eka")
	if err != nil || isNew || again.ID != existing.ID {
		t.Errorf("repeat google login: u=%v isNew=%v err=%v", again, isNew, err)
	}
}

func TestLoginWithGoogleCreatesAffiliate(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(testConfig(), store)

	u, _, _, isNew, err := svc.LoginWithGoogle("goog-999", "baru@example.com", "Akun Baru")
	if err != nil {
		t.Fatalf("LoginWithGoogle: %v", err)
	}
	if !isNew {
		t.Errorf("fresh google account not reported as new")
	}
	if u.Role != domain.RoleAffiliate || u.ReferralCode == nil {
		t.Errorf("google signup missing affiliate setup: role=%q code=%v", u.Role, u.ReferralCode)
	}
}

func TestChangePassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(testConfig(), store)

	u, _, _, err := svc.RegisterAffiliate("A", "a@example.com", "old-pw-123", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.ChangePassword(u.ID, "wrong", "new-pw-123"); !errors.Is(err, ErrInvalidCreds) {
		t.Errorf("wrong current password: err = %v", err)
	}
	if err := svc.ChangePassword(u.ID, "old-pw-123", "new-pw-123"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, _, _, err := svc.Login("a@example.com", "new-pw-123"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(testConfig(), store)

	_, _, refresh, err := svc.RegisterAffiliate("A", "a@example.com", "pw123456", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	access2, refresh2, err := svc.RefreshToken(refresh)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if access2 == "" || refresh2 == "" {
		t.Errorf("refresh produced empty pair")
	}
	if _, _, err := svc.RefreshToken("not-a-token"); err == nil {
		t.Errorf("garbage refresh token accepted")
	}
}
