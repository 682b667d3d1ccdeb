package service

import (
	"errors"
	"time"

	"afiliasi/config"
	"afiliasi/internal/auth"
	"afiliasi/internal/domain"
	"afiliasi/internal/models"
	"afiliasi/internal/ports"
	"afiliasi/internal/referralcode"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg   *config.Config
	users ports.UserStore
}

func NewAuthService(cfg *config.Config, users ports.UserStore) *AuthService {
	return &AuthService{cfg: cfg, users: users}
}

// RegisterAffiliate is the public self-signup path. The referral code is
// issued here, once, and never regenerated.
func (s *AuthService) RegisterAffiliate(name, email, password, phone string) (*models.User, string, string, error) {
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, "", "", ErrEmailExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	code, err := referralcode.Issue(s.users.ReferralCodeTaken)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Name:           name,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           domain.RoleAffiliate,
		ReferralCode:   &code,
		CommissionRate: s.cfg.Commission.DefaultRate,
		IsActive:       true,
		Phone:          phone,
	}
	if err := s.users.Create(u); err != nil {
		return nil, "", "", err
	}
	access, refresh, err := s.tokenPair(u)
	return u, access, refresh, err
}

// CreateAffiliateInput is the admin creation payload. CommissionRate falls
// back to the configured default when unset.
type CreateAffiliateInput struct {
	Name           string
	Email          string
	Password       string
	CommissionRate decimal.NullDecimal
	IsActive       bool
	Bio            string
	Phone          string
}

// CreateAffiliate is the admin path: same code issuance as self-signup, plus
// an immediately verified email, per-affiliate rate, and active flag.
func (s *AuthService) CreateAffiliate(in CreateAffiliateInput) (*models.User, error) {
	if _, err := s.users.GetByEmail(in.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	code, err := referralcode.Issue(s.users.ReferralCodeTaken)
	if err != nil {
		return nil, err
	}
	rate := s.cfg.Commission.DefaultRate
	if in.CommissionRate.Valid {
		rate = in.CommissionRate.Decimal
	}
	verifiedAt := time.Now()
	u := &models.User{
		Name:            in.Name,
		Email:           in.Email,
		PasswordHash:    string(hash),
		Role:            domain.RoleAffiliate,
		ReferralCode:    &code,
		CommissionRate:  rate,
		IsActive:        in.IsActive,
		Bio:             in.Bio,
		Phone:           in.Phone,
		EmailVerifiedAt: &verifiedAt,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, refresh, err := s.tokenPair(u)
	return u, access, refresh, err
}

// LoginWithGoogle finds the user by Google ID, links Google to an existing
// account by email, or creates a new affiliate. Returns isNew for the last
// case.
func (s *AuthService) LoginWithGoogle(googleID, email, name string) (*models.User, string, string, bool, error) {
	if u, err := s.users.GetByGoogleID(googleID); err == nil {
		access, refresh, err := s.tokenPair(u)
		return u, access, refresh, false, err
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", false, err
	}

	if existing, err := s.users.GetByEmail(email); err == nil {
		gid := googleID
		existing.GoogleID = &gid
		if err := s.users.Update(existing); err != nil {
			return nil, "", "", false, err
		}
		access, refresh, err := s.tokenPair(existing)
		return existing, access, refresh, false, err
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", false, err
	}

	code, err := referralcode.Issue(s.users.ReferralCodeTaken)
	if err != nil {
		return nil, "", "", false, err
	}
	gid := googleID
	verifiedAt := time.Now()
	u := &models.User{
		Name:            name,
		Email:           email,
		GoogleID:        &gid,
		Role:            domain.RoleAffiliate,
		ReferralCode:    &code,
		CommissionRate:  s.cfg.Commission.DefaultRate,
		IsActive:        true,
		EmailVerifiedAt: &verifiedAt,
	}
	if err := s.users.Create(u); err != nil {
		return nil, "", "", false, err
	}
	access, refresh, err := s.tokenPair(u)
	return u, access, refresh, true, err
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if u.PasswordHash == "" {
		return errors.New("account uses Google sign-in; set a password first")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.users.Update(u)
}

// RefreshToken exchanges a valid refresh token for a fresh pair.
func (s *AuthService) RefreshToken(refreshToken string) (access, refresh string, err error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	u, err := s.users.GetByID(userID)
	if err != nil {
		return "", "", err
	}
	return s.tokenPair(u)
}

func (s *AuthService) tokenPair(u *models.User) (string, string, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return access, "", err
	}
	return access, refresh, nil
}
