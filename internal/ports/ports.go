// Package ports declares the narrow persistence interfaces the service layer
// depends on. The GORM repositories implement them; tests substitute
// in-memory fakes.
package ports

import (
	"time"

	"afiliasi/internal/models"

	"github.com/shopspring/decimal"
)

type UserStore interface {
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByGoogleID(googleID string) (*models.User, error)
	GetAffiliateByID(id uint) (*models.User, error)
	GetActiveAffiliateByCode(code string) (*models.User, error)
	ReferralCodeTaken(code string) (bool, error)
	Create(u *models.User) error
	Update(u *models.User) error
}

type ClickStore interface {
	RecentExists(affiliateID uint, ip string, since time.Time) (bool, error)
	Create(c *models.Click) error
}

type ReferralStore interface {
	Create(r *models.Referral) error
	GetByID(id uint) (*models.Referral, error)
	// UpdateLocked loads the referral with its program and affiliate inside a
	// transaction holding the row lock, applies fn, and persists the result
	// when fn succeeds.
	UpdateLocked(id uint, fn func(r *models.Referral) error) (*models.Referral, error)
}

type PayoutStore interface {
	// WithAffiliateLock runs fn inside a transaction that holds a row lock on
	// the affiliate, serializing balance checks and payout writes for that
	// affiliate. fn receives a store bound to the transaction.
	WithAffiliateLock(affiliateID uint, fn func(tx PayoutStore) error) error

	TotalEarnings(affiliateID uint) (decimal.Decimal, error)
	PendingEarnings(affiliateID uint) (decimal.Decimal, error)
	TotalPayouts(affiliateID uint) (decimal.Decimal, error)

	Create(p *models.Payout) error
	GetByID(id uint) (*models.Payout, error)
	Save(p *models.Payout) error
	Delete(p *models.Payout) error
}
