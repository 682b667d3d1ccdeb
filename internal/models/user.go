package models

import (
	"time"

	"afiliasi/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Email           string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash    string          `gorm:"size:255" json:"-"`
	Role            string          `gorm:"size:20;not null;index" json:"role"` // admin | affiliate
	ReferralCode    *string         `gorm:"uniqueIndex;size:20" json:"referral_code"`
	CommissionRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:10.00" json:"commission_rate"`
	IsActive        bool            `gorm:"not null;default:true;index" json:"is_active"`
	Bio             string          `gorm:"type:text" json:"bio"`
	Phone           string          `gorm:"size:20" json:"phone"`
	GoogleID        *string         `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	EmailVerifiedAt *time.Time      `json:"email_verified_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool     { return u.Role == domain.RoleAdmin }
func (u *User) IsAffiliate() bool { return u.Role == domain.RoleAffiliate }
