package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Program is a purchasable course offering. CommissionRate, when set,
// overrides the affiliate's own rate for referrals against this program.
type Program struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	Name           string              `gorm:"size:255;not null" json:"name"`
	Description    string              `gorm:"type:text" json:"description"`
	Type           string              `gorm:"size:20;not null;index" json:"type"` // online | offline | rombongan | cabang
	Duration       string              `gorm:"size:100;not null" json:"duration"`
	Price          decimal.Decimal     `gorm:"type:decimal(15,2);not null" json:"price"`
	CommissionRate decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"commission_rate"`
	IsActive       bool                `gorm:"not null;default:true;index" json:"is_active"`
	Features       datatypes.JSON      `json:"features"`
	ImageURL       string              `gorm:"size:512" json:"image_url"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (Program) TableName() string { return "programs" }

// EffectiveCommissionRate returns the program's own rate when set, otherwise
// the given affiliate rate.
func (p *Program) EffectiveCommissionRate(affiliateRate decimal.Decimal) decimal.Decimal {
	if p.CommissionRate.Valid {
		return p.CommissionRate.Decimal
	}
	return affiliateRate
}

// CommissionFor computes price × rate / 100 rounded to two decimal places.
func (p *Program) CommissionFor(rate decimal.Decimal) decimal.Decimal {
	return p.Price.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}
