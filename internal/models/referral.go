package models

import (
	"time"

	"afiliasi/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Referral is one customer registration for a program, optionally attributed
// to an affiliate. Commission fields are snapshotted when the row is created
// and recomputed from current rates when an admin marks it completed.
type Referral struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	AffiliateID      *uint             `gorm:"index" json:"affiliate_id"` // nil for direct registrations
	ProgramID        uint              `gorm:"not null;index" json:"program_id"`
	CustomerName     string            `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail    string            `gorm:"size:255;not null" json:"customer_email"`
	CustomerPhone    string            `gorm:"size:20" json:"customer_phone"`
	Status           string            `gorm:"size:20;not null;default:'pending';index" json:"status"` // pending | completed | cancelled
	CommissionRate   decimal.Decimal   `gorm:"type:decimal(5,2);not null;default:0" json:"commission_rate"`
	CommissionAmount decimal.Decimal   `gorm:"type:decimal(15,2);not null;default:0" json:"commission_amount"`
	CompletedAt      *time.Time        `json:"completed_at"`
	Notes            string            `gorm:"type:text" json:"notes"`
	CustomerData     datatypes.JSONMap `json:"customer_data"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"-"`

	Affiliate *User    `gorm:"foreignKey:AffiliateID" json:"affiliate,omitempty"`
	Program   *Program `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

func (Referral) TableName() string { return "referrals" }

// CanComplete reports whether the referral may transition to completed.
func (r *Referral) CanComplete() bool { return r.Status == domain.ReferralStatusPending }

// CanCancel reports whether the referral may transition to cancelled.
// Completed referrals are terminal for commission purposes.
func (r *Referral) CanCancel() bool { return r.Status != domain.ReferralStatusCompleted }
