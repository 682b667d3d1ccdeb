package models

import (
	"time"

	"afiliasi/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payout is one disbursement of accrued commission to an affiliate.
type Payout struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	AffiliateID    uint              `gorm:"not null;index" json:"affiliate_id"`
	Amount         decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status         string            `gorm:"size:20;not null;default:'pending';index" json:"status"` // pending | processing | completed | cancelled
	Method         string            `gorm:"size:20;not null" json:"method"`                         // bank_transfer | paypal | e_wallet | crypto
	PaymentDetails datatypes.JSONMap `json:"payment_details"`
	TransactionID  string            `gorm:"size:255" json:"transaction_id"`
	Notes          string            `gorm:"type:text" json:"notes"`
	ProcessedAt    *time.Time        `json:"processed_at"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`

	Affiliate *User `gorm:"foreignKey:AffiliateID" json:"affiliate,omitempty"`
}

func (Payout) TableName() string { return "payouts" }

// CanTransitionTo validates the payout state graph. Completed and cancelled
// are terminal; re-entering the current state is allowed so that admins can
// edit notes or payment details without a status change.
func (p *Payout) CanTransitionTo(next string) bool {
	if next == p.Status {
		return p.Status != domain.PayoutStatusCompleted && p.Status != domain.PayoutStatusCancelled
	}
	switch p.Status {
	case domain.PayoutStatusPending:
		return next == domain.PayoutStatusProcessing ||
			next == domain.PayoutStatusCompleted ||
			next == domain.PayoutStatusCancelled
	case domain.PayoutStatusProcessing:
		return next == domain.PayoutStatusCompleted || next == domain.PayoutStatusCancelled
	default:
		return false
	}
}

// CanDelete reports whether the payout may be deleted. A completed payout
// represents money already sent and must be kept.
func (p *Payout) CanDelete() bool { return p.Status != domain.PayoutStatusCompleted }
