package repository

import (
	"afiliasi/internal/domain"
	"afiliasi/internal/models"
	"afiliasi/internal/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// WithAffiliateLock opens a transaction and takes a FOR UPDATE lock on the
// affiliate's user row. Concurrent payout creation and completion for the
// same affiliate serialize here, which closes the balance-check race: each
// caller re-reads the earnings/payout sums after acquiring the lock.
func (r *PayoutRepository) WithAffiliateLock(affiliateID uint, fn func(tx ports.PayoutStore) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var u models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND role = ?", affiliateID, domain.RoleAffiliate).
			First(&u).Error
		if err != nil {
			return translateNotFound(err)
		}
		return fn(&PayoutRepository{db: tx})
	})
}

// TotalEarnings is the commission sum over completed referrals.
func (r *PayoutRepository) TotalEarnings(affiliateID uint) (decimal.Decimal, error) {
	return r.sumReferrals(affiliateID, domain.ReferralStatusCompleted)
}

// PendingEarnings is the commission sum over pending referrals.
func (r *PayoutRepository) PendingEarnings(affiliateID uint) (decimal.Decimal, error) {
	return r.sumReferrals(affiliateID, domain.ReferralStatusPending)
}

// TotalPayouts counts only completed payouts; pending and processing payouts
// do not reduce the available balance.
func (r *PayoutRepository) TotalPayouts(affiliateID uint) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.Model(&models.Payout{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("affiliate_id = ? AND status = ?", affiliateID, domain.PayoutStatusCompleted).
		Scan(&row).Error
	return row.Total, err
}

func (r *PayoutRepository) sumReferrals(affiliateID uint, status string) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.Model(&models.Referral{}).
		Select("COALESCE(SUM(commission_amount), 0) AS total").
		Where("affiliate_id = ? AND status = ?", affiliateID, status).
		Scan(&row).Error
	return row.Total, err
}

func (r *PayoutRepository) Create(p *models.Payout) error {
	return r.db.Create(p).Error
}

func (r *PayoutRepository) GetByID(id uint) (*models.Payout, error) {
	var p models.Payout
	if err := r.db.Preload("Affiliate").First(&p, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &p, nil
}

func (r *PayoutRepository) Save(p *models.Payout) error {
	return r.db.Save(p).Error
}

func (r *PayoutRepository) Delete(p *models.Payout) error {
	return r.db.Delete(p).Error
}

// PayoutFilter narrows payout listings.
type PayoutFilter struct {
	Search      string // matches affiliate name or email
	Status      string
	AffiliateID uint
}

func (r *PayoutRepository) List(f PayoutFilter, page, limit int) ([]models.Payout, int64, error) {
	q := r.db.Model(&models.Payout{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Joins("JOIN users ON users.id = payouts.affiliate_id").
			Where("users.name LIKE ? OR users.email LIKE ?", like, like)
	}
	if f.Status != "" && f.Status != "all" {
		q = q.Where("payouts.status = ?", f.Status)
	}
	if f.AffiliateID != 0 {
		q = q.Where("payouts.affiliate_id = ?", f.AffiliateID)
	}
	var total int64
	q.Count(&total)
	var payouts []models.Payout
	err := q.Preload("Affiliate").
		Order("payouts.created_at DESC").Limit(limit).Offset((page - 1) * limit).
		Find(&payouts).Error
	return payouts, total, err
}

func (r *PayoutRepository) ListRecentByAffiliate(affiliateID uint, limit int) ([]models.Payout, error) {
	var payouts []models.Payout
	err := r.db.Where("affiliate_id = ?", affiliateID).
		Order("created_at DESC").Limit(limit).Find(&payouts).Error
	return payouts, err
}

func (r *PayoutRepository) ListRecent(limit int) ([]models.Payout, error) {
	var payouts []models.Payout
	err := r.db.Preload("Affiliate").Order("created_at DESC").Limit(limit).Find(&payouts).Error
	return payouts, err
}

// PendingAmount sums payouts awaiting processing for one affiliate.
func (r *PayoutRepository) PendingAmount(affiliateID uint) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.Model(&models.Payout{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("affiliate_id = ? AND status = ?", affiliateID, domain.PayoutStatusPending).
		Scan(&row).Error
	return row.Total, err
}
