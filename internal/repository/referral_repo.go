package repository

import (
	"afiliasi/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) Create(ref *models.Referral) error {
	return r.db.Create(ref).Error
}

func (r *ReferralRepository) GetByID(id uint) (*models.Referral, error) {
	var ref models.Referral
	err := r.db.Preload("Affiliate").Preload("Program").First(&ref, id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &ref, nil
}

// UpdateLocked applies fn to the referral under a row lock so two concurrent
// status updates cannot both pass the transition check.
func (r *ReferralRepository) UpdateLocked(id uint, fn func(ref *models.Referral) error) (*models.Referral, error) {
	var ref models.Referral
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ref, id).Error; err != nil {
			return translateNotFound(err)
		}
		if err := tx.Preload("Affiliate").Preload("Program").First(&ref, id).Error; err != nil {
			return translateNotFound(err)
		}
		if err := fn(&ref); err != nil {
			return err
		}
		return tx.Save(&ref).Error
	})
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// ReferralFilter narrows admin and affiliate referral listings.
type ReferralFilter struct {
	Search      string
	Status      string
	AffiliateID uint
	ProgramID   uint
}

// List returns referrals with affiliate and program preloaded, newest first.
// Search matches customer name/email and the affiliate or program name.
func (r *ReferralRepository) List(f ReferralFilter, page, limit int) ([]models.Referral, int64, error) {
	q := r.db.Model(&models.Referral{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Joins("LEFT JOIN users ON users.id = referrals.affiliate_id").
			Joins("LEFT JOIN programs ON programs.id = referrals.program_id").
			Where("referrals.customer_name LIKE ? OR referrals.customer_email LIKE ? OR users.name LIKE ? OR programs.name LIKE ?",
				like, like, like, like)
	}
	if f.Status != "" && f.Status != "all" {
		q = q.Where("referrals.status = ?", f.Status)
	}
	if f.AffiliateID != 0 {
		q = q.Where("referrals.affiliate_id = ?", f.AffiliateID)
	}
	if f.ProgramID != 0 {
		q = q.Where("referrals.program_id = ?", f.ProgramID)
	}
	var total int64
	q.Count(&total)
	var referrals []models.Referral
	err := q.Preload("Affiliate").Preload("Program").
		Order("referrals.created_at DESC").Limit(limit).Offset((page - 1) * limit).
		Find(&referrals).Error
	return referrals, total, err
}

func (r *ReferralRepository) ListRecentByAffiliate(affiliateID uint, limit int) ([]models.Referral, error) {
	var referrals []models.Referral
	err := r.db.Where("affiliate_id = ?", affiliateID).
		Preload("Program").Order("created_at DESC").Limit(limit).
		Find(&referrals).Error
	return referrals, err
}

func (r *ReferralRepository) ListRecent(limit int) ([]models.Referral, error) {
	var referrals []models.Referral
	err := r.db.Preload("Affiliate").Preload("Program").
		Order("created_at DESC").Limit(limit).Find(&referrals).Error
	return referrals, err
}

func (r *ReferralRepository) CountByAffiliate(affiliateID uint, status string) (int64, error) {
	q := r.db.Model(&models.Referral{}).Where("affiliate_id = ?", affiliateID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}
