package repository

import (
	"time"

	"afiliasi/internal/models"

	"gorm.io/gorm"
)

type ClickRepository struct {
	db *gorm.DB
}

func NewClickRepository(db *gorm.DB) *ClickRepository {
	return &ClickRepository{db: db}
}

func (r *ClickRepository) Create(c *models.Click) error {
	return r.db.Create(c).Error
}

// RecentExists reports whether the affiliate already has a click from this IP
// since the given time. Used for the dedup window.
func (r *ClickRepository) RecentExists(affiliateID uint, ip string, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Click{}).
		Where("affiliate_id = ? AND ip_address = ? AND created_at > ?", affiliateID, ip, since).
		Count(&count).Error
	return count > 0, err
}

func (r *ClickRepository) CountByAffiliate(affiliateID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Click{}).Where("affiliate_id = ?", affiliateID).Count(&count).Error
	return count, err
}

func (r *ClickRepository) CountByAffiliateSince(affiliateID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Click{}).
		Where("affiliate_id = ? AND created_at >= ?", affiliateID, since).
		Count(&count).Error
	return count, err
}

func (r *ClickRepository) ListRecentByAffiliate(affiliateID uint, limit int) ([]models.Click, error) {
	var clicks []models.Click
	err := r.db.Where("affiliate_id = ?", affiliateID).
		Order("created_at DESC").Limit(limit).Find(&clicks).Error
	return clicks, err
}
