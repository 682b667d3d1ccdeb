package repository

import (
	"errors"

	"afiliasi/internal/domain"
	"afiliasi/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(u *models.User) error {
	return r.db.Delete(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByGoogleID(googleID string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("google_id = ?", googleID).First(&u).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

// GetAffiliateByID is a role-scoped lookup: a user that exists but is not an
// affiliate still reports ErrNotFound.
func (r *UserRepository) GetAffiliateByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.Where("id = ? AND role = ?", id, domain.RoleAffiliate).First(&u).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

// GetActiveAffiliateByCode resolves a referral code to its active affiliate.
func (r *UserRepository) GetActiveAffiliateByCode(code string) (*models.User, error) {
	var u models.User
	err := r.db.Where("referral_code = ? AND role = ? AND is_active = ?", code, domain.RoleAffiliate, true).
		First(&u).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

// ReferralCodeTaken reports whether any user already holds the code.
func (r *UserRepository) ReferralCodeTaken(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error
	return count > 0, err
}

// ListAffiliates returns affiliates matching the search term (name, email or
// referral code) and active filter, newest first.
func (r *UserRepository) ListAffiliates(search, status string, page, limit int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{}).Where("role = ?", domain.RoleAffiliate)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR referral_code LIKE ?", like, like, like)
	}
	switch status {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	}
	var total int64
	q.Count(&total)
	var users []models.User
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
