package repository

import (
	"afiliasi/internal/models"

	"gorm.io/gorm"
)

type ProgramRepository struct {
	db *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

func (r *ProgramRepository) Create(p *models.Program) error {
	return r.db.Create(p).Error
}

func (r *ProgramRepository) Update(p *models.Program) error {
	return r.db.Save(p).Error
}

func (r *ProgramRepository) Delete(p *models.Program) error {
	return r.db.Delete(p).Error
}

func (r *ProgramRepository) GetByID(id uint) (*models.Program, error) {
	var p models.Program
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &p, nil
}

// GetActiveByID returns the program only when it is active; inactive programs
// are invisible to the public surface.
func (r *ProgramRepository) GetActiveByID(id uint) (*models.Program, error) {
	var p models.Program
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&p).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &p, nil
}

// ListActive returns active programs with optional type filter and
// name/description search, newest first.
func (r *ProgramRepository) ListActive(programType, search string, page, limit int) ([]models.Program, int64, error) {
	q := r.db.Model(&models.Program{}).Where("is_active = ?", true)
	if programType != "" && programType != "all" {
		q = q.Where("type = ?", programType)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	var total int64
	q.Count(&total)
	var programs []models.Program
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&programs).Error
	return programs, total, err
}

// ListAll is the admin listing; it includes inactive programs.
func (r *ProgramRepository) ListAll(programType, search string, page, limit int) ([]models.Program, int64, error) {
	q := r.db.Model(&models.Program{})
	if programType != "" && programType != "all" {
		q = q.Where("type = ?", programType)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	var total int64
	q.Count(&total)
	var programs []models.Program
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&programs).Error
	return programs, total, err
}

// Related returns up to limit other active programs of the same type.
func (r *ProgramRepository) Related(programType string, excludeID uint, limit int) ([]models.Program, error) {
	var programs []models.Program
	err := r.db.Where("is_active = ? AND type = ? AND id != ?", true, programType, excludeID).
		Limit(limit).Find(&programs).Error
	return programs, err
}
