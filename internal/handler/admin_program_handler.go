package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"afiliasi/internal/models"
	"afiliasi/internal/repository"
	"afiliasi/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// AdminProgramHandler is the admin program CRUD, including Cloudinary image
// upload.
type AdminProgramHandler struct {
	programRepo *repository.ProgramRepository
	uploads     cloudinary.Client // nil when Cloudinary is not configured
}

func NewAdminProgramHandler(programRepo *repository.ProgramRepository, uploads cloudinary.Client) *AdminProgramHandler {
	return &AdminProgramHandler{programRepo: programRepo, uploads: uploads}
}

// List handles GET /admin/programs — includes inactive programs.
func (h *AdminProgramHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	programs, total, err := h.programRepo.ListAll(c.Query("type"), c.Query("search"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list programs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": programs, "total": total, "page": page, "limit": limit})
}

// Get handles GET /admin/programs/:id.
func (h *AdminProgramHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	program, err := h.programRepo.GetByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load program")
		return
	}
	c.JSON(http.StatusOK, program)
}

type ProgramRequest struct {
	Name           string   `json:"name" binding:"required,min=3,max=255"`
	Description    string   `json:"description"`
	Type           string   `json:"type" binding:"required,programtype"`
	Duration       string   `json:"duration" binding:"required,max=100"`
	Price          string   `json:"price" binding:"required"`
	CommissionRate *string  `json:"commission_rate"` // nil means use the affiliate's rate
	IsActive       *bool    `json:"is_active"`
	Features       []string `json:"features"`
}

func (r *ProgramRequest) apply(p *models.Program) (fieldErrs gin.H) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil || price.IsNegative() {
		return gin.H{"price": "must be a non-negative decimal"}
	}
	p.Name = r.Name
	p.Description = r.Description
	p.Type = r.Type
	p.Duration = r.Duration
	p.Price = price
	if r.CommissionRate != nil {
		rate, err := decimal.NewFromString(*r.CommissionRate)
		if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return gin.H{"commission_rate": "must be a decimal between 0 and 100"}
		}
		p.CommissionRate = decimal.NewNullDecimal(rate)
	} else {
		p.CommissionRate = decimal.NullDecimal{}
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	if r.Features != nil {
		if raw, err := json.Marshal(r.Features); err == nil {
			p.Features = datatypes.JSON(raw)
		}
	}
	return nil
}

// Create handles POST /admin/programs.
func (h *AdminProgramHandler) Create(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	program := &models.Program{IsActive: true}
	if fieldErrs := req.apply(program); fieldErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}
	if err := h.programRepo.Create(program); err != nil {
		log.Printf("[program] create failed: name=%s err=%v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, program)
}

// Update handles PUT /admin/programs/:id.
func (h *AdminProgramHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	program, err := h.programRepo.GetByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load program")
		return
	}
	if fieldErrs := req.apply(program); fieldErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}
	if err := h.programRepo.Update(program); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, program)
}

// Delete handles DELETE /admin/programs/:id — soft delete. Existing referrals
// keep their snapshots.
func (h *AdminProgramHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	program, err := h.programRepo.GetByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load program")
		return
	}
	if err := h.programRepo.Delete(program); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UploadImage handles POST /admin/programs/:id/image — multipart upload to
// Cloudinary, stores the delivered URL on the program.
func (h *AdminProgramHandler) UploadImage(c *gin.Context) {
	if h.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads not configured"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	program, err := h.programRepo.GetByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load program")
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image file"})
		return
	}
	defer file.Close()

	url, err := h.uploads.UploadImage(c.Request.Context(), file, "programs", uuid.New().String())
	if err != nil {
		log.Printf("[program] image upload failed: program=%d err=%v", program.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	program.ImageURL = url
	if err := h.programRepo.Update(program); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image url"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
