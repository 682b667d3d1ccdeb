package handler

import (
	"log"
	"net/http"

	"afiliasi/internal/models"
	"afiliasi/internal/repository"
	"afiliasi/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgramHandler is the public catalog surface: program listing and detail
// with referral click tracking, and the customer registration endpoint.
type ProgramHandler struct {
	programRepo *repository.ProgramRepository
	userRepo    *repository.UserRepository
	trackingSvc *service.TrackingService
	referralSvc *service.ReferralService
}

func NewProgramHandler(
	programRepo *repository.ProgramRepository,
	userRepo *repository.UserRepository,
	trackingSvc *service.TrackingService,
	referralSvc *service.ReferralService,
) *ProgramHandler {
	return &ProgramHandler{
		programRepo: programRepo,
		userRepo:    userRepo,
		trackingSvc: trackingSvc,
		referralSvc: referralSvc,
	}
}

// resolveAffiliate maps a ?ref= code to its active affiliate. A missing,
// unknown or deactivated code is simply an unattributed visit.
func (h *ProgramHandler) resolveAffiliate(code string) *models.User {
	if code == "" {
		return nil
	}
	u, err := h.userRepo.GetActiveAffiliateByCode(code)
	if err != nil {
		return nil
	}
	return u
}

func (h *ProgramHandler) trackVisit(c *gin.Context, affiliate *models.User, program *models.Program) {
	if affiliate == nil {
		return
	}
	err := h.trackingSvc.TrackClick(affiliate, program, service.ClickInput{
		IP:          c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		ReferrerURL: c.Request.Referer(),
		LandingPage: c.Request.URL.RequestURI(),
		UTMSource:   c.Query("utm_source"),
		UTMMedium:   c.Query("utm_medium"),
		UTMCampaign: c.Query("utm_campaign"),
	})
	if err != nil {
		// Tracking must never break the page.
		log.Printf("[tracking] click insert failed: affiliate=%d err=%v", affiliate.ID, err)
	}
}

// List handles GET /programs — active programs, optional type filter and
// search. A valid ref code records a catalog-level click.
func (h *ProgramHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	programs, total, err := h.programRepo.ListActive(c.Query("type"), c.Query("search"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list programs"})
		return
	}
	h.trackVisit(c, h.resolveAffiliate(c.Query("ref")), nil)
	c.JSON(http.StatusOK, gin.H{"data": programs, "total": total, "page": page, "limit": limit})
}

// Get handles GET /programs/:id — active program detail with related
// programs. A valid ref code records a program-attributed click.
func (h *ProgramHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	program, err := h.programRepo.GetActiveByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load program")
		return
	}
	h.trackVisit(c, h.resolveAffiliate(c.Query("ref")), program)
	related, _ := h.programRepo.Related(program.Type, program.ID, 3)
	c.JSON(http.StatusOK, gin.H{"program": program, "related": related})
}

type CustomerRegistrationRequest struct {
	Name               string `json:"name" binding:"required,min=3,max=255"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone" binding:"required,max=20"`
	Address            string `json:"address"`
	Age                int    `json:"age" binding:"omitempty,min=5,max=100"`
	Motivation         string `json:"motivation"`
	LearningGoals      string `json:"learning_goals"`
	PreviousExperience string `json:"previous_experience"`
	ReferralCode       string `json:"referral_code"`
}

// RegisterCustomer handles POST /programs/:id/register — creates a referral
// for the program, attributed to the referral code's affiliate when valid.
func (h *ProgramHandler) RegisterCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CustomerRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	program, err := h.programRepo.GetActiveByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load program")
		return
	}
	affiliate := h.resolveAffiliate(req.ReferralCode)
	ref, err := h.referralSvc.CreateFromRegistration(program, affiliate, service.RegistrationInput{
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		CustomerPhone: req.Phone,
		CustomerData: map[string]interface{}{
			"address":             req.Address,
			"age":                 req.Age,
			"motivation":          req.Motivation,
			"learning_goals":      req.LearningGoals,
			"previous_experience": req.PreviousExperience,
		},
	})
	if err != nil {
		log.Printf("[referral] registration failed: program=%d err=%v", program.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"referral": ref})
}
