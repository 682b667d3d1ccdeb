package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"afiliasi/internal/repository"
	"afiliasi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminHandler covers the admin dashboard and affiliate management.
type AdminHandler struct {
	authSvc      *service.AuthService
	userRepo     *repository.UserRepository
	referralRepo *repository.ReferralRepository
	payoutRepo   *repository.PayoutRepository
	clickRepo    *repository.ClickRepository
	statsRepo    *repository.StatsRepository
}

func NewAdminHandler(
	authSvc *service.AuthService,
	userRepo *repository.UserRepository,
	referralRepo *repository.ReferralRepository,
	payoutRepo *repository.PayoutRepository,
	clickRepo *repository.ClickRepository,
	statsRepo *repository.StatsRepository,
) *AdminHandler {
	return &AdminHandler{
		authSvc:      authSvc,
		userRepo:     userRepo,
		referralRepo: referralRepo,
		payoutRepo:   payoutRepo,
		clickRepo:    clickRepo,
		statsRepo:    statsRepo,
	}
}

// Dashboard handles GET /admin/dashboard — overview stats plus recent
// referrals and payouts and the affiliate leaderboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsRepo.Dashboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	recentReferrals, _ := h.referralRepo.ListRecent(5)
	recentPayouts, _ := h.payoutRepo.ListRecent(5)
	topAffiliates, _ := h.statsRepo.TopAffiliates(5)
	c.JSON(http.StatusOK, gin.H{
		"stats":            stats,
		"recent_referrals": recentReferrals,
		"recent_payouts":   recentPayouts,
		"top_affiliates":   topAffiliates,
	})
}

// ClicksByDay handles GET /admin/stats/clicks?days=30.
func (h *AdminHandler) ClicksByDay(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}
	points, err := h.statsRepo.ClicksByDay(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": points, "days": days})
}

// ListAffiliates handles GET /admin/affiliates.
func (h *AdminHandler) ListAffiliates(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := h.userRepo.ListAffiliates(c.Query("search"), c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list affiliates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page, "limit": limit})
}

type CreateAffiliateRequest struct {
	Name           string  `json:"name" binding:"required,min=3,max=255"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	CommissionRate *string `json:"commission_rate"` // decimal string, default applies when omitted
	IsActive       *bool   `json:"is_active"`
	Bio            string  `json:"bio" binding:"max=2000"`
	Phone          string  `json:"phone" binding:"max=20"`
}

// CreateAffiliate handles POST /admin/affiliates.
func (h *AdminHandler) CreateAffiliate(c *gin.Context) {
	var req CreateAffiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.CreateAffiliateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsActive: true,
		Bio:      req.Bio,
		Phone:    req.Phone,
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
	if req.CommissionRate != nil {
		rate, err := decimal.NewFromString(*req.CommissionRate)
		if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"commission_rate": "must be a decimal between 0 and 100"}})
			return
		}
		in.CommissionRate = decimal.NewNullDecimal(rate)
	}
	u, err := h.authSvc.CreateAffiliate(in)
	if err != nil {
		if err == service.ErrEmailExists {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[admin] create affiliate failed: email=%s err=%v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// GetAffiliate handles GET /admin/affiliates/:id — profile, stats and recent
// activity.
func (h *AdminHandler) GetAffiliate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := h.userRepo.GetAffiliateByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load affiliate")
		return
	}
	stats, _ := h.statsRepo.ForAffiliate(id, time.Now())
	recentReferrals, _ := h.referralRepo.ListRecentByAffiliate(id, 10)
	recentPayouts, _ := h.payoutRepo.ListRecentByAffiliate(id, 10)
	recentClicks, _ := h.clickRepo.ListRecentByAffiliate(id, 10)
	c.JSON(http.StatusOK, gin.H{
		"affiliate":        u,
		"stats":            stats,
		"recent_referrals": recentReferrals,
		"recent_payouts":   recentPayouts,
		"recent_clicks":    recentClicks,
	})
}

type UpdateAffiliateRequest struct {
	Name           string  `json:"name" binding:"omitempty,min=3,max=255"`
	Email          string  `json:"email" binding:"omitempty,email"`
	CommissionRate *string `json:"commission_rate"`
	IsActive       *bool   `json:"is_active"`
	Bio            *string `json:"bio"`
	Phone          *string `json:"phone"`
}

// UpdateAffiliate handles PUT /admin/affiliates/:id. The referral code is
// never editable.
func (h *AdminHandler) UpdateAffiliate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateAffiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.userRepo.GetAffiliateByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load affiliate")
		return
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" && req.Email != u.Email {
		if _, err := h.userRepo.GetByEmail(req.Email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		u.Email = req.Email
	}
	if req.CommissionRate != nil {
		rate, err := decimal.NewFromString(*req.CommissionRate)
		if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"commission_rate": "must be a decimal between 0 and 100"}})
			return
		}
		u.CommissionRate = rate
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteAffiliate handles DELETE /admin/affiliates/:id — soft delete; the
// affiliate's referrals and payouts are kept for bookkeeping.
func (h *AdminHandler) DeleteAffiliate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := h.userRepo.GetAffiliateByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load affiliate")
		return
	}
	if err := h.userRepo.Delete(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
