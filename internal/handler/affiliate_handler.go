package handler

import (
	"fmt"
	"net/http"
	"time"

	"afiliasi/config"
	"afiliasi/internal/middleware"
	"afiliasi/internal/repository"
	"afiliasi/internal/service"

	"github.com/gin-gonic/gin"
)

// AffiliateHandler is the authenticated affiliate portal.
type AffiliateHandler struct {
	cfg          *config.Config
	userRepo     *repository.UserRepository
	programRepo  *repository.ProgramRepository
	referralRepo *repository.ReferralRepository
	payoutRepo   *repository.PayoutRepository
	clickRepo    *repository.ClickRepository
	statsRepo    *repository.StatsRepository
	payoutSvc    *service.PayoutService
}

func NewAffiliateHandler(
	cfg *config.Config,
	userRepo *repository.UserRepository,
	programRepo *repository.ProgramRepository,
	referralRepo *repository.ReferralRepository,
	payoutRepo *repository.PayoutRepository,
	clickRepo *repository.ClickRepository,
	statsRepo *repository.StatsRepository,
	payoutSvc *service.PayoutService,
) *AffiliateHandler {
	return &AffiliateHandler{
		cfg:          cfg,
		userRepo:     userRepo,
		programRepo:  programRepo,
		referralRepo: referralRepo,
		payoutRepo:   payoutRepo,
		clickRepo:    clickRepo,
		statsRepo:    statsRepo,
		payoutSvc:    payoutSvc,
	}
}

// Dashboard handles GET /affiliate/dashboard — stats plus recent activity.
func (h *AffiliateHandler) Dashboard(c *gin.Context) {
	affiliateID := middleware.GetUserID(c)
	stats, err := h.statsRepo.ForAffiliate(affiliateID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	recentReferrals, _ := h.referralRepo.ListRecentByAffiliate(affiliateID, 5)
	recentPayouts, _ := h.payoutRepo.ListRecentByAffiliate(affiliateID, 5)
	recentClicks, _ := h.clickRepo.ListRecentByAffiliate(affiliateID, 10)
	c.JSON(http.StatusOK, gin.H{
		"stats":            stats,
		"recent_referrals": recentReferrals,
		"recent_payouts":   recentPayouts,
		"recent_clicks":    recentClicks,
	})
}

// Referrals handles GET /affiliate/referrals — own rows only.
func (h *AffiliateHandler) Referrals(c *gin.Context) {
	page, limit := parsePagination(c)
	referrals, total, err := h.referralRepo.List(repository.ReferralFilter{
		Search:      c.Query("search"),
		Status:      c.Query("status"),
		AffiliateID: middleware.GetUserID(c),
	}, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list referrals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": referrals, "total": total, "page": page, "limit": limit})
}

// Payouts handles GET /affiliate/payouts — own payouts plus balance.
func (h *AffiliateHandler) Payouts(c *gin.Context) {
	affiliateID := middleware.GetUserID(c)
	page, limit := parsePagination(c)
	payouts, total, err := h.payoutRepo.List(repository.PayoutFilter{
		Status:      c.Query("status"),
		AffiliateID: affiliateID,
	}, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payouts"})
		return
	}
	balance, err := h.payoutSvc.Balance(affiliateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute balance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":    payouts,
		"total":   total,
		"page":    page,
		"limit":   limit,
		"balance": balance,
	})
}

// Links handles GET /affiliate/links — the shareable marketing URLs.
func (h *AffiliateHandler) Links(c *gin.Context) {
	u, err := h.userRepo.GetAffiliateByID(middleware.GetUserID(c))
	if err != nil {
		writeDomainError(c, err, "failed to load profile")
		return
	}
	if u.ReferralCode == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no referral code on account"})
		return
	}
	code := *u.ReferralCode
	base := h.cfg.Server.BaseURL

	programs, _, err := h.programRepo.ListActive("", "", 1, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list programs"})
		return
	}
	programLinks := make([]gin.H, 0, len(programs))
	for _, p := range programs {
		programLinks = append(programLinks, gin.H{
			"program_id":   p.ID,
			"program_name": p.Name,
			"url":          fmt.Sprintf("%s/programs/%d?ref=%s", base, p.ID, code),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"referral_code": code,
		"referral_link": fmt.Sprintf("%s/register?ref=%s", base, code),
		"program_links": programLinks,
	})
}

// Profile handles GET /affiliate/profile.
func (h *AffiliateHandler) Profile(c *gin.Context) {
	u, err := h.userRepo.GetAffiliateByID(middleware.GetUserID(c))
	if err != nil {
		writeDomainError(c, err, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, u)
}

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,min=3,max=255"`
	Bio   string `json:"bio" binding:"max=2000"`
	Phone string `json:"phone" binding:"max=20"`
}

// UpdateProfile handles PUT /affiliate/profile. Email, role, referral code
// and commission rate are not editable here.
func (h *AffiliateHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.userRepo.GetAffiliateByID(middleware.GetUserID(c))
	if err != nil {
		writeDomainError(c, err, "failed to load profile")
		return
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	u.Bio = req.Bio
	u.Phone = req.Phone
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}
