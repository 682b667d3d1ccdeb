package handler

import (
	"net/http"
	"strconv"

	"afiliasi/internal/repository"
	"afiliasi/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminReferralHandler lists referrals and drives their status transitions.
type AdminReferralHandler struct {
	referralRepo *repository.ReferralRepository
	referralSvc  *service.ReferralService
}

func NewAdminReferralHandler(referralRepo *repository.ReferralRepository, referralSvc *service.ReferralService) *AdminReferralHandler {
	return &AdminReferralHandler{referralRepo: referralRepo, referralSvc: referralSvc}
}

// List handles GET /admin/referrals.
func (h *AdminReferralHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	affiliateID, _ := strconv.ParseUint(c.Query("affiliate_id"), 10, 64)
	programID, _ := strconv.ParseUint(c.Query("program_id"), 10, 64)
	referrals, total, err := h.referralRepo.List(repository.ReferralFilter{
		Search:      c.Query("search"),
		Status:      c.Query("status"),
		AffiliateID: uint(affiliateID),
		ProgramID:   uint(programID),
	}, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list referrals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": referrals, "total": total, "page": page, "limit": limit})
}

// Get handles GET /admin/referrals/:id.
func (h *AdminReferralHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ref, err := h.referralRepo.GetByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load referral")
		return
	}
	c.JSON(http.StatusOK, ref)
}

type UpdateReferralStatusRequest struct {
	Status string `json:"status" binding:"required,referralstatus"`
	Notes  string `json:"notes" binding:"max=2000"`
}

// UpdateStatus handles PATCH /admin/referrals/:id/status. Completing
// recomputes the commission from current rates; an impossible transition is a
// 409.
func (h *AdminReferralHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateReferralStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, err := h.referralSvc.UpdateStatus(id, req.Status, req.Notes)
	if err != nil {
		writeDomainError(c, err, "status update failed")
		return
	}
	c.JSON(http.StatusOK, ref)
}
