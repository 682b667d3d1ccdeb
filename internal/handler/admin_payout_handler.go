package handler

import (
	"net/http"
	"strconv"

	"afiliasi/internal/repository"
	"afiliasi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminPayoutHandler manages payouts end to end: creation against the
// affiliate's balance, status transitions, deletion.
type AdminPayoutHandler struct {
	payoutRepo *repository.PayoutRepository
	userRepo   *repository.UserRepository
	payoutSvc  *service.PayoutService
}

func NewAdminPayoutHandler(payoutRepo *repository.PayoutRepository, userRepo *repository.UserRepository, payoutSvc *service.PayoutService) *AdminPayoutHandler {
	return &AdminPayoutHandler{payoutRepo: payoutRepo, userRepo: userRepo, payoutSvc: payoutSvc}
}

// List handles GET /admin/payouts.
func (h *AdminPayoutHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	affiliateID, _ := strconv.ParseUint(c.Query("affiliate_id"), 10, 64)
	payouts, total, err := h.payoutRepo.List(repository.PayoutFilter{
		Search:      c.Query("search"),
		Status:      c.Query("status"),
		AffiliateID: uint(affiliateID),
	}, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payouts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payouts, "total": total, "page": page, "limit": limit})
}

// Get handles GET /admin/payouts/:id.
func (h *AdminPayoutHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.payoutRepo.GetByID(id)
	if err != nil {
		writeDomainError(c, err, "failed to load payout")
		return
	}
	c.JSON(http.StatusOK, p)
}

type CreatePayoutRequest struct {
	AffiliateID    uint                   `json:"affiliate_id" binding:"required"`
	Amount         string                 `json:"amount" binding:"required"`
	Method         string                 `json:"method" binding:"required,payoutmethod"`
	PaymentDetails map[string]interface{} `json:"payment_details"`
	Notes          string                 `json:"notes" binding:"max=2000"`
}

// Create handles POST /admin/payouts. The affiliate must exist; the amount is
// checked against the available balance inside the locking transaction.
func (h *AdminPayoutHandler) Create(c *gin.Context) {
	var req CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"amount": "must be a positive decimal"}})
		return
	}
	if _, err := h.userRepo.GetAffiliateByID(req.AffiliateID); err != nil {
		writeDomainError(c, err, "failed to load affiliate")
		return
	}
	p, err := h.payoutSvc.Create(service.CreatePayoutInput{
		AffiliateID:    req.AffiliateID,
		Amount:         amount,
		Method:         req.Method,
		PaymentDetails: req.PaymentDetails,
		Notes:          req.Notes,
	})
	if err != nil {
		writeDomainError(c, err, "payout creation failed")
		return
	}
	c.JSON(http.StatusCreated, p)
}

type UpdatePayoutStatusRequest struct {
	Status        string `json:"status" binding:"required,payoutstatus"`
	TransactionID string `json:"transaction_id" binding:"max=255"`
	Notes         string `json:"notes" binding:"max=2000"`
}

// UpdateStatus handles PATCH /admin/payouts/:id/status.
func (h *AdminPayoutHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdatePayoutStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.payoutSvc.UpdateStatus(id, req.Status, req.TransactionID, req.Notes)
	if err != nil {
		writeDomainError(c, err, "status update failed")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /admin/payouts/:id. Completed payouts cannot be
// removed.
func (h *AdminPayoutHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.payoutSvc.Delete(id); err != nil {
		writeDomainError(c, err, "delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Balance handles GET /admin/affiliates/:id/balance — money view used before
// creating a payout.
func (h *AdminPayoutHandler) Balance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.userRepo.GetAffiliateByID(id); err != nil {
		writeDomainError(c, err, "failed to load affiliate")
		return
	}
	b, err := h.payoutSvc.Balance(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute balance"})
		return
	}
	c.JSON(http.StatusOK, b)
}
