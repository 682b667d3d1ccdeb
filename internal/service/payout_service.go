package service

import (
	"time"

	"afiliasi/internal/domain"
	"afiliasi/internal/models"
	"afiliasi/internal/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PayoutService issues and settles payouts. Every mutation runs under the
// affiliate row lock so the balance check and the write are atomic with
// respect to concurrent payout requests for the same affiliate.
type PayoutService struct {
	payouts   ports.PayoutStore
	minPayout decimal.Decimal
	now       func() time.Time
	newTxnID  func() string
}

func NewPayoutService(payouts ports.PayoutStore, minPayout decimal.Decimal) *PayoutService {
	return &PayoutService{
		payouts:   payouts,
		minPayout: minPayout,
		now:       time.Now,
		newTxnID:  func() string { return uuid.New().String() },
	}
}

type CreatePayoutInput struct {
	AffiliateID    uint
	Amount         decimal.Decimal
	Method         string
	PaymentDetails map[string]interface{}
	Notes          string
}

// Create checks the affiliate's available balance and inserts a pending
// payout. The check and insert share one transaction; a concurrent create
// for the same affiliate waits on the row lock and then sees this payout's
// effect on the sums.
func (s *PayoutService) Create(in CreatePayoutInput) (*models.Payout, error) {
	if in.Amount.LessThan(s.minPayout) {
		return nil, domain.ErrBelowMinPayout
	}
	var created *models.Payout
	err := s.payouts.WithAffiliateLock(in.AffiliateID, func(tx ports.PayoutStore) error {
		earnings, err := tx.TotalEarnings(in.AffiliateID)
		if err != nil {
			return err
		}
		paid, err := tx.TotalPayouts(in.AffiliateID)
		if err != nil {
			return err
		}
		if in.Amount.GreaterThan(earnings.Sub(paid)) {
			return domain.ErrInsufficientBalance
		}
		created = &models.Payout{
			AffiliateID:    in.AffiliateID,
			Amount:         in.Amount,
			Status:         domain.PayoutStatusPending,
			Method:         in.Method,
			PaymentDetails: datatypes.JSONMap(in.PaymentDetails),
			Notes:          in.Notes,
		}
		return tx.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus moves a payout through its state graph. Entering completed
// stamps ProcessedAt exactly once and assigns a transaction id (generated
// when the caller supplies none); completed and cancelled are terminal.
func (s *PayoutService) UpdateStatus(id uint, status, transactionID, notes string) (*models.Payout, error) {
	p, err := s.payouts.GetByID(id)
	if err != nil {
		return nil, err
	}
	var updated *models.Payout
	err = s.payouts.WithAffiliateLock(p.AffiliateID, func(tx ports.PayoutStore) error {
		cur, err := tx.GetByID(id)
		if err != nil {
			return err
		}
		if !cur.CanTransitionTo(status) {
			return domain.ErrInvalidTransition
		}
		if status == domain.PayoutStatusCompleted {
			processedAt := s.now()
			cur.ProcessedAt = &processedAt
			if transactionID == "" {
				transactionID = s.newTxnID()
			}
		}
		if transactionID != "" {
			cur.TransactionID = transactionID
		}
		cur.Status = status
		if notes != "" {
			cur.Notes = notes
		}
		updated = cur
		return tx.Save(cur)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a payout unless it is completed.
func (s *PayoutService) Delete(id uint) error {
	p, err := s.payouts.GetByID(id)
	if err != nil {
		return err
	}
	return s.payouts.WithAffiliateLock(p.AffiliateID, func(tx ports.PayoutStore) error {
		cur, err := tx.GetByID(id)
		if err != nil {
			return err
		}
		if !cur.CanDelete() {
			return domain.ErrInvalidTransition
		}
		return tx.Delete(cur)
	})
}

// Balance is the money view of one affiliate, recomputed from the referral
// and payout aggregates.
type Balance struct {
	TotalEarnings    decimal.Decimal `json:"total_earnings"`
	PendingEarnings  decimal.Decimal `json:"pending_earnings"`
	TotalPayouts     decimal.Decimal `json:"total_payouts"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
}

func (s *PayoutService) Balance(affiliateID uint) (*Balance, error) {
	earnings, err := s.payouts.TotalEarnings(affiliateID)
	if err != nil {
		return nil, err
	}
	pending, err := s.payouts.PendingEarnings(affiliateID)
	if err != nil {
		return nil, err
	}
	paid, err := s.payouts.TotalPayouts(affiliateID)
	if err != nil {
		return nil, err
	}
	return &Balance{
		TotalEarnings:    earnings,
		PendingEarnings:  pending,
		TotalPayouts:     paid,
		AvailableBalance: earnings.Sub(paid),
	}, nil
}
