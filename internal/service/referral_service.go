package service

import (
	"time"

	"afiliasi/internal/domain"
	"afiliasi/internal/models"
	"afiliasi/internal/ports"

	"gorm.io/datatypes"
)

// ReferralService creates referrals with a commission snapshot and drives
// their status transitions.
type ReferralService struct {
	referrals ports.ReferralStore
	now       func() time.Time
}

func NewReferralService(referrals ports.ReferralStore) *ReferralService {
	return &ReferralService{referrals: referrals, now: time.Now}
}

// RegistrationInput is the customer-facing registration payload.
type RegistrationInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CustomerData  map[string]interface{}
}

// CreateFromRegistration records a customer registration for the program.
// When an affiliate is attributed, the commission rate and amount are
// snapshotted from the effective rate at this moment; a direct registration
// keeps both at zero.
func (s *ReferralService) CreateFromRegistration(program *models.Program, affiliate *models.User, in RegistrationInput) (*models.Referral, error) {
	ref := &models.Referral{
		ProgramID:     program.ID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		Status:        domain.ReferralStatusPending,
		CustomerData:  datatypes.JSONMap(in.CustomerData),
	}
	if affiliate != nil {
		rate := program.EffectiveCommissionRate(affiliate.CommissionRate)
		ref.AffiliateID = &affiliate.ID
		ref.CommissionRate = rate
		ref.CommissionAmount = program.CommissionFor(rate)
	}
	if err := s.referrals.Create(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// UpdateStatus applies one transition of the referral state machine under a
// row lock. Disallowed transitions return ErrInvalidTransition and write
// nothing. Passing the current pending status updates notes only.
func (s *ReferralService) UpdateStatus(id uint, status, notes string) (*models.Referral, error) {
	return s.referrals.UpdateLocked(id, func(ref *models.Referral) error {
		switch status {
		case domain.ReferralStatusCompleted:
			if !ref.CanComplete() {
				return domain.ErrInvalidTransition
			}
			// Commission is recomputed from the current program and affiliate
			// rates, not reused from the pending-time snapshot.
			if ref.AffiliateID != nil && ref.Affiliate != nil && ref.Program != nil {
				rate := ref.Program.EffectiveCommissionRate(ref.Affiliate.CommissionRate)
				ref.CommissionRate = rate
				ref.CommissionAmount = ref.Program.CommissionFor(rate)
			}
			completedAt := s.now()
			ref.CompletedAt = &completedAt
			ref.Status = domain.ReferralStatusCompleted
		case domain.ReferralStatusCancelled:
			if !ref.CanCancel() {
				return domain.ErrInvalidTransition
			}
			// Cancelling never rewrites the commission snapshot.
			ref.Status = domain.ReferralStatusCancelled
		case domain.ReferralStatusPending:
			if ref.Status != domain.ReferralStatusPending {
				return domain.ErrInvalidTransition
			}
		default:
			return domain.ErrInvalidTransition
		}
		if notes != "" {
			ref.Notes = notes
		}
		return nil
	})
}
