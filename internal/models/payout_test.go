package models

import (
	"testing"

	"afiliasi/internal/domain"
)

func TestPayoutCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{domain.PayoutStatusPending, domain.PayoutStatusProcessing, true},
		{domain.PayoutStatusPending, domain.PayoutStatusCompleted, true},
		{domain.PayoutStatusPending, domain.PayoutStatusCancelled, true},
		{domain.PayoutStatusPending, domain.PayoutStatusPending, true}, // note/detail edits
		{domain.PayoutStatusProcessing, domain.PayoutStatusCompleted, true},
		{domain.PayoutStatusProcessing, domain.PayoutStatusCancelled, true},
		{domain.PayoutStatusProcessing, domain.PayoutStatusProcessing, true},
		{domain.PayoutStatusProcessing, domain.PayoutStatusPending, false},
		{domain.PayoutStatusCompleted, domain.PayoutStatusCompleted, false},
		{domain.PayoutStatusCompleted, domain.PayoutStatusPending, false},
		{domain.PayoutStatusCompleted, domain.PayoutStatusCancelled, false},
		{domain.PayoutStatusCancelled, domain.PayoutStatusCancelled, false},
		{domain.PayoutStatusCancelled, domain.PayoutStatusPending, false},
	}
	for _, c := range cases {
		p := &Payout{Status: c.from}
		if got := p.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestPayoutCanDelete(t *testing.T) {
	for _, status := range []string{domain.PayoutStatusPending, domain.PayoutStatusProcessing, domain.PayoutStatusCancelled} {
		if !(&Payout{Status: status}).CanDelete() {
			t.Errorf("%s payout should be deletable", status)
		}
	}
	if (&Payout{Status: domain.PayoutStatusCompleted}).CanDelete() {
		t.Errorf("completed payout should not be deletable")
	}
}

func TestReferralStateChecks(t *testing.T) {
	if !(&Referral{Status: domain.ReferralStatusPending}).CanComplete() {
		t.Errorf("pending referral should be completable")
	}
	if (&Referral{Status: domain.ReferralStatusCancelled}).CanComplete() {
		t.Errorf("cancelled referral should not be completable")
	}
	if (&Referral{Status: domain.ReferralStatusCompleted}).CanCancel() {
		t.Errorf("completed referral should not be cancellable")
	}
	if !(&Referral{Status: domain.ReferralStatusPending}).CanCancel() {
		t.Errorf("pending referral should be cancellable")
	}
}
