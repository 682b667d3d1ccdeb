package domain

import "errors"

var (
	// ErrNotFound covers missing entities and role-scoped lookups that miss
	// (e.g. a payout referencing a user that is not an affiliate).
	ErrNotFound = errors.New("not found")

	// ErrInsufficientBalance is returned when a payout amount exceeds the
	// affiliate's available balance at creation time.
	ErrInsufficientBalance = errors.New("payout amount exceeds available balance")

	// ErrInvalidTransition is returned for any state change outside the
	// referral/payout state graphs, including deleting a completed payout.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInactiveAffiliate is returned when resolving a referral code that
	// belongs to a deactivated affiliate.
	ErrInactiveAffiliate = errors.New("affiliate is not active")

	// ErrBelowMinPayout is returned when a payout amount is under the
	// configured minimum.
	ErrBelowMinPayout = errors.New("amount is below the minimum payout")
)
