package service

import (
	"errors"
	"testing"
	"time"

	"afiliasi/internal/domain"
	"afiliasi/internal/models"
	"afiliasi/internal/ports"

	"github.com/shopspring/decimal"
)

// fakePayoutStore mirrors the SQL aggregates: earnings come from seeded
// referral sums, TotalPayouts counts completed payouts only.
type fakePayoutStore struct {
	earnings map[uint]decimal.Decimal // completed referral commission per affiliate
	pending  map[uint]decimal.Decimal
	payouts  map[uint]*models.Payout
	nextID   uint
	locked   []uint // affiliate ids locked, in order
}

func newFakePayoutStore() *fakePayoutStore {
	return &fakePayoutStore{
		earnings: map[uint]decimal.Decimal{},
		pending:  map[uint]decimal.Decimal{},
		payouts:  map[uint]*models.Payout{},
		nextID:   1,
	}
}

func (f *fakePayoutStore) WithAffiliateLock(affiliateID uint, fn func(tx ports.PayoutStore) error) error {
	f.locked = append(f.locked, affiliateID)
	return fn(f)
}

func (f *fakePayoutStore) TotalEarnings(affiliateID uint) (decimal.Decimal, error) {
	return f.earnings[affiliateID], nil
}

func (f *fakePayoutStore) PendingEarnings(affiliateID uint) (decimal.Decimal, error) {
	return f.pending[affiliateID], nil
}

func (f *fakePayoutStore) TotalPayouts(affiliateID uint) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range f.payouts {
		if p.AffiliateID == affiliateID && p.Status == domain.PayoutStatusCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (f *fakePayoutStore) Create(p *models.Payout) error {
	p.ID = f.nextID
	f.nextID++
	f.payouts[p.ID] = p
	return nil
}

func (f *fakePayoutStore) GetByID(id uint) (*models.Payout, error) {
	p, ok := f.payouts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePayoutStore) Save(p *models.Payout) error {
	f.payouts[p.ID] = p
	return nil
}

func (f *fakePayoutStore) Delete(p *models.Payout) error {
	delete(f.payouts, p.ID)
	return nil
}

func minPayout() decimal.Decimal { return decimal.NewFromInt(10000) }

func TestCreatePayoutWithinBalance(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("150000")
	svc := NewPayoutService(store, minPayout())

	p, err := svc.Create(CreatePayoutInput{
		AffiliateID: 1,
		Amount:      dec("100000"),
		Method:      domain.PayoutMethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != domain.PayoutStatusPending {
		t.Errorf("status = %q, want pending", p.Status)
	}
	if len(store.locked) != 1 || store.locked[0] != 1 {
		t.Errorf("affiliate lock not taken: %v", store.locked)
	}
}

func TestCreatePayoutInsufficientBalance(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("150000")
	svc := NewPayoutService(store, minPayout())

	_, err := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("200000"), Method: domain.PayoutMethodBankTransfer})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	if len(store.payouts) != 0 {
		t.Errorf("payout written despite insufficient balance")
	}
}

func TestCreatePayoutPendingEarningsExcluded(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("50000")
	store.pending[1] = dec("500000") // not yet payable
	svc := NewPayoutService(store, minPayout())

	_, err := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("100000"), Method: domain.PayoutMethodBankTransfer})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("pending commission counted toward balance: err = %v", err)
	}
}

func TestCreatePayoutPendingPayoutDoesNotReduceBalance(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("150000")
	svc := NewPayoutService(store, minPayout())

	if _, err := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("100000"), Method: domain.PayoutMethodPaypal}); err != nil {
		t.Fatalf("first payout: %v", err)
	}
	// The first payout is still pending, so the full 150000 remains available.
	if _, err := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("150000"), Method: domain.PayoutMethodPaypal}); err != nil {
		t.Fatalf("second payout while first pending: %v", err)
	}
}

func TestCreatePayoutCompletedPayoutReducesBalance(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("150000")
	svc := NewPayoutService(store, minPayout())

	p, err := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("100000"), Method: domain.PayoutMethodEWallet})
	if err != nil {
		t.Fatalf("first payout: %v", err)
	}
	if _, err := svc.UpdateStatus(p.ID, domain.PayoutStatusCompleted, "", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("100000"), Method: domain.PayoutMethodEWallet}); !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("balance not reduced by completed payout: err = %v", err)
	}
	if _, err := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("50000"), Method: domain.PayoutMethodEWallet}); err != nil {
		t.Fatalf("remaining balance payout: %v", err)
	}
}

func TestCreatePayoutBelowMinimum(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("150000")
	svc := NewPayoutService(store, minPayout())

	_, err := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("9999"), Method: domain.PayoutMethodBankTransfer})
	if !errors.Is(err, domain.ErrBelowMinPayout) {
		t.Fatalf("err = %v, want ErrBelowMinPayout", err)
	}
}

func TestUpdateStatusStampsProcessedAtOnce(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("150000")
	svc := NewPayoutService(store, minPayout())
	processedAt := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return processedAt }
	svc.newTxnID = func() string { return "txn-0001" }

	p, err := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("100000"), Method: domain.PayoutMethodBankTransfer})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	done, err := svc.UpdateStatus(p.ID, domain.PayoutStatusCompleted, "", "sent via wire")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if done.ProcessedAt == nil || !done.ProcessedAt.Equal(processedAt) {
		t.Errorf("processed at = %v, want %v", done.ProcessedAt, processedAt)
	}
	if done.TransactionID != "txn-0001" {
		t.Errorf("transaction id = %q, want generated txn-0001", done.TransactionID)
	}

	// A second completion attempt must be rejected, so ProcessedAt never
	// gets overwritten.
	if _, err := svc.UpdateStatus(p.ID, domain.PayoutStatusCompleted, "", ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("completed -> completed: err = %v, want ErrInvalidTransition", err)
	}
}

func TestUpdateStatusKeepsCallerTransactionID(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("150000")
	svc := NewPayoutService(store, minPayout())

	p, _ := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("100000"), Method: domain.PayoutMethodBankTransfer})
	done, err := svc.UpdateStatus(p.ID, domain.PayoutStatusCompleted, "BANK-REF-77", "")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if done.TransactionID != "BANK-REF-77" {
		t.Errorf("transaction id = %q, want BANK-REF-77", done.TransactionID)
	}
}

func TestUpdateStatusPendingToProcessing(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("150000")
	svc := NewPayoutService(store, minPayout())

	p, _ := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("100000"), Method: domain.PayoutMethodCrypto})
	mid, err := svc.UpdateStatus(p.ID, domain.PayoutStatusProcessing, "", "")
	if err != nil {
		t.Fatalf("pending -> processing: %v", err)
	}
	if mid.ProcessedAt != nil {
		t.Errorf("processing stamped processed_at")
	}
	if _, err := svc.UpdateStatus(p.ID, domain.PayoutStatusPending, "", ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("processing -> pending allowed")
	}
}

func TestDeleteCompletedPayoutRejected(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("150000")
	svc := NewPayoutService(store, minPayout())

	p, _ := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("100000"), Method: domain.PayoutMethodBankTransfer})
	if _, err := svc.UpdateStatus(p.ID, domain.PayoutStatusCompleted, "", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := svc.Delete(p.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("delete completed payout: err = %v, want ErrInvalidTransition", err)
	}
	if _, ok := store.payouts[p.ID]; !ok {
		t.Errorf("completed payout removed")
	}
}

func TestDeletePendingPayout(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("150000")
	svc := NewPayoutService(store, minPayout())

	p, _ := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("100000"), Method: domain.PayoutMethodBankTransfer})
	if err := svc.Delete(p.ID); err != nil {
		t.Fatalf("delete pending payout: %v", err)
	}
	if _, ok := store.payouts[p.ID]; ok {
		t.Errorf("pending payout still present")
	}
}

func TestBalanceView(t *testing.T) {
	store := newFakePayoutStore()
	store.earnings[1] = dec("300000")
	store.pending[1] = dec("120000")
	svc := NewPayoutService(store, minPayout())

	p, _ := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("100000"), Method: domain.PayoutMethodBankTransfer})
	if _, err := svc.UpdateStatus(p.ID, domain.PayoutStatusCompleted, "", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	// A pending payout on top of the completed one.
	if _, err := svc.Create(CreatePayoutInput{AffiliateID: 1, Amount: dec("50000"), Method: domain.PayoutMethodBankTransfer}); err != nil {
		t.Fatalf("second payout: %v", err)
	}

	b, err := svc.Balance(1)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !b.TotalEarnings.Equal(dec("300000")) {
		t.Errorf("total earnings = %s", b.TotalEarnings)
	}
	if !b.PendingEarnings.Equal(dec("120000")) {
		t.Errorf("pending earnings = %s", b.PendingEarnings)
	}
	if !b.TotalPayouts.Equal(dec("100000")) {
		t.Errorf("total payouts = %s, want completed only", b.TotalPayouts)
	}
	if !b.AvailableBalance.Equal(dec("200000")) {
		t.Errorf("available balance = %s, want 200000", b.AvailableBalance)
	}
}
