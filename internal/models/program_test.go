package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestEffectiveCommissionRate(t *testing.T) {
	affiliateRate := d("15.00")

	noOverride := &Program{Price: d("1000000")}
	if got := noOverride.EffectiveCommissionRate(affiliateRate); !got.Equal(d("15.00")) {
		t.Errorf("without override: rate = %s, want 15.00", got)
	}

	withOverride := &Program{Price: d("1000000"), CommissionRate: decimal.NewNullDecimal(d("20.00"))}
	if got := withOverride.EffectiveCommissionRate(affiliateRate); !got.Equal(d("20.00")) {
		t.Errorf("with override: rate = %s, want 20.00", got)
	}

	// An explicit zero override means no commission, not a fallback.
	zeroOverride := &Program{Price: d("1000000"), CommissionRate: decimal.NewNullDecimal(d("0"))}
	if got := zeroOverride.EffectiveCommissionRate(affiliateRate); !got.IsZero() {
		t.Errorf("zero override: rate = %s, want 0", got)
	}
}

func TestCommissionFor(t *testing.T) {
	cases := []struct {
		price, rate, want string
	}{
		{"1000000", "15.00", "150000"},
		{"2500000", "10.00", "250000"},
		{"1500000", "12.50", "187500"},
		{"999999", "10.00", "99999.9"},
		{"1000000", "12.345", "123450"}, // rate precision beyond 2dp still rounds the amount
		{"1000000", "0", "0"},
	}
	for _, c := range cases {
		p := &Program{Price: d(c.price)}
		got := p.CommissionFor(d(c.rate))
		if !got.Equal(d(c.want)) {
			t.Errorf("CommissionFor(%s, %s) = %s, want %s", c.price, c.rate, got, c.want)
		}
	}
}
