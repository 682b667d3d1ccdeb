package repository

import "testing"

func TestConversionRate(t *testing.T) {
	cases := []struct {
		referrals, clicks int64
		want              float64
	}{
		{0, 0, 0},
		{5, 0, 0}, // no clicks, no rate
		{1, 4, 25},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{10, 10, 100},
		{3, 200, 1.5},
	}
	for _, c := range cases {
		if got := ConversionRate(c.referrals, c.clicks); got != c.want {
			t.Errorf("ConversionRate(%d, %d) = %v, want %v", c.referrals, c.clicks, got, c.want)
		}
	}
}
