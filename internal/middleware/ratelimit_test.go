package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d blocked under limit", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Errorf("request over limit allowed")
	}
	// Other keys are unaffected.
	if !limiter.Allow("10.0.0.2") {
		t.Errorf("independent key blocked")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewRateLimiter(1, 10*time.Millisecond)
	if !limiter.Allow("k") {
		t.Fatalf("first request blocked")
	}
	if limiter.Allow("k") {
		t.Fatalf("second request in window allowed")
	}
	time.Sleep(20 * time.Millisecond)
	if !limiter.Allow("k") {
		t.Errorf("request after window reset blocked")
	}
}
