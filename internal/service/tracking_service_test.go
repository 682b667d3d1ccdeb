package service

import (
	"testing"
	"time"

	"afiliasi/internal/models"
)

type fakeClickStore struct {
	clicks []*models.Click
	err    error
}

func (f *fakeClickStore) RecentExists(affiliateID uint, ip string, since time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, c := range f.clicks {
		if c.AffiliateID == affiliateID && c.IPAddress == ip && c.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClickStore) Create(c *models.Click) error {
	if f.err != nil {
		return f.err
	}
	c.ID = uint(len(f.clicks) + 1)
	f.clicks = append(f.clicks, c)
	return nil
}

func TestTrackClickRecordsFirstClick(t *testing.T) {
	store := &fakeClickStore{}
	svc := NewTrackingService(store, 5*time.Minute)

	affiliate := &models.User{ID: 7}
	program := &models.Program{ID: 3}
	err := svc.TrackClick(affiliate, program, ClickInput{
		IP:        "203.0.113.10",
		UserAgent: "Mozilla/5.0",
		UTMSource: "instagram",
	})
	if err != nil {
		t.Fatalf("TrackClick: %v", err)
	}
	if len(store.clicks) != 1 {
		t.Fatalf("expected 1 click, got %d", len(store.clicks))
	}
	c := store.clicks[0]
	if c.AffiliateID != 7 {
		t.Errorf("affiliate id = %d, want 7", c.AffiliateID)
	}
	if c.ProgramID == nil || *c.ProgramID != 3 {
		t.Errorf("program id = %v, want 3", c.ProgramID)
	}
	if c.Metadata["utm_source"] != "instagram" {
		t.Errorf("utm_source = %v, want instagram", c.Metadata["utm_source"])
	}
}

func TestTrackClickDedupsWithinWindow(t *testing.T) {
	store := &fakeClickStore{}
	svc := NewTrackingService(store, 5*time.Minute)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	affiliate := &models.User{ID: 1}
	in := ClickInput{IP: "198.51.100.4"}

	if err := svc.TrackClick(affiliate, nil, in); err != nil {
		t.Fatalf("first click: %v", err)
	}
	store.clicks[0].CreatedAt = base

	// 2 minutes later, same affiliate and IP: dropped.
	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	if err := svc.TrackClick(affiliate, nil, in); err != nil {
		t.Fatalf("duplicate click: %v", err)
	}
	if len(store.clicks) != 1 {
		t.Fatalf("duplicate inside window recorded, got %d clicks", len(store.clicks))
	}

	// 6 minutes later: outside the window, recorded again.
	svc.now = func() time.Time { return base.Add(6 * time.Minute) }
	if err := svc.TrackClick(affiliate, nil, in); err != nil {
		t.Fatalf("click after window: %v", err)
	}
	if len(store.clicks) != 2 {
		t.Fatalf("click outside window dropped, got %d clicks", len(store.clicks))
	}
}

func TestTrackClickDistinctIPNotDeduped(t *testing.T) {
	store := &fakeClickStore{}
	svc := NewTrackingService(store, 5*time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	affiliate := &models.User{ID: 1}
	if err := svc.TrackClick(affiliate, nil, ClickInput{IP: "198.51.100.4"}); err != nil {
		t.Fatalf("first click: %v", err)
	}
	store.clicks[0].CreatedAt = base
	if err := svc.TrackClick(affiliate, nil, ClickInput{IP: "198.51.100.5"}); err != nil {
		t.Fatalf("second click: %v", err)
	}
	if len(store.clicks) != 2 {
		t.Fatalf("distinct IPs should both record, got %d clicks", len(store.clicks))
	}
}
