package service

import (
	"time"

	"afiliasi/internal/models"
	"afiliasi/internal/ports"

	"gorm.io/datatypes"
)

// TrackingService records affiliate clicks with best-effort de-duplication:
// repeat clicks from the same affiliate+IP inside the window are dropped, so
// each call inserts exactly zero or one row.
type TrackingService struct {
	clicks ports.ClickStore
	window time.Duration
	now    func() time.Time
}

func NewTrackingService(clicks ports.ClickStore, window time.Duration) *TrackingService {
	return &TrackingService{clicks: clicks, window: window, now: time.Now}
}

// ClickInput carries everything captured from the inbound request.
type ClickInput struct {
	IP          string
	UserAgent   string
	ReferrerURL string
	LandingPage string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
}

// TrackClick persists one click for the affiliate unless an identical
// affiliate+IP click already exists within the dedup window. program may be
// nil for catalog-level clicks.
func (s *TrackingService) TrackClick(affiliate *models.User, program *models.Program, in ClickInput) error {
	since := s.now().Add(-s.window)
	recent, err := s.clicks.RecentExists(affiliate.ID, in.IP, since)
	if err != nil {
		return err
	}
	if recent {
		return nil
	}

	click := &models.Click{
		AffiliateID: affiliate.ID,
		IPAddress:   in.IP,
		UserAgent:   in.UserAgent,
		ReferrerURL: in.ReferrerURL,
		LandingPage: in.LandingPage,
		Metadata: datatypes.JSONMap{
			"utm_source":   in.UTMSource,
			"utm_medium":   in.UTMMedium,
			"utm_campaign": in.UTMCampaign,
		},
	}
	if program != nil {
		click.ProgramID = &program.ID
	}
	return s.clicks.Create(click)
}
