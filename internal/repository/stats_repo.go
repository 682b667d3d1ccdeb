package repository

import (
	"time"

	"afiliasi/internal/domain"
	"afiliasi/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalAffiliates     int64           `json:"total_affiliates"`
	ActiveAffiliates    int64           `json:"active_affiliates"`
	TotalPrograms       int64           `json:"total_programs"`
	ActivePrograms      int64           `json:"active_programs"`
	TotalReferrals      int64           `json:"total_referrals"`
	CompletedReferrals  int64           `json:"completed_referrals"`
	PendingReferrals    int64           `json:"pending_referrals"`
	TotalClicks         int64           `json:"total_clicks"`
	TotalCommissionPaid decimal.Decimal `json:"total_commission_paid"`
	PendingPayouts      decimal.Decimal `json:"pending_payouts"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
}

type AffiliateStats struct {
	TotalClicks        int64           `json:"total_clicks"`
	TodayClicks        int64           `json:"today_clicks"`
	TotalReferrals     int64           `json:"total_referrals"`
	CompletedReferrals int64           `json:"completed_referrals"`
	PendingReferrals   int64           `json:"pending_referrals"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	PendingEarnings    decimal.Decimal `json:"pending_earnings"`
	TotalPayouts       decimal.Decimal `json:"total_payouts"`
	AvailableBalance   decimal.Decimal `json:"available_balance"`
	ConversionRate     float64         `json:"conversion_rate"`
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type TopAffiliate struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	ReferralCode       string `json:"referral_code"`
	CompletedReferrals int64  `json:"completed_referrals"`
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Dashboard aggregates the admin overview. Everything is recomputed on read;
// no derived quantity is ever stored.
func (r *StatsRepository) Dashboard() (*DashboardStats, error) {
	var s DashboardStats
	r.db.Model(&models.User{}).Where("role = ?", domain.RoleAffiliate).Count(&s.TotalAffiliates)
	r.db.Model(&models.User{}).Where("role = ? AND is_active = ?", domain.RoleAffiliate, true).Count(&s.ActiveAffiliates)
	r.db.Model(&models.Program{}).Count(&s.TotalPrograms)
	r.db.Model(&models.Program{}).Where("is_active = ?", true).Count(&s.ActivePrograms)
	r.db.Model(&models.Referral{}).Count(&s.TotalReferrals)
	r.db.Model(&models.Referral{}).Where("status = ?", domain.ReferralStatusCompleted).Count(&s.CompletedReferrals)
	r.db.Model(&models.Referral{}).Where("status = ?", domain.ReferralStatusPending).Count(&s.PendingReferrals)
	r.db.Model(&models.Click{}).Count(&s.TotalClicks)

	var paid struct{ Total decimal.Decimal }
	r.db.Model(&models.Payout{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", domain.PayoutStatusCompleted).Scan(&paid)
	s.TotalCommissionPaid = paid.Total

	var pending struct{ Total decimal.Decimal }
	r.db.Model(&models.Payout{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", domain.PayoutStatusPending).Scan(&pending)
	s.PendingPayouts = pending.Total

	var revenue struct{ Total decimal.Decimal }
	r.db.Model(&models.Referral{}).
		Select("COALESCE(SUM(programs.price), 0) AS total").
		Joins("JOIN programs ON programs.id = referrals.program_id").
		Where("referrals.status = ?", domain.ReferralStatusCompleted).Scan(&revenue)
	s.TotalRevenue = revenue.Total

	return &s, nil
}

// ForAffiliate recomputes one affiliate's dashboard numbers.
func (r *StatsRepository) ForAffiliate(affiliateID uint, now time.Time) (*AffiliateStats, error) {
	var s AffiliateStats
	r.db.Model(&models.Click{}).Where("affiliate_id = ?", affiliateID).Count(&s.TotalClicks)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	r.db.Model(&models.Click{}).
		Where("affiliate_id = ? AND created_at >= ?", affiliateID, today).
		Count(&s.TodayClicks)

	r.db.Model(&models.Referral{}).Where("affiliate_id = ?", affiliateID).Count(&s.TotalReferrals)
	r.db.Model(&models.Referral{}).
		Where("affiliate_id = ? AND status = ?", affiliateID, domain.ReferralStatusCompleted).
		Count(&s.CompletedReferrals)
	r.db.Model(&models.Referral{}).
		Where("affiliate_id = ? AND status = ?", affiliateID, domain.ReferralStatusPending).
		Count(&s.PendingReferrals)

	s.TotalEarnings = r.sumCommission(affiliateID, domain.ReferralStatusCompleted)
	s.PendingEarnings = r.sumCommission(affiliateID, domain.ReferralStatusPending)

	var paid struct{ Total decimal.Decimal }
	r.db.Model(&models.Payout{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("affiliate_id = ? AND status = ?", affiliateID, domain.PayoutStatusCompleted).
		Scan(&paid)
	s.TotalPayouts = paid.Total
	s.AvailableBalance = s.TotalEarnings.Sub(s.TotalPayouts)

	s.ConversionRate = ConversionRate(s.TotalReferrals, s.TotalClicks)
	return &s, nil
}

func (r *StatsRepository) sumCommission(affiliateID uint, status string) decimal.Decimal {
	var row struct{ Total decimal.Decimal }
	r.db.Model(&models.Referral{}).
		Select("COALESCE(SUM(commission_amount), 0) AS total").
		Where("affiliate_id = ? AND status = ?", affiliateID, status).
		Scan(&row)
	return row.Total
}

// ClicksByDay returns daily click counts for the last N days.
func (r *StatsRepository) ClicksByDay(days int) ([]TimeSeriesPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	var points []TimeSeriesPoint
	err := r.db.Model(&models.Click{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&points).Error
	return points, err
}

// TopAffiliates ranks affiliates by completed referral count.
func (r *StatsRepository) TopAffiliates(limit int) ([]TopAffiliate, error) {
	var top []TopAffiliate
	err := r.db.Model(&models.User{}).
		Select("users.id, users.name, users.referral_code, COUNT(referrals.id) AS completed_referrals").
		Joins("LEFT JOIN referrals ON referrals.affiliate_id = users.id AND referrals.status = ?", domain.ReferralStatusCompleted).
		Where("users.role = ?", domain.RoleAffiliate).
		Group("users.id, users.name, users.referral_code").
		Order("completed_referrals DESC").
		Limit(limit).
		Scan(&top).Error
	return top, err
}

// ConversionRate is referrals over clicks as a percentage, rounded to two
// decimal places. Zero clicks yields zero, not a division error.
func ConversionRate(referrals, clicks int64) float64 {
	if clicks == 0 {
		return 0
	}
	rate := float64(referrals) / float64(clicks) * 100
	return float64(int64(rate*100+0.5)) / 100
}
