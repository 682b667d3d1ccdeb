package models

import (
	"time"

	"gorm.io/datatypes"
)

// Click is one attributed visit to a program page via an affiliate link.
// Metadata carries the UTM params as an opaque key-value map.
type Click struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	AffiliateID uint              `gorm:"not null;index:idx_clicks_affiliate_ip" json:"affiliate_id"`
	ProgramID   *uint             `gorm:"index" json:"program_id"`
	IPAddress   string            `gorm:"size:45;not null;index:idx_clicks_affiliate_ip" json:"ip_address"`
	UserAgent   string            `gorm:"size:512" json:"user_agent"`
	ReferrerURL string            `gorm:"size:1024" json:"referrer_url"`
	LandingPage string            `gorm:"size:1024" json:"landing_page"`
	Metadata    datatypes.JSONMap `json:"metadata"`
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`

	Affiliate *User    `gorm:"foreignKey:AffiliateID" json:"-"`
	Program   *Program `gorm:"foreignKey:ProgramID" json:"-"`
}

func (Click) TableName() string { return "clicks" }
