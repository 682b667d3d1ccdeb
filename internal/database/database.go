package database

import (
	"encoding/json"
	"log"

	"afiliasi/config"
	"afiliasi/internal/domain"
	"afiliasi/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Program{},
		&models.Click{},
		&models.Referral{},
		&models.Payout{},
	)
}

// SeedAdmin creates the admin account on first boot.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[seed] admin password hash failed: %v", err)
		return
	}
	admin := &models.User{
		Name:         "Admin English Booster",
		Email:        "admin@englishbooster.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		Phone:        "+62812345678901",
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("[seed] admin create failed: %v", err)
		return
	}
	log.Printf("[seed] admin account created: %s", admin.Email)
}

type seedProgram struct {
	name        string
	description string
	typ         string
	duration    string
	price       int64
	rate        string // empty means fall back to the affiliate rate
	features    []string
}

// SeedPrograms loads the initial course catalog when the table is empty.
func SeedPrograms(db *gorm.DB) {
	var count int64
	db.Model(&models.Program{}).Count(&count)
	if count > 0 {
		return
	}
	seeds := []seedProgram{
		{"English for Kids", "Fun and interactive English learning program designed specifically for children aged 4-12 years.",
			domain.ProgramTypeOnline, "3 months", 1500000, "15.00",
			[]string{"Interactive lessons", "Games and activities", "Progress tracking", "Certificate"}},
		{"Teen English Program", "Comprehensive English program for teenagers with focus on speaking and communication skills.",
			domain.ProgramTypeOnline, "4 months", 2000000, "12.00",
			[]string{"Speaking practice", "Grammar mastery", "Vocabulary building", "Mock tests"}},
		{"TOEFL Preparation", "Intensive TOEFL preparation course with expert instructors and comprehensive materials.",
			domain.ProgramTypeOnline, "2 months", 2500000, "20.00",
			[]string{"TOEFL strategies", "Practice tests", "Score improvement", "Expert guidance"}},
		{"Easy Peasy English", "Beginner-friendly English program that makes learning simple and enjoyable.",
			domain.ProgramTypeOnline, "6 months", 1800000, "",
			[]string{"Step-by-step learning", "Daily practice", "Personal tutor", "Flexible schedule"}},
		{"Private English Lessons", "One-on-one English tutoring sessions customized to your learning needs.",
			domain.ProgramTypeOnline, "Flexible", 3000000, "25.00",
			[]string{"Personalized curriculum", "1-on-1 sessions", "Flexible timing", "Rapid progress"}},
		{"General English", "Complete English language program covering all four skills: speaking, listening, reading, writing.",
			domain.ProgramTypeOnline, "5 months", 2200000, "",
			[]string{"4 language skills", "Interactive content", "Regular assessments", "Community support"}},
		{"Speaking Booster", "Specialized program focused on improving English speaking confidence and fluency.",
			domain.ProgramTypeOnline, "3 months", 1800000, "18.00",
			[]string{"Speaking drills", "Pronunciation training", "Conversation practice", "Confidence building"}},
		{"Grammar Booster", "Comprehensive grammar program that covers all essential English grammar rules.",
			domain.ProgramTypeOnline, "2 months", 1200000, "",
			[]string{"Grammar rules", "Practical exercises", "Error correction", "Writing improvement"}},
		{"Pare English Camp 2 Weeks", "Intensive 2-week English immersion program in the famous English village of Pare, Kediri.",
			domain.ProgramTypeOffline, "2 weeks", 3500000, "15.00",
			[]string{"English environment", "Accommodation", "Meals included", "Cultural activities"}},
		{"Pare English Camp 1 Month", "One month intensive English program in Pare with comprehensive skill development.",
			domain.ProgramTypeOffline, "1 month", 6000000, "18.00",
			[]string{"Full immersion", "Native speakers", "Cultural exchange", "Certificate"}},
		{"Pare English Camp 3 Months", "Complete 3-month English mastery program with job placement assistance.",
			domain.ProgramTypeOffline, "3 months", 15000000, "22.00",
			[]string{"Advanced training", "Job placement support", "Business English", "Internship opportunities"}},
		{"TOEFL Camp Pare", "Intensive TOEFL preparation camp in Pare with guaranteed score improvement.",
			domain.ProgramTypeOffline, "1 month", 7500000, "25.00",
			[]string{"TOEFL strategies", "Practice tests", "Score improvement", "Expert guidance"}},
		{"Kapal Pesiar English", "English training for cruise ship employment with hospitality focus.",
			domain.ProgramTypeOffline, "3 months", 12000000, "20.00",
			[]string{"Hospitality English", "Interview preparation", "Job placement", "Certificate"}},
		{"English Trip", "Group English learning trip combining study and travel.",
			domain.ProgramTypeRombongan, "1 week", 5000000, "12.00",
			[]string{"Group activities", "Travel experience", "English practice", "Guided tours"}},
		{"Special English Day", "One-day intensive English event for schools and organizations.",
			domain.ProgramTypeRombongan, "1 day", 1000000, "10.00",
			[]string{"Group sessions", "Fun activities", "Certificates", "Materials included"}},
		{"Tutor Visit", "English tutors visit your school or organization for on-site teaching.",
			domain.ProgramTypeRombongan, "Flexible", 2500000, "15.00",
			[]string{"On-site teaching", "Customized curriculum", "Flexible schedule", "Progress reports"}},
		{"Cilukba (Pre-school / TK)", "Early childhood English program for pre-school children at branch locations.",
			domain.ProgramTypeCabang, "6 months", 1200000, "12.00",
			[]string{"Age-appropriate learning", "Play-based method", "Parent reports", "Branch locations"}},
		{"Hompimpa (SD)", "Elementary school English program at branch locations.",
			domain.ProgramTypeCabang, "8 months", 1500000, "12.00",
			[]string{"School curriculum support", "Interactive classes", "Regular assessments", "Branch locations"}},
		{"Hip Hip Hurray (SMP)", "Junior high school English program at branch locations.",
			domain.ProgramTypeCabang, "10 months", 1800000, "15.00",
			[]string{"Exam preparation", "Speaking clubs", "Grammar focus", "Branch locations"}},
		{"Insight Out (SMA)", "Senior high school English program at branch locations.",
			domain.ProgramTypeCabang, "12 months", 2200000, "18.00",
			[]string{"University preparation", "TOEFL introduction", "Debate clubs", "Branch locations"}},
	}
	for _, s := range seeds {
		p := &models.Program{
			Name:        s.name,
			Description: s.description,
			Type:        s.typ,
			Duration:    s.duration,
			Price:       decimal.NewFromInt(s.price),
			IsActive:    true,
		}
		if s.rate != "" {
			if rate, err := decimal.NewFromString(s.rate); err == nil {
				p.CommissionRate = decimal.NewNullDecimal(rate)
			}
		}
		if raw, err := json.Marshal(s.features); err == nil {
			p.Features = datatypes.JSON(raw)
		}
		if err := db.Create(p).Error; err != nil {
			log.Printf("[seed] program %q create failed: %v", s.name, err)
		}
	}
	log.Printf("[seed] %d programs created", len(seeds))
}
