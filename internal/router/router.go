package router

import (
	"afiliasi/config"
	"afiliasi/internal/domain"
	"afiliasi/internal/handler"
	"afiliasi/internal/middleware"
	"afiliasi/internal/repository"
	"afiliasi/internal/service"
	"afiliasi/internal/validation"
	"afiliasi/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.Register()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.Tracking.RateLimit, cfg.Tracking.RateWindow)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	programRepo := repository.NewProgramRepository(db)
	clickRepo := repository.NewClickRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	trackingSvc := service.NewTrackingService(clickRepo, cfg.Tracking.ClickDedupWindow)
	referralSvc := service.NewReferralService(referralRepo)
	payoutSvc := service.NewPayoutService(payoutRepo, cfg.Commission.MinPayout)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, userRepo)
	googleHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	programHandler := handler.NewProgramHandler(programRepo, userRepo, trackingSvc, referralSvc)
	affiliateHandler := handler.NewAffiliateHandler(cfg, userRepo, programRepo, referralRepo, payoutRepo, clickRepo, statsRepo, payoutSvc)
	adminHandler := handler.NewAdminHandler(authSvc, userRepo, referralRepo, payoutRepo, clickRepo, statsRepo)
	adminProgramHandler := handler.NewAdminProgramHandler(programRepo, cloud)
	adminReferralHandler := handler.NewAdminReferralHandler(referralRepo, referralSvc)
	adminPayoutHandler := handler.NewAdminPayoutHandler(payoutRepo, userRepo, payoutSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")

	// Public surface
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/google", googleHandler.Redirect)
		auth.GET("/google/callback", googleHandler.Callback)
		auth.POST("/google/token", googleHandler.Token)
		auth.GET("/me", authMw, authHandler.Me)
		auth.POST("/change-password", authMw, authHandler.ChangePassword)
	}
	api.GET("/programs", programHandler.List)
	api.GET("/programs/:id", programHandler.Get)
	api.POST("/programs/:id/register", programHandler.RegisterCustomer)

	// Affiliate portal
	affiliate := api.Group("/affiliate", authMw, middleware.RequireRole(domain.RoleAffiliate))
	{
		affiliate.GET("/dashboard", affiliateHandler.Dashboard)
		affiliate.GET("/referrals", affiliateHandler.Referrals)
		affiliate.GET("/payouts", affiliateHandler.Payouts)
		affiliate.GET("/links", affiliateHandler.Links)
		affiliate.GET("/profile", affiliateHandler.Profile)
		affiliate.PUT("/profile", affiliateHandler.UpdateProfile)
	}

	// Admin panel
	admin := api.Group("/admin", authMw, middleware.AdminRequired())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/stats/clicks", adminHandler.ClicksByDay)

		admin.GET("/affiliates", adminHandler.ListAffiliates)
		admin.POST("/affiliates", adminHandler.CreateAffiliate)
		admin.GET("/affiliates/:id", adminHandler.GetAffiliate)
		admin.PUT("/affiliates/:id", adminHandler.UpdateAffiliate)
		admin.DELETE("/affiliates/:id", adminHandler.DeleteAffiliate)
		admin.GET("/affiliates/:id/balance", adminPayoutHandler.Balance)

		admin.GET("/programs", adminProgramHandler.List)
		admin.POST("/programs", adminProgramHandler.Create)
		admin.GET("/programs/:id", adminProgramHandler.Get)
		admin.PUT("/programs/:id", adminProgramHandler.Update)
		admin.DELETE("/programs/:id", adminProgramHandler.Delete)
		admin.POST("/programs/:id/image", adminProgramHandler.UploadImage)

		admin.GET("/referrals", adminReferralHandler.List)
		admin.GET("/referrals/:id", adminReferralHandler.Get)
		admin.PATCH("/referrals/:id/status", adminReferralHandler.UpdateStatus)

		admin.GET("/payouts", adminPayoutHandler.List)
		admin.POST("/payouts", adminPayoutHandler.Create)
		admin.GET("/payouts/:id", adminPayoutHandler.Get)
		admin.PATCH("/payouts/:id/status", adminPayoutHandler.UpdateStatus)
		admin.DELETE("/payouts/:id", adminPayoutHandler.Delete)
	}

	return r
}
