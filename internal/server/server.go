package server

import (
	"context"
	"log"
	"strings"
	"time"

	"mindhaven-backend/internal/config"
	"mindhaven-backend/internal/middleware"
	"mindhaven-backend/pkg/database"
	"mindhaven-backend/pkg/storage"

	activityHttp "mindhaven-backend/internal/modules/activity/delivery/http"
	activityRepo "mindhaven-backend/internal/modules/activity/repository"
	activityService "mindhaven-backend/internal/modules/activity/service"

	affirmationHttp "mindhaven-backend/internal/modules/affirmation/delivery/http"
	affirmationRepo "mindhaven-backend/internal/modules/affirmation/repository"
	affirmationService "mindhaven-backend/internal/modules/affirmation/service"

	feedbackHttp "mindhaven-backend/internal/modules/feedback/delivery/http"
	feedbackRepo "mindhaven-backend/internal/modules/feedback/repository"
	feedbackService "mindhaven-backend/internal/modules/feedback/service"

	goalHttp "mindhaven-backend/internal/modules/goal/delivery/http"
	goalRepo "mindhaven-backend/internal/modules/goal/repository"
	goalService "mindhaven-backend/internal/modules/goal/service"

	journalHttp "mindhaven-backend/internal/modules/journal/delivery/http"
	journalRepo "mindhaven-backend/internal/modules/journal/repository"
	journalService "mindhaven-backend/internal/modules/journal/service"

	milestoneHttp "mindhaven-backend/internal/modules/milestone/delivery/http"
	milestoneRepo "mindhaven-backend/internal/modules/milestone/repository"
	milestoneService "mindhaven-backend/internal/modules/milestone/service"

	mindfulnessHttp "mindhaven-backend/internal/modules/mindfulness/delivery/http"
	mindfulnessRepo "mindhaven-backend/internal/modules/mindfulness/repository"
	mindfulnessService "mindhaven-backend/internal/modules/mindfulness/service"

	notifHttp "mindhaven-backend/internal/modules/notification/delivery/http"
	notifRepo "mindhaven-backend/internal/modules/notification/repository"
	notifService "mindhaven-backend/internal/modules/notification/service"

	rewardHttp "mindhaven-backend/internal/modules/reward/delivery/http"
	rewardService "mindhaven-backend/internal/modules/reward/service"

	scheduleHttp "mindhaven-backend/internal/modules/schedule/delivery/http"
	scheduleRepo "mindhaven-backend/internal/modules/schedule/repository"
	scheduleService "mindhaven-backend/internal/modules/schedule/service"

	searchService "mindhaven-backend/internal/modules/search/service"

	userHttp "mindhaven-backend/internal/modules/user/delivery/http"
	userRepo "mindhaven-backend/internal/modules/user/repository"
	userService "mindhaven-backend/internal/modules/user/service"

	visionboardHttp "mindhaven-backend/internal/modules/visionboard/delivery/http"
	visionboardRepo "mindhaven-backend/internal/modules/visionboard/repository"
	visionboardService "mindhaven-backend/internal/modules/visionboard/service"

	walletHttp "mindhaven-backend/internal/modules/wallet/delivery/http"
	walletRepo "mindhaven-backend/internal/modules/wallet/repository"
	walletService "mindhaven-backend/internal/modules/wallet/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	txm := database.NewTxManager(db)

	users := userRepo.NewUserRepository(db)
	wallets := walletRepo.NewWalletRepository(db)
	ledger := walletRepo.NewLedgerRepository(db)
	activities := activityRepo.NewActivityRepository(db)
	milestones := milestoneRepo.NewMilestoneRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("Cloudinary storage unavailable, image uploads disabled: %v", err)
		imageStorage = nil
	}

	var meiliSvc searchService.SearchService
	if cfg.MeiliSearchHost != "" {
		host := cfg.MeiliSearchHost
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient := meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		meiliSvc = searchService.NewSearchService(meiliClient)
	}

	// Notification Module
	notifications := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notifications, redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, redisClient)

	// Core reward pipeline
	activitySvc := activityService.NewActivityService(txm, activities)
	activityHandler := activityHttp.NewActivityHandler(activitySvc)

	rewardSvc := rewardService.NewRewardService(txm, wallets, ledger, activitySvc, notificationSvc)
	rewardHandler := rewardHttp.NewRewardHandler(rewardSvc)

	walletSvc := walletService.NewWalletService(wallets, ledger)
	walletHandler := walletHttp.NewWalletHandler(walletSvc)

	milestoneSvc := milestoneService.NewMilestoneService(txm, milestones, wallets, notificationSvc)
	milestoneHandler := milestoneHttp.NewMilestoneHandler(milestoneSvc)

	// Accounts
	authSvc := userService.NewAuthService(users, txm, rewardSvc, cfg)
	userHandler := userHttp.NewUserHandler(authSvc)

	// Wellness modules
	affirmations := affirmationRepo.NewAffirmationRepository(db)
	affirmationSvc := affirmationService.NewAffirmationService(affirmations, txm, rewardSvc)
	affirmationHandler := affirmationHttp.NewAffirmationHandler(affirmationSvc)

	journals := journalRepo.NewJournalRepository(db)
	journalSvc := journalService.NewJournalService(journals, txm, rewardSvc, meiliSvc)
	journalHandler := journalHttp.NewJournalHandler(journalSvc)

	mindfulnessSessions := mindfulnessRepo.NewMindfulnessRepository(db)
	mindfulnessSvc := mindfulnessService.NewMindfulnessService(mindfulnessSessions, txm, rewardSvc)
	mindfulnessHandler := mindfulnessHttp.NewMindfulnessHandler(mindfulnessSvc)

	goals := goalRepo.NewGoalRepository(db)
	goalSvc := goalService.NewGoalService(goals, txm, rewardSvc)
	goalHandler := goalHttp.NewGoalHandler(goalSvc)

	visionboards := visionboardRepo.NewVisionBoardRepository(db)
	visionboardSvc := visionboardService.NewVisionBoardService(visionboards, txm, rewardSvc, imageStorage, cfg.CloudinaryUploadFolder)
	visionboardHandler := visionboardHttp.NewVisionBoardHandler(visionboardSvc)

	feedbacks := feedbackRepo.NewFeedbackRepository(db)
	feedbackSvc := feedbackService.NewFeedbackService(feedbacks, txm, rewardSvc)
	feedbackHandler := feedbackHttp.NewFeedbackHandler(feedbackSvc)

	schedules := scheduleRepo.NewScheduleRepository(db)
	scheduleSvc := scheduleService.NewScheduleService(schedules, txm, rewardSvc)
	scheduleHandler := scheduleHttp.NewScheduleHandler(scheduleSvc)

	// Background jobs
	go func() {
		ticker := time.NewTicker(cfg.MilestoneSweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			if err := milestoneSvc.Sweep(context.Background()); err != nil {
				log.Printf("Milestone sweep error: %v", err)
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.GoalSweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			if err := goalSvc.AdvanceStatuses(context.Background()); err != nil {
				log.Printf("Goal status sweep error: %v", err)
			}
		}
	}()

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(users, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", userHandler.Signup)
		auth.POST("/login", userHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Profile
		protected.GET("/profile/me", userHandler.GetProfile)
		protected.PUT("/profile", userHandler.UpdateProfile)

		// Wallet routes
		protected.GET("/wallet", walletHandler.GetWallet)
		protected.GET("/wallet/ledger", walletHandler.GetLedger)
		protected.GET("/wallet/summary", walletHandler.GetMonthlySummary)

		// Reward routes
		protected.POST("/rewards/activities", rewardHandler.CompleteActivity)
		protected.POST("/rewards/points", rewardHandler.AddPoints)

		// Milestone routes
		protected.GET("/milestones", milestoneHandler.GetMilestones)
		protected.POST("/milestones/claim", milestoneHandler.Claim)
		protected.POST("/milestones/refresh", milestoneHandler.Refresh)

		// Daily activity routes
		protected.POST("/activities/usage", activityHandler.AddUsage)
		protected.GET("/activities/history", activityHandler.GetHistory)

		// Affirmation routes
		protected.POST("/affirmations", affirmationHandler.Create)
		protected.GET("/affirmations", affirmationHandler.List)
		protected.PUT("/affirmations/:id/reminder", affirmationHandler.UpdateReminder)
		protected.DELETE("/affirmations/:id", affirmationHandler.Delete)

		// Journal routes
		protected.POST("/journals", journalHandler.Create)
		protected.GET("/journals", journalHandler.List)
		protected.GET("/journals/search", journalHandler.Search)
		protected.GET("/journals/:id", journalHandler.Get)
		protected.PUT("/journals/:id", journalHandler.Update)
		protected.DELETE("/journals/:id", journalHandler.Delete)

		// Mindfulness routes
		protected.POST("/mindfulness", mindfulnessHandler.Record)
		protected.GET("/mindfulness", mindfulnessHandler.List)
		protected.GET("/mindfulness/total", mindfulnessHandler.TotalDuration)

		// Goal routes
		protected.POST("/goals", goalHandler.Create)
		protected.GET("/goals", goalHandler.List)
		protected.PUT("/goals/:id", goalHandler.Update)
		protected.PUT("/goals/:id/status", goalHandler.UpdateStatus)
		protected.DELETE("/goals/:id", goalHandler.Delete)

		// Vision board routes
		protected.POST("/visionboard", visionboardHandler.Create)
		protected.GET("/visionboard", visionboardHandler.List)
		protected.DELETE("/visionboard/:id", visionboardHandler.Delete)

		// Feedback routes
		protected.POST("/feedback", feedbackHandler.Submit)
		protected.GET("/feedback", feedbackHandler.List)

		feedbackAdmin := protected.Group("/feedback/all")
		feedbackAdmin.Use(authMiddleware.RequireProfessional())
		{
			feedbackAdmin.GET("", feedbackHandler.ListAll)
		}

		// Schedule routes
		protected.POST("/schedules", scheduleHandler.Create)
		protected.GET("/schedules", scheduleHandler.List)
		protected.PUT("/schedules/:id/cancel", scheduleHandler.Cancel)
		protected.PUT("/schedules/:id/complete", scheduleHandler.Complete)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
