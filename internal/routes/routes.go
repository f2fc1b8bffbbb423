package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/analytics"
	"github.com/skillbridge/marketplace/internal/audit"
	"github.com/skillbridge/marketplace/internal/config"
	"github.com/skillbridge/marketplace/internal/handlers"
	"github.com/skillbridge/marketplace/internal/identity"
	infraRepo "github.com/skillbridge/marketplace/internal/infra/repository"
	"github.com/skillbridge/marketplace/internal/middleware"
	"github.com/skillbridge/marketplace/internal/notify"
	"github.com/skillbridge/marketplace/internal/policy"
	ucBooking "github.com/skillbridge/marketplace/internal/usecase/booking"
	ucComplaint "github.com/skillbridge/marketplace/internal/usecase/complaint"
	ucReview "github.com/skillbridge/marketplace/internal/usecase/review"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config, log *slog.Logger) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(db)
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	reviewRepo := infraRepo.NewReviewGormRepository(db)
	complaintRepo := infraRepo.NewComplaintGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	var mailer notify.Sender
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(cfg)
	} else {
		mailer = notify.NewLogSender(log)
	}
	notifier := notify.NewNotifier(mailer, log)
	events := notify.NewEvents(notifier, notify.NewDispatcher(log))

	verifier := identity.NewJWTVerifier(cfg.JWTSecret)
	resolver := identity.NewResolver(userRepo, log)

	var sessions *identity.SessionCache
	if rdb != nil {
		sessions = identity.NewSessionCache(rdb, 5*time.Minute, log)
	}

	pol := policy.New(log)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, events)
	transitionBookingUC := ucBooking.NewTransitionBooking(bookingRepo, events)

	createReviewUC := ucReview.NewCreateReview(reviewRepo, events)

	createComplaintUC := ucComplaint.NewCreateComplaint(complaintRepo)
	updateComplaintUC := ucComplaint.NewUpdateComplaint(complaintRepo, events, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db, pol, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, pol)
	bookingHandler := handlers.NewBookingHandler(bookingRepo, pol, createBookingUC, transitionBookingUC, auditDispatcher)
	reviewHandler := handlers.NewReviewHandler(db, pol, createReviewUC)
	complaintHandler := handlers.NewComplaintHandler(complaintRepo, pol, createComplaintUC, updateComplaintUC)

	adminUsersHandler := handlers.NewAdminUsersHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	analyticsHandler := handlers.NewAnalyticsHandler(analytics.New(db))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.Authenticate(verifier, resolver, sessions, userRepo))
	{
		// ------------------------------
		// AUTH (password accounts)
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/categories", categoryHandler.List)
		api.GET("/categories/:id", categoryHandler.Get)

		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/services/:id/reviews", reviewHandler.List)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireAuth())
		{
			secured.GET("/users/me", meHandler.Get)
			secured.PATCH("/users/me", meHandler.Update)

			secured.POST("/categories", categoryHandler.Create)
			secured.PUT("/categories/:id", categoryHandler.Update)
			secured.PATCH("/categories/:id", categoryHandler.Update)
			secured.DELETE("/categories/:id", categoryHandler.Delete)

			secured.GET("/services/mine", serviceHandler.Mine)
			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.POST("/services/:id/reviews", reviewHandler.Create)
			secured.PATCH("/services/:id/reviews/:review_id", reviewHandler.Update)
			secured.DELETE("/services/:id/reviews/:review_id", reviewHandler.Delete)

			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PATCH("/bookings/:id", bookingHandler.UpdateStatus)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)

			secured.GET("/complaints", complaintHandler.List)
			secured.POST("/complaints", complaintHandler.Create)
			secured.GET("/complaints/:id", complaintHandler.Get)
			secured.PATCH("/complaints/:id", complaintHandler.Update)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/users", adminUsersHandler.List)
			admin.POST("/users", adminUsersHandler.Create)
			admin.GET("/users/:id", adminUsersHandler.Get)
			admin.PATCH("/users/:id", adminUsersHandler.Update)
			admin.POST("/users/:id/activate", adminUsersHandler.Activate)
			admin.POST("/users/:id/deactivate", adminUsersHandler.Deactivate)
			admin.DELETE("/users/:id", adminUsersHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
			admin.GET("/analytics", analyticsHandler.Overview)
		}
	}
}
