package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glamflow/salon-scheduler/internal/audit"
	"github.com/glamflow/salon-scheduler/internal/config"
	"github.com/glamflow/salon-scheduler/internal/handlers"
	"github.com/glamflow/salon-scheduler/internal/hold"
	"github.com/glamflow/salon-scheduler/internal/middleware"
	"github.com/glamflow/salon-scheduler/internal/models"
	"github.com/glamflow/salon-scheduler/internal/notify"
	"github.com/glamflow/salon-scheduler/internal/payment"
	"github.com/glamflow/salon-scheduler/internal/storage"
	ucBooking "github.com/glamflow/salon-scheduler/internal/usecase/booking"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
)

// Deps carries the infrastructure singletons main wires up once and
// shares with the cron jobs.
type Deps struct {
	Repo     domain.Repository
	Gateway  payment.Gateway
	Holds    *hold.Store
	Notifier *notify.Dispatcher
	Audit    *audit.Dispatcher
	Avatars  *storage.AvatarStore
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(deps.Repo)

	createBookingUC := ucBooking.NewCreateBooking(
		deps.Repo,
		deps.Notifier,
		deps.Audit,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		deps.Repo,
		deps.Holds,
		deps.Audit,
	)

	updateStatusUC := ucBooking.NewUpdateStatus(
		deps.Repo,
		deps.Notifier,
		deps.Audit,
	)

	rescheduleUC := ucBooking.NewRescheduleBooking(
		deps.Repo,
		deps.Audit,
	)

	// ======================================================
	// USE CASES — PAYMENTS
	// ======================================================
	initiatePaymentUC := ucBooking.NewInitiatePayment(
		deps.Repo,
		deps.Gateway,
		deps.Holds,
		deps.Audit,
		cfg.Currency,
	)

	confirmPaymentUC := ucBooking.NewConfirmPayment(
		deps.Repo,
		deps.Gateway,
		deps.Holds,
		deps.Notifier,
		deps.Audit,
	)

	failPaymentUC := ucBooking.NewFailPayment(
		deps.Repo,
		deps.Holds,
		deps.Audit,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, deps.Notifier)
	userHandler := handlers.NewUserHandler(db)
	publicHandler := handlers.NewPublicHandler(db, cfg, availabilityUC)

	bookingHandler := handlers.NewBookingHandler(db, createBookingUC, cancelBookingUC)
	staffHandler := handlers.NewStaffHandler(db, createBookingUC, updateStatusUC, rescheduleUC, deps.Avatars)
	paymentHandler := handlers.NewPaymentHandler(db, initiatePaymentUC, confirmPaymentUC, failPaymentUC)

	reviewHandler := handlers.NewReviewHandler(db)
	chatHandler := handlers.NewChatHandler(db)

	adminHandler := handlers.NewAdminHandler(db, deps.Audit)
	reportHandler := handlers.NewReportHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/services", publicHandler.ListServices)
			public.GET("/services/:id", publicHandler.GetService)
			public.GET("/services/:id/staff", publicHandler.ServiceStaff)
			public.GET("/services/:id/reviews", publicHandler.ServiceReviews)
			public.GET("/staff", publicHandler.ListStaff)
			public.GET("/staff/:id", publicHandler.GetStaff)
			public.GET("/staff/:id/reviews", publicHandler.StaffReviews)
			public.GET("/staff/:id/availability", publicHandler.Availability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/forgot-password", authHandler.ForgotPassword)
		api.POST("/auth/reset-password", authHandler.ResetPassword)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", userHandler.Me)
			secured.PATCH("/me", userHandler.UpdateProfile)
			secured.PATCH("/me/password", userHandler.ChangePassword)
			secured.DELETE("/me", userHandler.DeleteAccount)
			secured.GET("/me/dashboard", userHandler.Dashboard)

			// ------------------------------
			// BOOKINGS (CUSTOMER)
			// ------------------------------
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.MyBookings)
			secured.GET("/bookings/reviewable", bookingHandler.Reviewable)
			secured.GET("/bookings/:id", bookingHandler.GetByID)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)

			// ------------------------------
			// PAYMENTS
			// ------------------------------
			secured.POST("/payments/initiate", paymentHandler.Initiate)
			secured.POST("/payments/success", paymentHandler.Success)
			secured.POST("/payments/failure", paymentHandler.Failure)
			secured.GET("/payments", paymentHandler.MyPayments)

			// ------------------------------
			// REVIEWS
			// ------------------------------
			secured.POST("/reviews", reviewHandler.Create)
			secured.GET("/reviews", reviewHandler.MyReviews)
			secured.PATCH("/reviews/:id", reviewHandler.Update)
			secured.DELETE("/reviews/:id", reviewHandler.Delete)

			// ------------------------------
			// CHAT
			// ------------------------------
			secured.POST("/chat/messages", chatHandler.Send)
			secured.GET("/chat/messages", chatHandler.History)

			// ------------------------------
			// STAFF
			// ------------------------------
			staff := secured.Group("/staff")
			staff.Use(middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
			{
				staff.GET("/me", staffHandler.Profile)
				staff.PATCH("/me", staffHandler.UpdateProfile)
				staff.POST("/me/avatar", staffHandler.UploadAvatar)
				staff.GET("/me/schedule", staffHandler.GetSchedule)
				staff.PUT("/me/schedule", staffHandler.UpdateSchedule)

				staff.GET("/me/bookings", staffHandler.Bookings)
				staff.POST("/me/bookings", staffHandler.CreateBooking)
				staff.PATCH("/me/bookings/:id/status", staffHandler.UpdateBookingStatus)
				staff.PATCH("/me/bookings/:id/reschedule", staffHandler.Reschedule)
				staff.PATCH("/me/bookings/:id/notes", staffHandler.UpdateNotes)

				staff.GET("/me/clients", staffHandler.Clients)
				staff.POST("/me/reviews/:id/reply", staffHandler.ReplyToReview)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/users/:id", adminHandler.GetUser)
				admin.PATCH("/users/:id", adminHandler.UpdateUser)
				admin.PATCH("/users/:id/role", adminHandler.ChangeRole)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)

				admin.GET("/staff", adminHandler.ListStaff)
				admin.PATCH("/staff/:id", adminHandler.UpdateStaff)

				admin.GET("/services", adminHandler.ListServices)
				admin.POST("/services", adminHandler.CreateService)
				admin.PATCH("/services/:id", adminHandler.UpdateService)
				admin.DELETE("/services/:id", adminHandler.DeleteService)

				admin.GET("/bookings", adminHandler.ListBookings)
				admin.POST("/bookings", bookingHandler.AdminCreate)
				admin.PATCH("/bookings/:id/status", staffHandler.UpdateBookingStatus)
				admin.PATCH("/bookings/:id/reschedule", staffHandler.Reschedule)
				admin.GET("/reviews", adminHandler.ListReviews)
				admin.GET("/payments", adminHandler.ListPayments)

				admin.GET("/chat/conversations", chatHandler.Conversations)

				admin.GET("/reports/dashboard", reportHandler.Dashboard)
				admin.GET("/reports/revenue", reportHandler.Revenue)
				admin.GET("/reports/staff", reportHandler.StaffPerformance)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
