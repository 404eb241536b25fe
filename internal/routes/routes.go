package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonhub/salon-scheduler/internal/audit"
	"github.com/salonhub/salon-scheduler/internal/auth"
	"github.com/salonhub/salon-scheduler/internal/config"
	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/handlers"
	"github.com/salonhub/salon-scheduler/internal/infra/repository"
	"github.com/salonhub/salon-scheduler/internal/middleware"
	"github.com/salonhub/salon-scheduler/internal/notify"
	"github.com/salonhub/salon-scheduler/internal/timezone"
	usecase "github.com/salonhub/salon-scheduler/internal/usecase/appointment"
)

func Setup(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	revoker auth.TokenRevoker,
) {
	r.Use(middleware.CORSMiddleware())

	// ------------------------------------------------------
	// Wiring
	// ------------------------------------------------------

	repo := repository.NewAppointmentGormRepository(db)
	notifier := notify.NewDispatcher(notify.NewStore(db))
	auditDispatcher := audit.NewDispatcher(audit.New(db))

	createUC := usecase.NewCreateAppointment(repo, notifier, auditDispatcher)
	updateStatusUC := usecase.NewUpdateStatus(repo, notifier, auditDispatcher)
	cancelUC := usecase.NewCancelAppointment(repo, notifier, auditDispatcher)
	rescheduleUC := usecase.NewRescheduleAppointment(repo, notifier, auditDispatcher)
	availabilityUC := usecase.NewGetAvailability(repo)
	listByDateUC := usecase.NewListAppointmentsByDate(repo)
	listByMonthUC := usecase.NewListAppointmentsByMonth(repo)
	summaryUC := usecase.NewGetAppointmentSummary(repo)

	authHandler := handlers.NewAuthHandler(db, cfg, revoker)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	slotHandler := handlers.NewSlotHandler(availabilityUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createUC,
		updateStatusUC,
		cancelUC,
		rescheduleUC,
		listByDateUC,
		listByMonthUC,
		summaryUC,
		repo,
	)
	notificationHandler := handlers.NewNotificationHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ------------------------------------------------------
	// Public
	// ------------------------------------------------------

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   timezone.NowIn(cfg.DefaultTimezone),
		})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	api.GET("/salons", salonHandler.List)
	api.GET("/salons/:id", salonHandler.Get)
	api.GET("/salons/:id/services", serviceHandler.ListBySalon)
	api.GET("/salons/:id/staff", staffHandler.ListBySalon)
	api.GET("/slots", slotHandler.GetAvailability)

	// ------------------------------------------------------
	// Authenticated
	// ------------------------------------------------------

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg, revoker))
	{
		authed.POST("/auth/logout", authHandler.Logout)

		authed.GET("/me", meHandler.Get)
		authed.PUT("/me", meHandler.Update)

		authed.GET("/me/notifications", notificationHandler.List)
		authed.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)
		authed.PATCH("/me/notifications/read-all", notificationHandler.MarkAllRead)

		// -------- Appointments --------

		authed.POST("/appointments",
			middleware.RequireRole(string(domain.RoleCustomer)),
			appointmentHandler.Create,
		)
		authed.GET("/appointments/mine",
			middleware.RequireRole(string(domain.RoleCustomer)),
			appointmentHandler.ListMine,
		)
		authed.GET("/appointments/:id", appointmentHandler.Get)
		authed.PATCH("/appointments/:id/status",
			middleware.RequireRole(
				string(domain.RoleOwner),
				string(domain.RoleStaff),
				string(domain.RoleAdmin),
			),
			appointmentHandler.UpdateStatus,
		)
		authed.PATCH("/appointments/:id/no-show",
			middleware.RequireRole(
				string(domain.RoleOwner),
				string(domain.RoleStaff),
				string(domain.RoleAdmin),
			),
			appointmentHandler.NoShow,
		)
		authed.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		authed.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

		// -------- Owner salon management --------

		owner := authed.Group("/me/salon")
		owner.Use(middleware.RequireRole(string(domain.RoleOwner)))
		{
			owner.GET("", salonHandler.GetMine)
			owner.PUT("", salonHandler.UpdateMine)

			owner.PUT("/operating-hours", salonHandler.PutOperatingHours)
			owner.GET("/booking-settings", salonHandler.GetBookingSettings)
			owner.PUT("/booking-settings", salonHandler.PutBookingSettings)

			owner.GET("/services", serviceHandler.ListMine)
			owner.POST("/services", serviceHandler.Create)
			owner.PUT("/services/:id", serviceHandler.Update)
			owner.DELETE("/services/:id", serviceHandler.Delete)

			owner.GET("/staff", staffHandler.ListMine)
			owner.POST("/staff", staffHandler.Create)
			owner.PUT("/staff/:id", staffHandler.Update)
			owner.DELETE("/staff/:id", staffHandler.Delete)

			owner.GET("/appointments", appointmentHandler.ListByDate)
			owner.GET("/appointments/month", appointmentHandler.ListByMonth)
			owner.GET("/appointments/summary", appointmentHandler.Summary)

			owner.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
