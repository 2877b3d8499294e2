package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unidesk/consult-scheduler/internal/calendar"
	"github.com/unidesk/consult-scheduler/internal/config"
	"github.com/unidesk/consult-scheduler/internal/handlers"
	infraRepo "github.com/unidesk/consult-scheduler/internal/infra/repository"
	"github.com/unidesk/consult-scheduler/internal/middleware"
	"github.com/unidesk/consult-scheduler/internal/notify"
	ucConsultation "github.com/unidesk/consult-scheduler/internal/usecase/consultation"
)

// Deps are the singletons main constructs; routes only wire them to
// handlers.
type Deps struct {
	DB           *gorm.DB
	Config       *config.Config
	Logger       *zap.Logger
	Dispatcher   *notify.Dispatcher
	Synchronizer *calendar.Synchronizer
	Consults     *infraRepo.ConsultationGormRepository
	Notifs       *infraRepo.NotificationGormRepository
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ------------------------------------------------------
	// use cases
	// ------------------------------------------------------
	tz := d.Config.CampusTimezone

	bookUC := ucConsultation.NewBookConsultation(d.Consults, d.Dispatcher, tz)
	confirmUC := ucConsultation.NewConfirmConsultation(d.Consults, d.Synchronizer, d.Dispatcher, tz, d.Logger)
	cancelUC := ucConsultation.NewCancelConsultation(d.Consults, d.Synchronizer, d.Dispatcher, tz, d.Logger)
	rescheduleUC := ucConsultation.NewRescheduleConsultation(d.Consults, d.Synchronizer, d.Dispatcher, tz, d.Logger)
	completeUC := ucConsultation.NewCompleteConsultation(d.Consults)
	noShowUC := ucConsultation.NewMarkNoShow(d.Consults)
	rateUC := ucConsultation.NewRateConsultation(d.Consults)
	notesUC := ucConsultation.NewAddNotes(d.Consults)
	availabilityUC := ucConsultation.NewGetAvailability(d.Consults, tz)

	// ------------------------------------------------------
	// handlers
	// ------------------------------------------------------
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	consultationHandler := handlers.NewConsultationHandler(
		bookUC,
		confirmUC,
		cancelUC,
		rescheduleUC,
		completeUC,
		noShowUC,
		rateUC,
		notesUC,
		d.Consults,
	)
	professorHandler := handlers.NewProfessorHandler(d.DB, availabilityUC, tz)
	notificationHandler := handlers.NewNotificationHandler(d.Notifs)

	// ------------------------------------------------------
	// routes
	// ------------------------------------------------------
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	professors := api.Group("/professors")
	{
		// Availability lookup is public so students can browse before
		// authenticating.
		professors.GET("", professorHandler.List)
		professors.GET("/:id/availability", professorHandler.Availability)

		professors.PUT(
			"/me/availability",
			middleware.AuthMiddleware(d.Config),
			middleware.RequireProfessor(),
			professorHandler.UpdateAvailability,
		)
	}

	consultations := api.Group("/consultations", middleware.AuthMiddleware(d.Config))
	{
		consultations.POST("", middleware.RequireStudent(), consultationHandler.Book)
		consultations.GET("", consultationHandler.List)
		consultations.GET("/:id", consultationHandler.Get)

		consultations.PATCH("/:id/confirm", middleware.RequireProfessor(), consultationHandler.Confirm)
		consultations.PATCH("/:id/cancel", consultationHandler.Cancel)
		consultations.PATCH("/:id/reschedule", consultationHandler.Reschedule)
		consultations.PATCH("/:id/complete", middleware.RequireProfessor(), consultationHandler.Complete)
		consultations.PATCH("/:id/no-show", middleware.RequireProfessor(), consultationHandler.NoShow)

		consultations.POST("/:id/rate", middleware.RequireStudent(), consultationHandler.Rate)
		consultations.POST("/:id/notes", middleware.RequireProfessor(), consultationHandler.Notes)
	}

	notifications := api.Group("/notifications", middleware.AuthMiddleware(d.Config))
	{
		notifications.GET("", notificationHandler.List)
		notifications.PATCH("/:id/read", notificationHandler.MarkRead)
	}
}
