package routes

import (
	"mediconnect-server/internal/config"
	"mediconnect-server/internal/handlers"
	"mediconnect-server/internal/middleware"
	"mediconnect-server/internal/models"
	"mediconnect-server/internal/scheduler"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, sched *scheduler.Scheduler, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	doctorHandler := handlers.NewDoctorHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(sched)
	prescriptionHandler := handlers.NewPrescriptionHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			// Self-registration creates a patient account
			authRoutes.POST("/register", patientHandler.CreatePatient)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/me", authHandler.Me)
		}

		// Doctor management (listing open to all authenticated users)
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetDoctors)
			doctorRoutes.GET("/:id", doctorHandler.GetDoctorByID)

			adminDoctorRoutes := doctorRoutes.Group("")
			adminDoctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminDoctorRoutes.POST("", doctorHandler.CreateDoctor)
				adminDoctorRoutes.PUT("/:id", doctorHandler.UpdateDoctor)
				adminDoctorRoutes.DELETE("/:id", doctorHandler.DeleteDoctor)
			}
		}

		// Patient management
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)

			adminPatientRoutes := patientRoutes.Group("")
			adminPatientRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminPatientRoutes.POST("", patientHandler.CreatePatient)
				adminPatientRoutes.GET("", patientHandler.GetPatients)
				adminPatientRoutes.DELETE("/:id", patientHandler.DeletePatient)
			}
		}

		// Appointment scheduling
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAllAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.PUT("/:id/cancel", appointmentHandler.CancelAppointment)
			appointmentRoutes.PUT("/:id/complete", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), appointmentHandler.CompleteAppointment)
			appointmentRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), appointmentHandler.DeleteAppointment)

			appointmentRoutes.GET("/doctor/:doctorId", appointmentHandler.GetAppointmentsByDoctor)
			appointmentRoutes.GET("/doctor/:doctorId/upcoming", appointmentHandler.GetUpcomingAppointmentsByDoctor)
			appointmentRoutes.GET("/doctor/:doctorId/status/:status", appointmentHandler.GetAppointmentsByDoctorAndStatus)
			appointmentRoutes.GET("/doctor/:doctorId/date/:date", appointmentHandler.GetAppointmentsByDoctorAndDate)
			appointmentRoutes.GET("/doctor/:doctorId/date/:date/queue", appointmentHandler.GetDayQueue)
			appointmentRoutes.GET("/patient/:patientId", appointmentHandler.GetAppointmentsByPatient)
			appointmentRoutes.GET("/patient/:patientId/upcoming", appointmentHandler.GetUpcomingAppointmentsByPatient)
			appointmentRoutes.GET("/patient/:patientId/status/:status", appointmentHandler.GetAppointmentsByPatientAndStatus)
		}

		// Prescriptions
		prescriptionRoutes := private.Group("/prescriptions")
		{
			prescriptionRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.CreatePrescription)
			prescriptionRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), prescriptionHandler.GetPrescriptions)
			prescriptionRoutes.GET("/:id", prescriptionHandler.GetPrescriptionByID)
			prescriptionRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), prescriptionHandler.UpdatePrescription)
			prescriptionRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), prescriptionHandler.DeletePrescription)

			prescriptionRoutes.GET("/doctor/:doctorId", prescriptionHandler.GetPrescriptionsByDoctor)
			prescriptionRoutes.GET("/patient/:patientId", prescriptionHandler.GetPrescriptionsByPatient)
			prescriptionRoutes.GET("/patient/:patientId/doctor/:doctorId", prescriptionHandler.GetPrescriptionsByPatientAndDoctor)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
