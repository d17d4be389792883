package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/khwelo/classward/config"
	"github.com/khwelo/classward/database"
	_ "github.com/khwelo/classward/docs" // Swagger docs - auto-generated
	learnerctrl "github.com/khwelo/classward/internal/controller/learner"
	teacherctrl "github.com/khwelo/classward/internal/controller/teacher"
	"github.com/khwelo/classward/internal/logger"
	"github.com/khwelo/classward/internal/middleware"
	"github.com/khwelo/classward/internal/model"
	"github.com/khwelo/classward/internal/repository"
	"github.com/khwelo/classward/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Classward Assessment API
// @version 1.0
// @description Assessment lifecycle, audience resolution and scoring for the Classward tutoring platform.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			service.NewSystemClock,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewAssessmentRepository,
			repository.NewReviewRepository,
			repository.NewResponseRepository,
			repository.NewMembershipRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAudienceService,
			service.NewScheduleService,
			service.NewScoringService,
			service.NewAssessmentService,
			service.NewReviewService,
			service.NewResponseService,
			service.NewLearnerService,
			service.NewReportService,
			service.NewLogDispatcher,
			service.NewReminderService,
			func(
				assessmentRepo repository.AssessmentRepository,
				reminders service.ReminderService,
				schedule service.ScheduleService,
				clock service.Clock,
				cfg *config.Config,
			) *service.ReminderScheduler {
				return service.NewReminderScheduler(
					assessmentRepo, reminders, schedule, clock,
					time.Duration(cfg.Reminder.SweepHours)*time.Hour,
					cfg.Reminder.LeadDays,
				)
			},
		),

		// API Controllers Layer
		fx.Provide(
			teacherctrl.NewTeacherController,
			learnerctrl.NewLearnerController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(StartReminderScheduler),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	teacherCtrl *teacherctrl.TeacherController,
	learnerCtrl *learnerctrl.LearnerController,
) {
	// Teacher routes (prefixed with /api/v1/teacher)
	teacherGroup := router.Group("/api/v1/teacher")
	{
		reviewsGroup := teacherGroup.Group("/reviews")
		reviewsGroup.POST("", teacherCtrl.CreateReview)
		reviewsGroup.GET("/:review_id", teacherCtrl.GetReview)
		reviewsGroup.PUT("/:review_id", teacherCtrl.UpdateReview)

		assessmentsGroup := teacherGroup.Group("/assessments")
		assessmentsGroup.POST("", teacherCtrl.CreateAssessment)
		assessmentsGroup.GET("", teacherCtrl.ListAssessments)
		assessmentsGroup.PUT("/:assessment_id/reschedule", teacherCtrl.Reschedule)
		assessmentsGroup.POST("/:assessment_id/send-now", teacherCtrl.SendNow)
		assessmentsGroup.POST("/:assessment_id/cancel", teacherCtrl.Cancel)
		assessmentsGroup.GET("/:assessment_id/report", teacherCtrl.GetReport)
		assessmentsGroup.POST("/:assessment_id/reminders", teacherCtrl.SendReminders)

		teacherGroup.PUT("/responses/:response_id/feedback", teacherCtrl.AttachFeedback)
	}

	// Learner routes (prefixed with /api/v1)
	learnerGroup := router.Group("/api/v1")
	{
		learnerGroup.GET("/learners/:learner_id/assessments", learnerCtrl.ListAssessments)
		learnerGroup.GET("/learners/:learner_id/reviews/:review_id/response", learnerCtrl.GetResponse)

		learnerGroup.GET("/assessments/:assessment_id", learnerCtrl.GetAssessment)
		learnerGroup.PUT("/assessments/:assessment_id/progress", learnerCtrl.SaveProgress)
		learnerGroup.POST("/assessments/:assessment_id/submit", learnerCtrl.Submit)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Classward Assessment API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Review{},
		&model.Question{},
		&model.Assessment{},
		&model.LearnerResponse{},
		&model.ClassroomMembership{},
		&model.GroupMembership{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func StartReminderScheduler(lc fx.Lifecycle, scheduler *service.ReminderScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}
