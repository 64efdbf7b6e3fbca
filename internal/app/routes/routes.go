package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yigit/benchtrack/internal/app/controllers"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/middleware"
	"github.com/yigit/benchtrack/internal/pkg/ratelimit"
	"github.com/yigit/benchtrack/internal/pkg/websocket"
)

// Controllers groups every HTTP controller the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	Consultant   *controllers.ConsultantController
	Opportunity  *controllers.OpportunityController
	Attendance   *controllers.AttendanceController
	Resume       *controllers.ResumeController
	Training     *controllers.TrainingController
	Report       *controllers.ReportController
	Dashboard    *controllers.DashboardController
	Notification *controllers.NotificationController
}

// Options holds the optional pieces of the router
type Options struct {
	// Limiter throttles the public auth and upload routes; nil disables it
	Limiter     *ratelimit.Limiter
	MetricsPath string
	WSHandler   *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware, opts Options) {
	throttle := func(ctx *gin.Context) { ctx.Next() }
	if opts.Limiter != nil {
		throttle = middleware.RateLimit(opts.Limiter)
	}

	// --- Operations ---
	router.GET("/health", c.Dashboard.Health)
	router.GET("/ping", c.Dashboard.Ping)
	if opts.MetricsPath != "" {
		router.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	v1.GET("/health", c.Dashboard.Health)

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	auth.Use(throttle)
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	admin := authMiddleware.RoleRequired(models.RoleAdmin)

	authenticated.POST("/auth/logout", c.Auth.Logout)
	authenticated.GET("/auth/me", c.Auth.Me)

	consultants := authenticated.Group("/consultants")
	{
		consultants.GET("", c.Consultant.ListConsultants)
		consultants.GET("/me/dashboard", c.Consultant.GetMyDashboard)
		consultants.GET("/dashboard/:email", c.Consultant.GetDashboardByEmail)
		consultants.GET("/:id", c.Consultant.GetConsultant)
		consultants.GET("/:id/applications", c.Consultant.ListApplications)

		consultants.POST("/:id/resume", throttle, c.Resume.UploadResume)
		consultants.GET("/:id/resume-analysis", c.Resume.GetAnalysis)

		consultants.GET("/:id/training-dashboard", c.Training.GetDashboard)
		consultants.GET("/:id/training/recommendations", c.Training.GetRecommendations)
		consultants.GET("/:id/training/skill-gaps", c.Training.GetSkillGaps)
		consultants.GET("/:id/training/development-plan", c.Training.GetDevelopmentPlan)
		consultants.GET("/:id/training/enrollments", c.Training.ListEnrollments)
		consultants.POST("/:id/training/enrollments", c.Training.Enroll)

		consultants.GET("/:id/report", c.Report.GenerateReport)

		consultantsAdmin := consultants.Group("")
		consultantsAdmin.Use(admin)
		{
			consultantsAdmin.POST("", c.Consultant.CreateConsultant)
			consultantsAdmin.PUT("/:id", c.Consultant.UpdateConsultant)
			consultantsAdmin.DELETE("/:id", c.Consultant.DeleteConsultant)
		}
	}

	opportunities := authenticated.Group("/opportunities")
	{
		opportunities.GET("", c.Opportunity.ListOpportunities)
		opportunities.GET("/:id", c.Opportunity.GetOpportunity)
		opportunities.POST("/:id/apply", c.Opportunity.Apply)

		opportunitiesAdmin := opportunities.Group("")
		opportunitiesAdmin.Use(admin)
		{
			opportunitiesAdmin.GET("/with-applications", c.Opportunity.ListWithApplications)
			opportunitiesAdmin.POST("", c.Opportunity.CreateOpportunity)
			opportunitiesAdmin.PUT("/:id", c.Opportunity.UpdateOpportunity)
			opportunitiesAdmin.DELETE("/:id", c.Opportunity.DeleteOpportunity)
			opportunitiesAdmin.GET("/:id/matches", c.Opportunity.MatchConsultants)
		}
	}

	applications := authenticated.Group("/applications")
	applications.Use(admin)
	{
		applications.POST("/:id/accept", c.Opportunity.AcceptApplication)
		applications.POST("/:id/decline", c.Opportunity.DeclineApplication)
	}

	attendance := authenticated.Group("/attendance")
	{
		attendance.POST("", c.Attendance.RecordAttendance)
		attendance.GET("", c.Attendance.ListAttendance)
		attendance.PUT("/:id", c.Attendance.UpdateAttendance)
		attendance.GET("/summary/:userId", c.Attendance.GetSummary)
		attendance.POST("/chat", c.Attendance.Chat)
	}

	trainingGroup := authenticated.Group("/training")
	{
		trainingGroup.GET("/catalog", c.Training.GetCatalog)
		trainingGroup.PUT("/enrollments/:id/progress", c.Training.UpdateProgress)
	}

	authenticated.GET("/dashboard/metrics", admin, c.Dashboard.GetMetrics)

	notifications := authenticated.Group("/notifications")
	notifications.Use(admin)
	{
		notifications.GET("", c.Notification.ListNotifications)
		notifications.POST("/:id/read", c.Notification.MarkRead)
		if opts.WSHandler != nil {
			notifications.GET("/ws", opts.WSHandler.HandleConnection)
		}
	}
}
