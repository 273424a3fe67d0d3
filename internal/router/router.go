package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/handlers"
	"github.com/gardenhub-dev/gardenhub/internal/middleware"
	"github.com/gardenhub-dev/gardenhub/internal/store"
)

func NewRouter(h *handlers.Handler, s store.Store) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     middleware.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authed := middleware.AuthMiddleware(s)
	committee := middleware.CommitteeOrManager()
	manager := middleware.ManagerOnly()

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/ws", authed, h.NotificationsWS)

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/user", authed, h.Me)
		}

		users := api.Group("/users")
		{
			users.POST("", h.Register)
			users.GET("", authed, committee, h.ListUsers)
		}

		plots := api.Group("/plots")
		{
			plots.GET("", h.ListPlots)
			plots.GET("/:id", h.GetPlot)
			plots.POST("", authed, manager, h.CreatePlot)
			plots.PUT("/:id", authed, manager, h.UpdatePlot)
		}

		applications := api.Group("/applications", authed)
		{
			applications.POST("", h.CreateApplication)
			applications.GET("", h.ListApplications)
			applications.GET("/:id", h.GetApplication)
			applications.PUT("/:id", committee, h.DecideApplication)
		}

		workdays := api.Group("/workdays")
		{
			workdays.GET("", h.ListWorkDays)
			workdays.GET("/:id", h.GetWorkDay)
			workdays.GET("/:id/attendances", h.ListWorkDayAttendances)
			workdays.POST("", authed, committee, h.CreateWorkDay)
			workdays.POST("/:id/attend", authed, h.AttendWorkDay)
			workdays.PUT("/:id/attendances/:attendance_id", authed, committee, h.UpdateAttendance)
		}

		payments := api.Group("/payments", authed)
		{
			payments.GET("", h.ListPayments)
			payments.POST("", h.CreatePayment)
			payments.PUT("/:id", h.UpdatePayment)
		}

		forum := api.Group("/forum")
		{
			forum.GET("", h.ListForumQuestions)
			forum.GET("/:id", h.GetForumQuestion)
			forum.GET("/:id/answers", h.ListForumAnswers)
			forum.POST("", authed, h.CreateForumQuestion)
			forum.POST("/:id/answers", authed, h.CreateForumAnswer)
		}

		messages := api.Group("/messages", authed)
		{
			messages.GET("", h.ListMessages)
			messages.POST("", h.CreateMessage)
			messages.PUT("/:id/read", h.MarkMessageRead)
		}

		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.POST("", authed, committee, h.CreateEvent)
		}

		notifications := api.Group("/notifications", authed)
		{
			notifications.GET("", h.ListNotifications)
			notifications.GET("/unread/count", h.UnreadNotificationCount)
			notifications.POST("", h.CreateNotification)
			notifications.PATCH("/read-all", h.MarkAllNotificationsRead)
			notifications.PATCH("/:id/read", h.MarkNotificationRead)
			notifications.DELETE("/:id", h.DeleteNotification)
		}

		api.GET("/dashboard", authed, h.Dashboard)
	}

	return r
}
