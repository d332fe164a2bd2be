package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/studyhelper-dev/studyhelper/internal/handlers"
	"github.com/studyhelper-dev/studyhelper/internal/middleware"
	"github.com/studyhelper-dev/studyhelper/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		courses := api.Group("/courses", middleware.AuthMiddleware())
		{
			courses.POST("", handlers.CreateCourse)
			courses.GET("", handlers.ListCourses)
			courses.PATCH("/:course_id", handlers.UpdateCourse)
			courses.DELETE("/:course_id", handlers.DeleteCourse)

			courses.GET("/:course_id/notes", handlers.GetCourseNotes)
			courses.GET("/:course_id/tasks", handlers.GetCourseTasks)
		}

		notes := api.Group("/notes", middleware.AuthMiddleware())
		{
			notes.POST("", handlers.CreateNote)
			notes.PATCH("/:note_id", handlers.UpdateNote)
			notes.DELETE("/:note_id", handlers.DeleteNote)

			// Note-task links
			notes.POST("/:note_id/tasks", handlers.LinkTask)
			notes.DELETE("/:note_id/tasks/:task_id", handlers.UnlinkTask)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.POST("", handlers.CreateTask)
			tasks.PATCH("/:task_id", handlers.UpdateTask)
			tasks.DELETE("/:task_id", handlers.DeleteTask)

			// Cross-course views
			tasks.GET("/today", handlers.TodayTasks)
			tasks.GET("/week", handlers.WeekTasks)
			tasks.GET("/upcoming", handlers.UpcomingTasks)
		}
	}

	return r
}
