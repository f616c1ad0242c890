package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/config"
	"github.com/yukikurage/team-task-api/internal/constants"
	"github.com/yukikurage/team-task-api/internal/handlers"
	"github.com/yukikurage/team-task-api/internal/metrics"
	"github.com/yukikurage/team-task-api/internal/middleware"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the router is built from.
type Dependencies struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           *gorm.DB
	SessionStore sessions.Store
	Metrics      *metrics.Metrics
	// Drafter may be nil when no AI provider is configured.
	Drafter services.TaskDrafter
}

// NewRouter wires services, handlers and middleware into a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	store := repository.NewStore(deps.DB)
	authService := services.NewAuthService(store.Users)
	teamService := services.NewTeamService(store)
	taskService := services.NewTaskService(store, deps.Drafter, deps.Logger)
	profileService := services.NewProfileService(store.Profiles)

	authHandler := handlers.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService, deps.Metrics)
	profileHandler := handlers.NewProfileHandler(profileService, deps.Metrics)
	rpcHandler := handlers.NewRPCHandler(teamService, taskService, deps.Metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.AccessLog(deps.Logger))
	r.Use(deps.Metrics.Middleware())
	r.Use(cors.New(corsConfig(deps.Config)))
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Team Task API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	requireAuth := middleware.RequireAuth(authService)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Domain procedures
		rpc := api.Group("/rpc")
		rpc.Use(requireAuth)
		{
			rpc.POST("/create_team", rpcHandler.CreateTeam)
			rpc.POST("/join_team", rpcHandler.JoinTeam)
			rpc.POST("/set_task_status", rpcHandler.SetTaskStatus)
		}

		profile := api.Group("/profile")
		profile.Use(requireAuth)
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpsertProfile)
		}

		teams := api.Group("/teams")
		teams.Use(requireAuth)
		{
			teams.GET("", teamHandler.ListTeams)

			team := teams.Group("/:id")
			team.Use(middleware.RequireTeamAccess(teamService))
			{
				team.GET("", teamHandler.GetTeam)
				team.GET("/tasks", taskHandler.ListTasks)
				team.POST("/tasks", taskHandler.CreateTask)
				team.POST("/tasks/generate", taskHandler.GenerateTasks)
			}
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	corsconfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsconfig.AllowAllOrigins = true
	} else {
		corsconfig.AllowOrigins = cfg.AllowedOrigins
		corsconfig.AllowCredentials = true
	}
	corsconfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsconfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsconfig.MaxAge = 12 * time.Hour
	return corsconfig
}
