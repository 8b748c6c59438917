package api

import (
	"examprep/internal/auth"
	"examprep/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRouter(cfg *config.Config, rdb *redis.Client) *gin.Engine {
	r := gin.Default()
	subpath := cfg.Server.Subpath // e.g. "/examprep" or any custom path, always starts with '/'

	group := r.Group(subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		// Setup: only if no users
		group.POST("/setup", SetupHandler())

		// Auth
		group.POST("/auth/login", LoginHandler(cfg, rdb))
		group.POST("/auth/logout", auth.AuthMiddleware(cfg, rdb, false), LogoutHandler(rdb))
		group.GET("/auth/me", auth.AuthMiddleware(cfg, rdb, false), MeHandler())

		// Admin: users
		group.GET("/users", auth.AuthMiddleware(cfg, rdb, true), ListUsersHandler())
		group.POST("/users", auth.AuthMiddleware(cfg, rdb, true), CreateUserHandler())

		// User self-service
		group.GET("/users/me", auth.AuthMiddleware(cfg, rdb, false), GetMeHandler())
		group.PUT("/users/me", auth.AuthMiddleware(cfg, rdb, false), UpdateMeHandler())
		group.DELETE("/users/me", auth.AuthMiddleware(cfg, rdb, false), DeleteMeHandler())

		// Admin: user by id
		group.GET("/users/:id", auth.AuthMiddleware(cfg, rdb, true), GetUserByIdHandler())
		group.PUT("/users/:id", auth.AuthMiddleware(cfg, rdb, true), UpdateUserByIdHandler())
		group.DELETE("/users/:id", auth.AuthMiddleware(cfg, rdb, true), DeleteUserByIdHandler())

		// --- Online users count ---
		group.GET("/users/online", OnlineUserCountHandler(rdb))

		// --- Paper catalog browse and search ---
		group.GET("/papers/:level", ListPapersHandler())
		group.GET("/papers/:level/search", SearchPapersHandler())

		// --- Resource URL resolution ---
		group.GET("/resources/:level/:category/:seg3", GetLegacyResourceHandler())
		group.GET("/resources/:level/:category/:seg3/:slug", GetResourceHandler())

		// --- Study goals ---
		group.POST("/goals", auth.AuthMiddleware(cfg, rdb, false), CreateGoalHandler())
		group.GET("/goals", auth.AuthMiddleware(cfg, rdb, false), ListGoalsHandler())
		group.GET("/goals/:id", auth.AuthMiddleware(cfg, rdb, false), GetGoalHandler())
		group.PUT("/goals/:id", auth.AuthMiddleware(cfg, rdb, false), UpdateGoalHandler())
		group.DELETE("/goals/:id", auth.AuthMiddleware(cfg, rdb, false), DeleteGoalHandler())

		// --- Vocabulary drills ---
		group.GET("/vocab/drill", auth.AuthMiddleware(cfg, rdb, false), VocabDrillHandler())
		group.POST("/vocab/review", auth.AuthMiddleware(cfg, rdb, false), VocabReviewHandler())

		// --- Study plans ---
		group.POST("/plans", auth.AuthMiddleware(cfg, rdb, false), CreatePlanHandler(cfg))
		group.GET("/plans", auth.AuthMiddleware(cfg, rdb, false), ListPlansHandler())
		group.GET("/plans/:id", auth.AuthMiddleware(cfg, rdb, false), GetPlanHandler())

		// --- Streaming WebSocket endpoint ---
		group.GET("/ws/plans", WSPlanHandler(cfg))
	}
	return r
}
