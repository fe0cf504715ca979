package app

import (
	"github.com/lluuk/tweeter-api/internal/auth"
	"github.com/lluuk/tweeter-api/internal/config"
	"github.com/lluuk/tweeter-api/internal/handlers"
	"github.com/lluuk/tweeter-api/internal/repo"
	"github.com/lluuk/tweeter-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *mongo.Database, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())

	accountRepo := repo.NewMongoAccountRepo(db)
	accountSvc := service.NewAccountService(accountRepo)
	accountHandler := handlers.NewAccountHandler(sessionStore, accountSvc)

	tweetRepo := repo.NewMongoTweetRepo(db)
	tweetSvc := service.NewTweetService(tweetRepo, accountRepo)
	tweetHandler := handlers.NewTweetHandler(tweetSvc)

	r.POST("/signup", accountHandler.Signup)
	r.POST("/login", accountHandler.Login)

	protected := r.Group("", auth.RequireSession(sessionStore))
	registerAccountRoutes(protected, accountHandler)
	registerTweetRoutes(protected, tweetHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Tweeter API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"health":  "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func registerAccountRoutes(g *gin.RouterGroup, h *handlers.AccountHandler) {
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)
	g.GET("/users/:id", h.GetUser)
	g.POST("/follow/:id", h.Follow)
	g.DELETE("/follow/:id", h.Unfollow)
}

func registerTweetRoutes(g *gin.RouterGroup, h *handlers.TweetHandler) {
	g.POST("/tweet", h.Create)
	g.GET("/tweets", h.List)
	g.GET("/tweet/:id", h.Get)
	g.PATCH("/tweet/:id", h.Update)
	g.DELETE("/tweet/:id", h.Delete)
	g.POST("/tweet/:id/comment", h.AddComment)
	g.PATCH("/tweet/:id/comment/:commentId", h.UpdateComment)
	g.DELETE("/tweet/:id/comment/:commentId", h.RemoveComment)
}
