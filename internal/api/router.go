package api

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/auth"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/cache"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/chat"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/content"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/db"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/feed"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/profile"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/search"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/social"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/config"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/logging"
)

// Router wires services into the HTTP surface
type Router struct {
	db    *db.DB
	cache *cache.Cache

	auth          *auth.Service
	selector      *feed.Selector
	social        *social.Service
	content       *content.Service
	profile       *profile.Service
	search        *search.Service
	chat          *chat.Service
	notifications *db.NotificationRepository

	rateLimiter *RateLimiter
	logger      *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, cfg *config.Config) *Router {
	repo := db.NewRepository(database.DB)
	resolver := feed.NewResolver(db.NewFollowRepository(repo), db.NewBlockRepository(repo))
	notifier := social.NewNotifier(repo)

	return &Router{
		db:            database,
		cache:         redisCache,
		auth:          auth.NewService(repo, &cfg.Auth),
		selector:      feed.NewSelector(db.NewPostRepository(repo), resolver),
		social:        social.NewService(repo, notifier),
		content:       content.NewService(repo, notifier),
		profile:       profile.NewService(repo, resolver, cfg.Auth.BcryptCost),
		search:        search.NewService(repo, redisCache),
		chat:          chat.NewService(repo),
		notifications: db.NewNotificationRepository(repo),
		rateLimiter:   NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst),
		logger:        logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(gin.Recovery())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(RequestLogger())
	engine.Use(r.rateLimiter.Middleware())

	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	api := engine.Group("/api")

	api.POST("/auth/register", r.register)
	api.POST("/auth/login", r.login)

	public := api.Group("", OptionalAuth(r.auth))
	public.GET("/feed/first-two", r.feedFirstTwo)
	public.GET("/feed/random", r.feedRandom)
	public.GET("/posts/:id", r.getPost)
	public.GET("/posts/:id/comments", r.listComments)
	public.GET("/profile/:id", r.getProfile)
	public.GET("/profile/:id/followers", r.listFollowers)
	public.GET("/profile/:id/following", r.listFollowing)
	public.GET("/search/posts", r.searchPosts)
	public.GET("/search/users", r.searchUsers)

	private := api.Group("", RequireAuth(r.auth))
	private.POST("/social/follow", r.follow)
	private.DELETE("/social/follow", r.unfollow)
	private.POST("/social/block", r.block)
	private.DELETE("/social/block", r.unblock)
	private.GET("/social/mutuals", r.listMutuals)

	private.POST("/posts", r.createPost)
	private.POST("/posts/:id/comments", r.createComment)
	private.POST("/posts/:id/like", r.likePost)
	private.DELETE("/posts/:id/like", r.unlikePost)
	private.GET("/posts/:id/liked", r.postLiked)
	private.PUT("/comments/:id", r.updateComment)
	private.DELETE("/comments/:id", r.deleteComment)
	private.POST("/comments/:id/like", r.likeComment)
	private.DELETE("/comments/:id/like", r.unlikeComment)

	private.PUT("/profile/name", r.updateName)
	private.PUT("/profile/story", r.updateStory)
	private.PUT("/profile/avatar", r.updateAvatar)
	private.PUT("/profile/password", r.changePassword)

	private.GET("/notifications", r.listNotifications)
	private.GET("/notifications/unread-count", r.unreadCount)
	// literal and wildcard segments cannot share a position in gin's
	// route tree, hence read/:id rather than :id/read
	private.PUT("/notifications/read/:id", r.markNotificationRead)
	private.PUT("/notifications/read-all", r.markAllNotificationsRead)
	private.DELETE("/notifications/:id", r.deleteNotification)

	private.GET("/chat/conversations/:peer", r.conversation)
	private.GET("/chat/messages", r.allMessages)
	private.POST("/chat/messages", r.sendMessage)
	private.POST("/chat/share", r.sharePost)
	private.PUT("/chat/read/:peer", r.markConversationRead)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	if err := r.db.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DEGRADED",
			"service": "sportsnet-api",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "sportsnet-api",
	})
}
