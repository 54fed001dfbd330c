package api

import (
	"stocktracker/internal/middleware" // JWT and admin middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// SetupRouter registers every route on a gin engine. Protected groups run
// the JWT middleware and carry the Redis client for write-path cache
// invalidation.
func SetupRouter(r *gin.Engine, db *gorm.DB, rdb *redis.Client, jwtSecret, jwtIssuer, jwtAudience string) {
	// Middleware shared by the protected groups
	auth := middleware.JWTAuthMiddleware(jwtSecret, jwtIssuer, jwtAudience)
	// Inject the Redis client so write handlers can invalidate caches
	withRedis := func(c *gin.Context) {
		c.Set("redisClient", rdb)
		c.Next()
	}

	// Account routes (public)
	account := r.Group("/api/account")
	account.POST("/register", RegisterHandler(db, jwtSecret, jwtIssuer, jwtAudience)) // Registration endpoint
	account.POST("/login", LoginHandler(db, jwtSecret, jwtIssuer, jwtAudience))       // Login endpoint

	// Stock routes: the catalog is public to read, protected to mutate
	stock := r.Group("/api/stock")
	stock.GET("", ListStocksHandler(db, rdb)) // Catalog list, ?symbol= for lookup
	stock.GET("/:id", GetStockHandler(db))    // Single stock by id
	stockAuth := stock.Group("")
	stockAuth.Use(auth, withRedis)
	stockAuth.POST("", CreateStockHandler(db))       // Create stock endpoint
	stockAuth.PUT("/:id", UpdateStockHandler(db))    // Update stock endpoint
	stockAuth.DELETE("/:id", DeleteStockHandler(db)) // Delete stock endpoint

	// Comment routes: reads public, writes require the authenticated author
	comment := r.Group("/api/comment")
	comment.GET("", ListCommentsHandler(db))   // All comments
	comment.GET("/:id", GetCommentHandler(db)) // Single comment by id
	commentAuth := comment.Group("")
	commentAuth.Use(auth)
	commentAuth.POST("/:id", CreateCommentHandler(db))   // Create comment, path id is the stock id
	commentAuth.PUT("/:id", UpdateCommentHandler(db))    // Update comment endpoint
	commentAuth.DELETE("/:id", DeleteCommentHandler(db)) // Delete comment endpoint

	// Portfolio routes (protected): always scoped to the acting identity
	portfolio := r.Group("/api/portfolio")
	portfolio.Use(auth, withRedis)
	portfolio.GET("", GetPortfolioHandler(db, rdb))  // Portfolio read endpoint
	portfolio.POST("", AddPortfolioHandler(db))      // Add by ?symbol=
	portfolio.DELETE("", RemovePortfolioHandler(db)) // Remove by ?symbol=

	// Admin routes (protected, admin only)
	admin := r.Group("/api/admin")
	admin.Use(auth, middleware.AdminOnlyMiddleware(db))
	admin.GET("/users", ListUsersHandler(db, rdb)) // List users endpoint
}
