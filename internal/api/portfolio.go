package api

import (
	"context"                      // Context for Redis operations
	"net/http"                     // HTTP status codes
	"stocktracker/internal/domain" // Importing domain models
	"stocktracker/internal/utils"  // Utility functions
	"strconv"                      // String conversion
	"strings"                      // String manipulation
	"time"                         // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// portfolioCacheKey builds the per-user portfolio cache key
func portfolioCacheKey(userID uint) string {
	return "portfolio:user:" + strconv.Itoa(int(userID))
}

// userPortfolioStocks returns exactly the stocks joined to the user's
// portfolio rows
func userPortfolioStocks(db *gorm.DB, userID uint) ([]domain.Stock, error) {
	var stocks []domain.Stock
	// Join through the portfolios link table, scoped to the acting user
	err := db.Model(&domain.Stock{}).
		Joins("JOIN portfolios ON portfolios.stock_id = stocks.id").
		Where("portfolios.user_id = ?", userID).
		Find(&stocks).Error
	return stocks, err
}

// GetPortfolioHandler returns the authenticated user's portfolio stocks
func GetPortfolioHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()                               // Context for Redis operations
		cacheKey := portfolioCacheKey(userID.(uint))              // Per-user cache key
		var cached []domain.Stock                                 // Cached portfolio
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached) // Try the cache first
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached portfolio
			return
		}
		// If not in cache, fetch from the store
		stocks, err := userPortfolioStocks(db, userID.(uint))
		if err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, stocks, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, stocks)                                  // Return the portfolio
	}
}

// AddPortfolioHandler links a stock, resolved by symbol, to the
// authenticated user's portfolio
func AddPortfolioHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		symbol := c.Query("symbol") // Requested symbol
		if symbol == "" {
			// A symbol must be supplied
			c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
			return
		}
		// The symbol must resolve to an existing stock
		stock, err := findStockBySymbol(db, symbol)
		if err != nil {
			// If no stock matches, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock not found"})
			return
		}
		// Pre-check for a duplicate entry to produce a clean error; the
		// composite primary key remains the authoritative guard
		var count int64
		if err := db.Model(&domain.Portfolio{}).
			Where("user_id = ? AND stock_id = ?", userID, stock.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check portfolio"})
			return
		}
		if count > 0 {
			// Duplicate entries are rejected
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add duplicate stock to portfolio"})
			return
		}
		// Insert the link row for the acting user
		portfolio := domain.Portfolio{UserID: userID.(uint), StockID: stock.ID}
		if err := db.Create(&portfolio).Error; err != nil {
			// Two concurrent adds can race past the pre-check; the composite
			// key rejects the loser, which is still a duplicate to the caller
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add duplicate stock to portfolio"})
			return
		}
		// Log portfolio addition
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,       // Acting user
			"stock_id": stock.ID,     // Linked stock
			"symbol":   stock.Symbol, // Symbol
		}).Info("Portfolio entry added") // Log addition
		invalidatePortfolioCache(c, userID.(uint)) // Invalidate the user's portfolio cache
		c.Status(http.StatusCreated)               // Return created
	}
}

// RemovePortfolioHandler unlinks a stock, resolved by symbol, from the
// authenticated user's portfolio
func RemovePortfolioHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		symbol := c.Query("symbol") // Requested symbol
		if symbol == "" {
			// A symbol must be supplied
			c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
			return
		}
		// Fetch the user's portfolio and filter by case-insensitive symbol
		stocks, err := userPortfolioStocks(db, userID.(uint))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio"})
			return
		}
		var matched []domain.Stock // Stocks in the portfolio matching the symbol
		for _, stock := range stocks {
			if strings.EqualFold(stock.Symbol, symbol) {
				matched = append(matched, stock)
			}
		}
		// Exactly one row must match for the removal to proceed
		if len(matched) != 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not remove stock from portfolio"})
			return
		}
		// Delete the link row for the acting user only
		if err := db.Where("user_id = ? AND stock_id = ?", userID, matched[0].ID).
			Delete(&domain.Portfolio{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove stock from portfolio"})
			return
		}
		// Log portfolio removal
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,            // Acting user
			"stock_id": matched[0].ID,     // Unlinked stock
			"symbol":   matched[0].Symbol, // Symbol
		}).Info("Portfolio entry removed") // Log removal
		invalidatePortfolioCache(c, userID.(uint)) // Invalidate the user's portfolio cache
		c.Status(http.StatusOK)                    // Return ok
	}
}

// invalidatePortfolioCache drops the user's cached portfolio after a write
func invalidatePortfolioCache(c *gin.Context, userID uint) {
	// The Redis client is injected into the context by the route group
	if rdb, ok := c.MustGet("redisClient").(*redis.Client); ok {
		ctx := context.Background()                                // Context for Redis operations
		_ = utils.DeleteCache(ctx, rdb, portfolioCacheKey(userID)) // Invalidate portfolio cache
	}
}
