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

// Cache key for the full stock catalog
const stockListCacheKey = "stocks:all"

// StockRequest carries the fields for creating or updating a stock
type StockRequest struct {
	Symbol      string  `json:"symbol" binding:"required,min=1,max=5"`             // Ticker symbol, 1-5 characters
	CompanyName string  `json:"companyName" binding:"required,min=2,max=50"`       // Company name, 2-50 characters
	Purchase    float64 `json:"purchase" binding:"required,gte=1,lte=1000000000"`  // Purchase price, bounded
	LastDiv     float64 `json:"lastDiv" binding:"required,gte=0.001,lte=100"`      // Last dividend, bounded
	Industry    string  `json:"industry" binding:"required,max=10"`                // Industry sector, at most 10 characters
	MarketCap   int64   `json:"marketCap" binding:"required,gte=1,lte=5000000000"` // Market cap, bounded
}

// findStockBySymbol looks up a stock by case-insensitive symbol
func findStockBySymbol(db *gorm.DB, symbol string) (*domain.Stock, error) {
	var stock domain.Stock
	// Symbols are stored uppercase; compare case-insensitively anyway
	if err := db.Where("UPPER(symbol) = ?", strings.ToUpper(symbol)).First(&stock).Error; err != nil {
		return nil, err // Not found or store error
	}
	return &stock, nil
}

// ListStocksHandler returns the stock catalog, optionally filtered to a
// single symbol via the symbol query parameter
func ListStocksHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Symbol lookup bypasses the list cache
		if symbol := c.Query("symbol"); symbol != "" {
			stock, err := findStockBySymbol(db, symbol)
			if err != nil {
				// If no stock matches, return not found
				c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
				return
			}
			c.JSON(http.StatusOK, stock) // Return the matching stock
			return
		}
		ctx := context.Background() // Context for Redis operations
		var cached []domain.Stock   // Cached catalog
		// Try to get cached catalog; cache errors fall through to the DB
		found, err := utils.GetCache(ctx, rdb, stockListCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached catalog
			return
		}
		var stocks []domain.Stock // Slice to hold stocks
		// Fetch the full catalog
		if err := db.Find(&stocks).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stocks"})
			return
		}
		// Cache the catalog for 60 seconds
		_ = utils.SetCache(ctx, rdb, stockListCacheKey, stocks, 60*time.Second)
		c.JSON(http.StatusOK, stocks) // Return the catalog
	}
}

// GetStockHandler returns a single stock by id
func GetStockHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			// If the id is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock id"})
			return
		}
		var stock domain.Stock // Fetch stock from database
		if err := db.First(&stock, id).Error; err != nil {
			// If stock not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
			return
		}
		c.JSON(http.StatusOK, stock) // Return the stock
	}
}

// CreateStockHandler adds a stock to the shared catalog
func CreateStockHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StockRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If validation fails, return bad request with the field errors
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Symbols are normalized to uppercase for case-insensitive uniqueness
		stock := domain.Stock{
			Symbol:      strings.ToUpper(req.Symbol), // Normalized symbol
			CompanyName: req.CompanyName,             // Company name
			Purchase:    req.Purchase,                // Purchase price
			LastDiv:     req.LastDiv,                 // Last dividend
			Industry:    req.Industry,                // Industry sector
			MarketCap:   req.MarketCap,               // Market capitalization
		}
		// Attempt to create the stock; the unique index rejects duplicates
		if err := db.Create(&stock).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol already exists"})
			return
		}
		// Log stock creation
		logrus.WithFields(logrus.Fields{
			"stock_id": stock.ID,     // New stock ID
			"symbol":   stock.Symbol, // Symbol
		}).Info("Stock created") // Log creation
		invalidateStockCache(c)           // Invalidate the catalog cache
		c.JSON(http.StatusCreated, stock) // Return the created stock
	}
}

// UpdateStockHandler updates an existing stock by id
func UpdateStockHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			// If the id is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock id"})
			return
		}
		var req StockRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If validation fails, return bad request with the field errors
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var stock domain.Stock // Fetch stock from database
		if err := db.First(&stock, id).Error; err != nil {
			// If stock not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
			return
		}
		// Apply the validated fields
		stock.Symbol = strings.ToUpper(req.Symbol) // Normalized symbol
		stock.CompanyName = req.CompanyName        // Company name
		stock.Purchase = req.Purchase              // Purchase price
		stock.LastDiv = req.LastDiv                // Last dividend
		stock.Industry = req.Industry              // Industry sector
		stock.MarketCap = req.MarketCap            // Market capitalization
		// Persist the update
		if err := db.Save(&stock).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
		invalidateStockCache(c)      // Invalidate the catalog cache
		c.JSON(http.StatusOK, stock) // Return the updated stock
	}
}

// DeleteStockHandler removes a stock from the catalog by id
func DeleteStockHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			// If the id is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock id"})
			return
		}
		var stock domain.Stock // Fetch stock from database
		if err := db.First(&stock, id).Error; err != nil {
			// If stock not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
			return
		}
		// Delete the stock row
		if err := db.Delete(&stock).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stock"})
			return
		}
		// Log stock deletion
		logrus.WithFields(logrus.Fields{
			"stock_id": stock.ID,     // Deleted stock ID
			"symbol":   stock.Symbol, // Symbol
		}).Info("Stock deleted") // Log deletion
		invalidateStockCache(c)        // Invalidate the catalog cache
		c.Status(http.StatusNoContent) // Return no content
	}
}

// invalidateStockCache drops the cached catalog after a write
func invalidateStockCache(c *gin.Context) {
	// The Redis client is injected into the context by the route group
	if rdb, ok := c.MustGet("redisClient").(*redis.Client); ok {
		ctx := context.Background()                        // Context for Redis operations
		_ = utils.DeleteCache(ctx, rdb, stockListCacheKey) // Invalidate catalog cache
	}
}
