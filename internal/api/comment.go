package api

import (
	"net/http"                     // HTTP status codes
	"stocktracker/internal/domain" // Importing domain models
	"strconv"                      // String conversion
	"time"                         // Timestamp formatting

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CommentRequest carries the fields for creating or updating a comment
type CommentRequest struct {
	Title   string `json:"title" binding:"required,min=5,max=255"`   // Title, 5-255 characters
	Content string `json:"content" binding:"required,min=3,max=255"` // Content, 3-255 characters
}

// CommentView is the comment shape returned to clients, with the author's
// username joined in
type CommentView struct {
	ID        uint   `json:"id"`        // Comment ID
	Title     string `json:"title"`     // Comment title
	Content   string `json:"content"`   // Comment body
	CreatedAt string `json:"createdAt"` // Creation timestamp, RFC 3339
	CreatedBy string `json:"createdBy"` // Author's username
	StockID   *uint  `json:"stockId"`   // Stock the comment is attached to, if it still exists
}

// toCommentView maps a comment and its preloaded author to the client shape
func toCommentView(comment domain.Comment) CommentView {
	return CommentView{
		ID:        comment.ID,                             // Comment ID
		Title:     comment.Title,                          // Title
		Content:   comment.Content,                        // Content
		CreatedAt: comment.CreatedAt.Format(time.RFC3339), // RFC 3339 timestamp
		CreatedBy: comment.User.Username,                  // Author's username
		StockID:   comment.StockID,                        // Stock reference
	}
}

// canMutateComment reports whether the acting user may update or delete the
// comment: the author always may, and so may an Admin
func canMutateComment(db *gorm.DB, comment domain.Comment, userID uint) bool {
	if comment.UserID == userID {
		return true // Authors may mutate their own comments
	}
	var actor domain.User // Re-read the acting user's role from the store
	if err := db.First(&actor, userID).Error; err != nil {
		return false // Unknown actor may not mutate
	}
	return actor.RoleID == domain.RoleAdminID // Admins override ownership
}

// ListCommentsHandler returns all comments with their authors
func ListCommentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var comments []domain.Comment // Slice to hold comments
		// Preload the author relation to surface usernames
		if err := db.Preload("User").Order("created_at desc").Find(&comments).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
		// Map comments to the client shape
		views := make([]CommentView, len(comments))
		for i, comment := range comments {
			views[i] = toCommentView(comment)
		}
		c.JSON(http.StatusOK, views) // Return the comment list
	}
}

// GetCommentHandler returns a single comment by id
func GetCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			// If the id is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
			return
		}
		var comment domain.Comment // Fetch comment with its author
		if err := db.Preload("User").First(&comment, id).Error; err != nil {
			// If comment not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusOK, toCommentView(comment)) // Return the comment
	}
}

// CreateCommentHandler creates a comment on an existing stock; the path id is
// the stock id, and the author is always the authenticated user
func CreateCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		stockID, err := strconv.Atoi(c.Param("id")) // Parse the stock id from the path
		if err != nil {
			// If the id is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock id"})
			return
		}
		var req CommentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If validation fails, return bad request with the field errors
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var stock domain.Stock // The referenced stock must exist
		if err := db.First(&stock, stockID).Error; err != nil {
			// If the stock is absent, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock does not exist"})
			return
		}
		// Stamp the author from the validated identity, never from the body
		comment := domain.Comment{
			Title:   req.Title,     // Title
			Content: req.Content,   // Content
			UserID:  userID.(uint), // Acting user as author
			StockID: &stock.ID,     // Referenced stock
		}
		// Save the comment
		if err := db.Create(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
			return
		}
		// Log comment creation
		logrus.WithFields(logrus.Fields{
			"comment_id": comment.ID, // New comment ID
			"user_id":    userID,     // Author
			"stock_id":   stock.ID,   // Stock
		}).Info("Comment created") // Log creation
		// Reload with the author for the response shape
		_ = db.Preload("User").First(&comment, comment.ID).Error
		c.JSON(http.StatusCreated, toCommentView(comment)) // Return the created comment
	}
}

// UpdateCommentHandler updates a comment's title and content; only the
// author or an Admin may do so
func UpdateCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			// If the id is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
			return
		}
		var req CommentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If validation fails, return bad request with the field errors
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var comment domain.Comment // Fetch comment from database
		if err := db.Preload("User").First(&comment, id).Error; err != nil {
			// If comment not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		// Only the author or an Admin may mutate the comment
		if !canMutateComment(db, comment, userID.(uint)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the comment author"})
			return
		}
		comment.Title = req.Title     // Apply new title
		comment.Content = req.Content // Apply new content
		// Persist the update
		if err := db.Save(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
			return
		}
		c.JSON(http.StatusOK, toCommentView(comment)) // Return the updated comment
	}
}

// DeleteCommentHandler deletes a comment; only the author or an Admin may
// do so
func DeleteCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id")) // Parse the path id
		if err != nil {
			// If the id is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
			return
		}
		var comment domain.Comment // Fetch comment from database
		if err := db.First(&comment, id).Error; err != nil {
			// If comment not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		// Only the author or an Admin may delete the comment
		if !canMutateComment(db, comment, userID.(uint)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the comment author"})
			return
		}
		// Delete the comment row
		if err := db.Delete(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
			return
		}
		// Log comment deletion
		logrus.WithFields(logrus.Fields{
			"comment_id": comment.ID, // Deleted comment ID
			"user_id":    userID,     // Acting user
		}).Info("Comment deleted") // Log deletion
		c.Status(http.StatusNoContent) // Return no content
	}
}
