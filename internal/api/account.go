package api

import (
	"net/http"                     // HTTP status codes
	"regexp"                       // Regular expressions
	"stocktracker/internal/domain" // Importing domain models
	"stocktracker/internal/utils"  // Utility functions
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`    // Username must be provided
	Email    string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication, returned by both register and login
type AuthResponse struct {
	Username string `json:"username"` // Username of the account
	Email    string `json:"email"`    // Email of the account
	Token    string `json:"token"`    // Signed JWT token
}

// isValidUsername checks if the username is alphanumeric and starts with a letter
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z][A-Za-z0-9]*$`, username) // Letters first, digits allowed after
	return matched                                                       // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 15 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15 // Return true if length is valid
}

// RegisterHandler creates a new account with the default User role and
// returns a signed token for it
func RegisterHandler(db *gorm.DB, jwtSecret, jwtIssuer, jwtAudience string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate username and password
		if !isValidUsername(req.Username) {
			// If username is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be alphanumeric and start with a letter"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-15 characters"})
			return
		}
		username := strings.ToLower(req.Username) // Usernames are case-normalized for uniqueness
		email := strings.ToLower(req.Email)       // Emails likewise
		// Pre-check for conflicts to produce clean errors; the unique
		// constraints remain the authoritative guard
		var existing domain.User
		if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already taken"})
			return
		}
		// Hash the password and create the user
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Every new registrant gets the default User role
		user := domain.User{Username: username, Email: email, Password: hash, RoleID: domain.RoleUserID}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// A failure here is either the constraint catching a race the
			// pre-check missed, or a store fault; neither detail is echoed
			logrus.WithFields(logrus.Fields{
				"username": username,    // Requested username
				"error":    err.Error(), // Error message
			}).Error("Registration failed") // Log registration failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
		// Issue a token for the new account
		token, err := utils.GenerateJWT(user.ID, user.Username, user.Email, jwtSecret, jwtIssuer, jwtAudience)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User registered") // Log registration
		// Return the new account with its token
		c.JSON(http.StatusOK, AuthResponse{Username: user.Username, Email: user.Email, Token: token})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret, jwtIssuer, jwtAudience string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database by case-normalized username
		if err := db.Where("username = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username"})
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(user.Password, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Username, user.Email, jwtSecret, jwtIssuer, jwtAudience)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the account with its token
		c.JSON(http.StatusOK, AuthResponse{Username: user.Username, Email: user.Email, Token: token})
	}
}
