package utils

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Token lifetime: 7 days from issuance
const tokenTTL = 7 * 24 * time.Hour

// JWT Claims
type Claims struct {
	UserID               uint   `json:"user_id"`    // Custom claim for user ID
	Username             string `json:"given_name"` // Display name of the user
	Email                string `json:"email"`      // Email of the user
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a signed token carrying the user's identity claims
func GenerateJWT(userID uint, username, email, secret, issuer, audience string) (string, error) {
	// Set token claims
	claims := Claims{
		UserID:   userID,   // Custom claim for user ID
		Username: username, // Display name claim
		Email:    email,    // Email claim
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,                                       // Fixed issuer from configuration
			Audience:  jwt.ClaimStrings{audience},                   // Fixed audience from configuration
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)), // Token expires in 7 days
			IssuedAt:  jwt.NewNumericDate(time.Now()),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims) // Create token with claims, HMAC-SHA-512
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string, including signature
// method, expiry, issuer and audience
func ParseJWT(tokenStr, secret, issuer, audience string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), // Reject tokens signed with any other method
		jwt.WithIssuer(issuer),     // Issuer must match configuration
		jwt.WithAudience(audience), // Audience must match configuration
		jwt.WithExpirationRequired(),
	)
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
