package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"car_rental/internal/domain"     // Importing domain models
	"car_rental/internal/middleware" // Session context helpers
	"car_rental/internal/store"      // Persistence
	"car_rental/internal/utils"      // JWT and sessions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Request struct for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`        // Display name must be provided
	Email    string `json:"email" binding:"required,email"` // Email must be provided and well formed
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string          `json:"token"` // Signed session token
	User  domain.Identity `json:"user"`  // Logged-in identity
}

// SessionCookie describes the cookie carrying the session token
type SessionCookie struct {
	Name   string // Cookie name
	Domain string // Cookie domain, empty for host-only
	Secure bool   // Send over HTTPS only
}

func (sc SessionCookie) set(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, value, maxAge, "/", sc.Domain, sc.Secure, true)
}

// isValidPassword checks the password length; bcrypt ignores bytes past 72
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72 // Return true if length is valid
}

// RegisterHandler creates a credential identity. The role is resolved here,
// once, from the configured admin email.
func RegisterHandler(users *store.UserStore, adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-72 characters"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		hashed := string(hash)
		email := strings.TrimSpace(req.Email) // Case is kept, the admin comparison is exact
		user := domain.User{
			Name:     strings.TrimSpace(req.Name),
			Email:    email,
			Password: &hashed,
			Role:     domain.RoleFor(email, adminEmail),
		}
		// Attempt to create the user in the database
		if err := users.Create(c.Request.Context(), &user); err != nil {
			respondError(c, err)
			return
		}
		middleware.Logger(c).WithFields(logrus.Fields{
			"user_id": user.ID,   // New user ID
			"role":    user.Role, // Resolved role
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
	}
}

// LoginHandler authenticates a user, opens a session and returns its token,
// also setting it as an HttpOnly cookie
func LoginHandler(users *store.UserStore, sessions *utils.SessionStore, jwtSecret string, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.GetByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// If user not found, return unauthorized
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			respondError(c, err)
			return
		}
		// Social-login accounts have no password to compare
		if user.Password == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		sess, err := sessions.Create(c.Request.Context(), user) // Open a session in Redis
		if err != nil {
			respondError(c, err)
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(sess, jwtSecret, sessions.TTL())
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		cookie.set(c, token, int(sessions.TTL().Seconds()))
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: sess.Identity})
	}
}

// LogoutHandler ends the caller's session and expires the cookie
func LogoutHandler(sessions *utils.SessionStore, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.Delete(c.Request.Context(), c.GetString(middleware.ContextSessionKey)); err != nil {
			respondError(c, err)
			return
		}
		cookie.set(c, "", -1)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// MeHandler returns the caller's identity
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": identity})
	}
}
