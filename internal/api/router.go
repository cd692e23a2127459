package api

import (
	"time" // Durations

	"car_rental/internal/middleware" // Auth and request id middleware
	"car_rental/internal/store"      // Persistence
	"car_rental/internal/utils"      // Session store

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	Store           *store.Store        // Database stores
	Sessions        *utils.SessionStore // Redis session store
	Redis           *redis.Client       // Redis client for caching
	JWTSecret       string              // Token signing secret
	AdminEmail      string              // Email that registers as admin
	Cookie          SessionCookie       // Session cookie settings
	CORSOrigins     []string            // Allowed browser origins
	ReviewsCacheTTL time.Duration       // TTL of the cached review list
	Now             func() time.Time    // Clock used by the dashboard
}

// NewRouter registers every route.
//
// Public: register, login, review list. Authenticated: logout, me, driver
// verification, review submission, available cars. Admin: everything on
// cars, drivers, the dashboard and the weekly ledger.
func NewRouter(d Deps) *gin.Engine {
	if d.Now == nil {
		d.Now = time.Now
	}
	r := gin.Default() // Gin router instance
	r.Use(middleware.RequestIDMiddleware())
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	authenticated := middleware.SessionAuthMiddleware(d.JWTSecret, d.Cookie.Name, d.Sessions)

	// Auth routes
	auth := r.Group("/auth")
	auth.POST("/register", RegisterHandler(d.Store.Users, d.AdminEmail))
	auth.POST("/login", LoginHandler(d.Store.Users, d.Sessions, d.JWTSecret, d.Cookie))
	auth.POST("/logout", authenticated, LogoutHandler(d.Sessions, d.Cookie))
	auth.GET("/me", authenticated, MeHandler())

	// Public routes
	r.GET("/reviews", ListReviewsHandler(d.Store.Reviews, d.Redis, d.ReviewsCacheTTL))

	// Routes for any logged-in identity
	user := r.Group("", authenticated)
	user.POST("/verify-driver", VerifyDriverHandler(d.Store.Drivers))
	user.POST("/reviews", CreateReviewHandler(d.Store.Reviews, d.Redis))
	user.GET("/available", ListAvailableCarsHandler(d.Store.Cars))

	// Admin routes
	admin := r.Group("", authenticated, middleware.AdminOnlyMiddleware())
	admin.GET("/cars", ListCarsHandler(d.Store.Cars))
	admin.POST("/cars", CreateCarHandler(d.Store.Cars))
	admin.GET("/cars/:id", GetCarHandler(d.Store.Cars))
	admin.PUT("/cars/:id", UpdateCarHandler(d.Store.Cars))
	admin.DELETE("/cars/:id", DeleteCarHandler(d.Store.Cars))

	admin.GET("/drivers", ListDriversHandler(d.Store.Drivers))
	admin.POST("/drivers", CreateDriverHandler(d.Store.Drivers))
	admin.GET("/drivers/:id", GetDriverHandler(d.Store.Drivers))
	admin.PUT("/drivers/:id", UpdateDriverHandler(d.Store.Drivers))
	admin.DELETE("/drivers/:id", DeleteDriverHandler(d.Store.Drivers))
	admin.GET("/drivers/:id/cars", ListDriverCarsHandler(d.Store.Cars))

	admin.GET("/dashboard", DashboardHandler(d.Store.Cars, d.Now))
	admin.GET("/ledger", WeekLedgerHandler(d.Store.Cars, d.Now))
	admin.GET("/ledger/months", LedgerMonthsHandler(d.Store.Cars, d.Now))

	return r
}
