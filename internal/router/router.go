package router

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/blocklist"
	"github.com/zeid-hub/WhimsyB/internal/handler"
	"github.com/zeid-hub/WhimsyB/internal/middleware"
	"github.com/zeid-hub/WhimsyB/pkg/jwtutil"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
	"github.com/zeid-hub/WhimsyB/prometheus"
)

// Deps carries the dependencies every handler receives. Nothing here is
// process-global; tests construct their own.
type Deps struct {
	DB      *gorm.DB
	Tokens  *jwtutil.JWT
	Revoked *blocklist.Store
	Logger  *zap.Logger
}

// New builds the Echo application with all middleware and routes wired.
// Each route group declares its authorization policy here, evaluated
// uniformly by middleware.Auth.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	if d.Logger != nil {
		e.Use(logger.Middleware(d.Logger))
	}
	e.Use(prometheus.MetricsMiddleware())
	e.Use(middleware.TokenRefresh(d.Tokens, d.Revoked))

	authRequired := middleware.Auth(d.Tokens, d.Revoked)

	auth := handler.NewAuthHandler(d.DB, d.Tokens, d.Revoked)
	users := handler.NewUserHandler(d.DB)
	products := handler.NewProductHandler(d.DB)
	categories := handler.NewCategoryHandler(d.DB)
	orders := handler.NewOrderHandler(d.DB)
	orderItems := handler.NewOrderItemHandler(d.DB)
	cart := handler.NewCartHandler(d.DB)
	reviews := handler.NewReviewHandler(d.DB)
	addresses := handler.NewAddressHandler(d.DB)
	notifications := handler.NewNotificationHandler(d.DB)

	// Public routes
	e.GET("/", handler.Home)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	e.POST("/adduser", auth.Register)
	e.POST("/login", auth.Login)
	e.GET("/getallusers", users.List)

	// Public catalog
	e.GET("/products", products.List)
	e.POST("/products", products.Create)
	e.GET("/products/:id", products.Get)
	e.PATCH("/products/:id", products.Patch)
	e.DELETE("/products/:id", products.Delete)

	// Authenticated routes
	e.DELETE("/logout", auth.Logout, authRequired)

	u := e.Group("/users", authRequired)
	u.GET("/:id", users.Get)
	u.PATCH("/:id", users.Patch)
	u.DELETE("/:id", users.Delete)

	o := e.Group("/orders", authRequired)
	o.GET("", orders.List)
	o.POST("", orders.Create)
	o.GET("/:id", orders.Get)
	o.PATCH("/:id", orders.Patch)
	o.DELETE("/:id", orders.Delete)

	oi := e.Group("/order-items", authRequired)
	oi.GET("", orderItems.List)
	oi.POST("", orderItems.Create)
	oi.GET("/:id", orderItems.Get)
	oi.PATCH("/:id", orderItems.Patch)
	oi.DELETE("/:id", orderItems.Delete)

	uc := e.Group("/userCart", authRequired)
	uc.GET("", cart.List)
	uc.POST("", cart.Add)
	uc.PATCH("/:id", cart.Update)
	uc.DELETE("/:id", cart.Remove)

	pc := e.Group("/product-categories", authRequired)
	pc.GET("", categories.List)
	pc.POST("", categories.Create)
	pc.GET("/:id", categories.Get)
	pc.PATCH("/:id", categories.Patch)
	pc.DELETE("/:id", categories.Delete)

	r := e.Group("/reviews", authRequired)
	r.GET("", reviews.List)
	r.POST("", reviews.Create)
	r.GET("/:id", reviews.Get)
	r.PATCH("/:id", reviews.Patch)
	r.DELETE("/:id", reviews.Delete)

	a := e.Group("/address", authRequired)
	a.GET("", addresses.List)
	a.POST("", addresses.Create)
	a.GET("/:id", addresses.Get)
	a.PATCH("/:id", addresses.Patch)
	a.DELETE("/:id", addresses.Delete)

	n := e.Group("/notification", authRequired)
	n.GET("", notifications.List)
	n.POST("", notifications.Create)
	n.GET("/:id", notifications.Get)
	n.PATCH("/:id", notifications.Patch)
	n.DELETE("/:id", notifications.Delete)

	return e
}
