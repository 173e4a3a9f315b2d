package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/blocklist"
	"github.com/zeid-hub/WhimsyB/internal/middleware"
	"github.com/zeid-hub/WhimsyB/internal/model"
	"github.com/zeid-hub/WhimsyB/pkg/jwtutil"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
	"github.com/zeid-hub/WhimsyB/prometheus"
)

// AuthHandler owns registration, login, and logout
type AuthHandler struct {
	db      *gorm.DB
	tokens  *jwtutil.JWT
	revoked *blocklist.Store
}

func NewAuthHandler(db *gorm.DB, tokens *jwtutil.JWT, revoked *blocklist.Store) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, revoked: revoked}
}

// Register creates a new user account
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		log.Error("Invalid registration data",
			zap.String("username", req.Username),
			zap.String("email", req.Email),
			zap.Bool("password_provided", req.Password != ""))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, email and password are required"})
	}

	user := model.User{
		Username: req.Username,
		Email:    req.Email,
	}
	if err := user.SetPassword(req.Password); err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.Create(&user); result.Error != nil {
		if isDuplicate(result.Error) {
			log.Warn("Username or email already registered",
				zap.String("username", req.Username),
				zap.String("email", req.Email))
			return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already registered"})
		}
		log.Error("Failed to create user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("User registered", zap.String("username", user.Username))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "The user has been created successfully",
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Login verifies credentials and issues a session token
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := h.db.Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Error("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is incorrect"})
	}

	if !user.Authenticate(req.Password) {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you have entered the incorrect password"})
	}

	token, err := h.tokens.Generate(user.Username, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.IncreaseActiveTokens()
	middleware.SetTokenCookie(c, token, time.Now().Add(h.tokens.Expiration()))

	log.Info("User logged in", zap.String("username", user.Username))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "The user has been logged in successfully",
		"token":   token,
	})
}

// Logout revokes the current token's jti
func (h *AuthHandler) Logout(c echo.Context) error {
	log := logger.FromContext(c)

	claims, ok := c.Get(middleware.ContextClaims).(*jwtutil.UserClaims)
	if !ok {
		log.Error("Missing token claims in context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.revoked.Revoke(claims.ID, claims.ExpiresAt.Time); err != nil {
		log.Error("Failed to revoke token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}

	prometheus.RevokedTokenCounter.Inc()
	prometheus.DecreaseActiveTokens()

	// Expire the cookie so clients stop sending the dead token.
	middleware.SetTokenCookie(c, "", time.Unix(0, 0))

	log.Info("User logged out", zap.String("username", claims.Username), zap.String("jti", claims.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Successfully logged out"})
}
