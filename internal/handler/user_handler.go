package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/model"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
)

// UserHandler exposes user record operations. Registration lives on
// AuthHandler; this covers the read/patch/delete surface.
type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List returns every user without password material
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	var users []model.User
	if result := h.db.Find(&users); result.Error != nil {
		log.Error("Failed to list users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve users"})
	}

	return c.JSON(http.StatusOK, users)
}

// Get returns a single user by id
func (h *UserHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	var user model.User
	if result := h.db.First(&user, id); result.Error != nil {
		log.Warn("User not found", zap.Uint("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// Patch applies a whitelisted sparse update to a user
func (h *UserHandler) Patch(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	var user model.User
	if result := h.db.First(&user, id); result.Error != nil {
		log.Warn("User not found for update", zap.Uint("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	data, err := bindPatch(c)
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no input data provided"})
	}

	updates, err := filterFields(data, "username", "email")
	if err != nil {
		log.Warn("Rejected patch with unknown field", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if result := h.db.Model(&user).Updates(updates); result.Error != nil {
		if isDuplicate(result.Error) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already registered"})
		}
		log.Error("Failed to update user", zap.Uint("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
	}

	return c.JSON(http.StatusOK, user)
}

// Delete removes a user
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	result := h.db.Delete(&model.User{}, id)
	if result.Error != nil {
		log.Error("Failed to delete user", zap.Uint("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete user"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	log.Info("User deleted", zap.Uint("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}
