package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/model"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
)

// NotificationHandler exposes notification CRUD. The recipient comes from
// the session token.
type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	var notifications []model.Notification
	if result := h.db.Find(&notifications); result.Error != nil {
		log.Error("Failed to list notifications", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve notifications"})
	}

	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Status  string `json:"status"`
		Type    string `json:"type"`
		Read    bool   `json:"read"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No input data provided"})
	}
	if req.Title == "" || req.Content == "" || req.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, content and type are required"})
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	notification := model.Notification{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Status:  status,
		Type:    req.Type,
		Read:    req.Read,
	}

	if result := h.db.Create(&notification); result.Error != nil {
		log.Error("Failed to create notification", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create notification"})
	}

	log.Info("Notification created", zap.Uint("notification_id", notification.ID), zap.Uint("user_id", userID))
	return c.JSON(http.StatusCreated, notification)
}

func (h *NotificationHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}

	var notification model.Notification
	if result := h.db.First(&notification, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Notification not found"})
	}

	return c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) Patch(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}

	var notification model.Notification
	if result := h.db.First(&notification, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Notification not found"})
	}

	data, err := bindPatch(c)
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No input data provided"})
	}

	updates, err := filterFields(data, "title", "content", "status", "type", "read")
	if err != nil {
		log.Warn("Rejected patch with unknown field", zap.Uint("notification_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if result := h.db.Model(&notification).Updates(updates); result.Error != nil {
		log.Error("Failed to update notification", zap.Uint("notification_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update notification"})
	}

	return c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}

	result := h.db.Delete(&model.Notification{}, id)
	if result.Error != nil {
		log.Error("Failed to delete notification", zap.Uint("notification_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete notification"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Notification not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notification deleted"})
}
