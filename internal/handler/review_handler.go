package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/model"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
)

// ReviewHandler exposes product review CRUD. The reviewer comes from the
// session token.
type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

func (h *ReviewHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	var reviews []model.Review
	if result := h.db.Find(&reviews); result.Error != nil {
		log.Error("Failed to list reviews", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve reviews"})
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		ProductID *uint  `json:"product_id"`
		Rating    *int   `json:"rating"`
		Body      string `json:"review"`
		Status    string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No input data provided"})
	}
	if req.ProductID == nil || req.Rating == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id and rating are required"})
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	review := model.Review{
		UserID:    userID,
		ProductID: *req.ProductID,
		Rating:    *req.Rating,
		Body:      req.Body,
		Date:      time.Now().UTC(),
		Status:    status,
	}

	if result := h.db.Create(&review); result.Error != nil {
		log.Error("Failed to create review", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}

	log.Info("Review created",
		zap.Uint("review_id", review.ID),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", review.ProductID))
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	var review model.Review
	if result := h.db.First(&review, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found"})
	}

	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Patch(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	var review model.Review
	if result := h.db.First(&review, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found"})
	}

	data, err := bindPatch(c)
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No input data provided"})
	}

	updates, err := filterFields(data, "rating", "review", "status")
	if err != nil {
		log.Warn("Rejected patch with unknown field", zap.Uint("review_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if result := h.db.Model(&review).Updates(updates); result.Error != nil {
		log.Error("Failed to update review", zap.Uint("review_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update review"})
	}

	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	result := h.db.Delete(&model.Review{}, id)
	if result.Error != nil {
		log.Error("Failed to delete review", zap.Uint("review_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Review deleted"})
}
