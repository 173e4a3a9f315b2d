package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/model"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
)

// CategoryHandler exposes product category CRUD
type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

func (h *CategoryHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	var categories []model.ProductCategory
	if result := h.db.Find(&categories); result.Error != nil {
		log.Error("Failed to list categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name      string `json:"name"`
		ProductID *uint  `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No input data provided"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	category := model.ProductCategory{
		Name:      req.Name,
		ProductID: req.ProductID,
	}

	if result := h.db.Create(&category); result.Error != nil {
		if isDuplicate(result.Error) {
			log.Warn("Category with this name already exists", zap.String("name", req.Name))
			return c.JSON(http.StatusConflict, echo.Map{"error": "category with this name already exists"})
		}
		log.Error("Failed to create category", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create category"})
	}

	log.Info("Category created", zap.Uint("category_id", category.ID), zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	var category model.ProductCategory
	if result := h.db.First(&category, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Patch(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	var category model.ProductCategory
	if result := h.db.First(&category, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	data, err := bindPatch(c)
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No input data provided"})
	}

	updates, err := filterFields(data, "name", "product_id")
	if err != nil {
		log.Warn("Rejected patch with unknown field", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if result := h.db.Model(&category).Updates(updates); result.Error != nil {
		if isDuplicate(result.Error) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "category with this name already exists"})
		}
		log.Error("Failed to update category", zap.Uint("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update category"})
	}

	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	result := h.db.Delete(&model.ProductCategory{}, id)
	if result.Error != nil {
		log.Error("Failed to delete category", zap.Uint("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete category"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted"})
}
