package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/model"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
)

// OrderItemHandler exposes order line-item CRUD. Items must reference an
// existing order and product.
type OrderItemHandler struct {
	db *gorm.DB
}

func NewOrderItemHandler(db *gorm.DB) *OrderItemHandler {
	return &OrderItemHandler{db: db}
}

func (h *OrderItemHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	var items []model.OrderItem
	if result := h.db.Find(&items); result.Error != nil {
		log.Error("Failed to list order items", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve order items"})
	}

	return c.JSON(http.StatusOK, items)
}

func (h *OrderItemHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		OrderID   *uint  `json:"order_id"`
		ProductID *uint  `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Price     int    `json:"price"`
		Status    string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No input data provided"})
	}
	if req.OrderID == nil || req.ProductID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order_id and product_id are required"})
	}

	var order model.Order
	if result := h.db.First(&order, *req.OrderID); result.Error != nil {
		log.Warn("Order item references unknown order", zap.Uint("order_id", *req.OrderID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	var product model.Product
	if result := h.db.First(&product, *req.ProductID); result.Error != nil {
		log.Warn("Order item references unknown product", zap.Uint("product_id", *req.ProductID))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product does not exist"})
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	item := model.OrderItem{
		OrderID:   *req.OrderID,
		ProductID: *req.ProductID,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Status:    status,
	}

	if result := h.db.Create(&item); result.Error != nil {
		log.Error("Failed to create order item", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order item"})
	}

	log.Info("Order item created", zap.Uint("order_item_id", item.ID), zap.Uint("order_id", item.OrderID))
	return c.JSON(http.StatusCreated, item)
}

func (h *OrderItemHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order item id"})
	}

	var item model.OrderItem
	if result := h.db.First(&item, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order item not found"})
	}

	return c.JSON(http.StatusOK, item)
}

func (h *OrderItemHandler) Patch(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order item id"})
	}

	var item model.OrderItem
	if result := h.db.First(&item, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order item not found"})
	}

	data, err := bindPatch(c)
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No input data provided"})
	}

	updates, err := filterFields(data, "quantity", "price", "status")
	if err != nil {
		log.Warn("Rejected patch with unknown field", zap.Uint("order_item_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if result := h.db.Model(&item).Updates(updates); result.Error != nil {
		log.Error("Failed to update order item", zap.Uint("order_item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order item"})
	}

	return c.JSON(http.StatusOK, item)
}

func (h *OrderItemHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order item id"})
	}

	result := h.db.Delete(&model.OrderItem{}, id)
	if result.Error != nil {
		log.Error("Failed to delete order item", zap.Uint("order_item_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete order item"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order item not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Order item deleted"})
}
