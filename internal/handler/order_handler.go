package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/model"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
	"github.com/zeid-hub/WhimsyB/prometheus"
)

// OrderHandler exposes order CRUD. The buyer always comes from the session
// token, never from the request body.
type OrderHandler struct {
	db *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

func (h *OrderHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	var orders []model.Order
	if result := h.db.Find(&orders); result.Error != nil {
		log.Error("Failed to list orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve orders"})
	}

	return c.JSON(http.StatusOK, orders)
}

// Create places an order for the authenticated user. The referenced
// product must exist; nothing is persisted when it does not.
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		ProductID *uint  `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Price     int    `json:"price"`
		Status    string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No input data provided"})
	}
	if req.ProductID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "product_id is required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var product model.Product
	if result := h.db.First(&product, *req.ProductID); result.Error != nil {
		log.Warn("Order references unknown product", zap.Uint("product_id", *req.ProductID))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product does not exist"})
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	order := model.Order{
		UserID:    userID,
		ProductID: *req.ProductID,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Status:    status,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.Create(&order); result.Error != nil {
		log.Error("Failed to create order", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}

	prometheus.OrderCounter.Inc()
	log.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", order.ProductID))
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	var order model.Order
	if result := h.db.First(&order, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Patch(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	var order model.Order
	if result := h.db.First(&order, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	data, err := bindPatch(c)
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No input data provided"})
	}

	updates, err := filterFields(data, "quantity", "price", "status")
	if err != nil {
		log.Warn("Rejected patch with unknown field", zap.Uint("order_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if result := h.db.Model(&order).Updates(updates); result.Error != nil {
		log.Error("Failed to update order", zap.Uint("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order"})
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	result := h.db.Delete(&model.Order{}, id)
	if result.Error != nil {
		log.Error("Failed to delete order", zap.Uint("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete order"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	log.Info("Order deleted", zap.Uint("order_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Order deleted successfully"})
}
