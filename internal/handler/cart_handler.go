package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/model"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
	"github.com/zeid-hub/WhimsyB/prometheus"
)

// CartItemView is a cart line joined with its product's display fields
type CartItemView struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	ImageURL  string `json:"image_url"`
}

// CartHandler exposes the caller's shopping cart. All operations are scoped
// to the cart owned by the authenticated user.
type CartHandler struct {
	db *gorm.DB
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

// cartFor finds or creates the user's cart row
func (h *CartHandler) cartFor(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := h.db.Where(model.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// List returns the contents of the caller's cart with product details
func (h *CartHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCartOperation("list")

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	cart, err := h.cartFor(userID)
	if err != nil {
		log.Error("Failed to resolve cart", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve cart"})
	}

	var items []CartItemView
	err = h.db.Model(&model.CartItem{}).
		Select("cart_items.id, cart_items.product_id, cart_items.quantity, products.name, products.price, products.image_url").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cart.ID).
		Scan(&items).Error
	if err != nil {
		log.Error("Failed to list cart items", zap.Uint("cart_id", cart.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve cart"})
	}

	if len(items) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Cart not found"})
	}

	return c.JSON(http.StatusOK, items)
}

// Add puts a product into the caller's cart
func (h *CartHandler) Add(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCartOperation("add")

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		ProductID *uint `json:"product_id"`
		Quantity  *int  `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.ProductID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a product_id must be provided"})
	}

	var product model.Product
	if result := h.db.First(&product, *req.ProductID); result.Error != nil {
		log.Warn("Cart add references unknown product", zap.Uint("product_id", *req.ProductID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product with provided id not found"})
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
	}

	cart, err := h.cartFor(userID)
	if err != nil {
		log.Error("Failed to resolve cart", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add cart item"})
	}

	item := model.CartItem{
		CartID:    cart.ID,
		ProductID: *req.ProductID,
		Quantity:  quantity,
	}
	if result := h.db.Create(&item); result.Error != nil {
		log.Error("Failed to add cart item", zap.Uint("cart_id", cart.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add cart item"})
	}

	log.Info("Cart item added",
		zap.Uint("cart_id", cart.ID),
		zap.Uint("product_id", item.ProductID),
		zap.Int("quantity", item.Quantity))
	return c.JSON(http.StatusCreated, item)
}

// Update changes the quantity of one of the caller's cart items
func (h *CartHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCartOperation("update")

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	itemID, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cart item id"})
	}

	data, err := bindPatch(c)
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no input data provided"})
	}

	updates, err := filterFields(data, "quantity")
	if err != nil {
		log.Warn("Rejected patch with unknown field", zap.Uint("cart_item_id", itemID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// Same rule as Add: a quantity can never go negative.
	if raw, present := updates["quantity"]; present {
		quantity, isNumber := raw.(float64)
		if !isNumber || quantity < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
		}
	}

	cart, err := h.cartFor(userID)
	if err != nil {
		log.Error("Failed to resolve cart", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update cart item"})
	}

	var item model.CartItem
	result := h.db.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Cart item not found"})
	}

	if result := h.db.Model(&item).Updates(updates); result.Error != nil {
		log.Error("Failed to update cart item", zap.Uint("cart_item_id", itemID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update cart item"})
	}

	return c.JSON(http.StatusOK, item)
}

// Remove deletes one of the caller's cart items
func (h *CartHandler) Remove(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCartOperation("remove")

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	itemID, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cart item id"})
	}

	cart, err := h.cartFor(userID)
	if err != nil {
		log.Error("Failed to resolve cart", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete cart item"})
	}

	result := h.db.Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&model.CartItem{})
	if result.Error != nil {
		log.Error("Failed to delete cart item", zap.Uint("cart_item_id", itemID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete cart item"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Cart item not found"})
	}

	log.Info("Cart item deleted", zap.Uint("cart_item_id", itemID), zap.Uint("cart_id", cart.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart item deleted successfully"})
}
