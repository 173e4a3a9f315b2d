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

// AddressHandler exposes shipping address CRUD. The owner comes from the
// session token.
type AddressHandler struct {
	db *gorm.DB
}

func NewAddressHandler(db *gorm.DB) *AddressHandler {
	return &AddressHandler{db: db}
}

func (h *AddressHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	var addresses []model.Address
	if result := h.db.Find(&addresses); result.Error != nil {
		log.Error("Failed to list addresses", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve addresses"})
	}

	return c.JSON(http.StatusOK, addresses)
}

func (h *AddressHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Address string `json:"address"`
		City    string `json:"city"`
		State   string `json:"state"`
		ZipCode string `json:"zip_code"`
		Country string `json:"country"`
		Phone   string `json:"phone"`
		Status  string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No input data provided"})
	}
	if req.Address == "" || req.City == "" || req.State == "" ||
		req.ZipCode == "" || req.Country == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "address, city, state, zip_code, country and phone are required",
		})
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	address := model.Address{
		UserID:  userID,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Country: req.Country,
		Phone:   req.Phone,
		Date:    time.Now().UTC(),
		Status:  status,
	}

	if result := h.db.Create(&address); result.Error != nil {
		log.Error("Failed to create address", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create address"})
	}

	log.Info("Address created", zap.Uint("address_id", address.ID), zap.Uint("user_id", userID))
	return c.JSON(http.StatusCreated, address)
}

func (h *AddressHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid address id"})
	}

	var address model.Address
	if result := h.db.First(&address, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Address not found"})
	}

	return c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) Patch(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid address id"})
	}

	var address model.Address
	if result := h.db.First(&address, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Address not found"})
	}

	data, err := bindPatch(c)
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No input data provided"})
	}

	updates, err := filterFields(data, "address", "city", "state", "zip_code", "country", "phone", "status")
	if err != nil {
		log.Warn("Rejected patch with unknown field", zap.Uint("address_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if result := h.db.Model(&address).Updates(updates); result.Error != nil {
		log.Error("Failed to update address", zap.Uint("address_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update address"})
	}

	return c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid address id"})
	}

	result := h.db.Delete(&model.Address{}, id)
	if result.Error != nil {
		log.Error("Failed to delete address", zap.Uint("address_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete address"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Address not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Address deleted"})
}
