package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeid-hub/WhimsyB/internal/handler"
	"github.com/zeid-hub/WhimsyB/internal/model"
)

func TestCartEmptyIsNotFound(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)

	rec := app.request(t, http.MethodGet, "/userCart", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cart not found", decodeBody(t, rec)["message"])
}

func TestCartAddAndListWithProductDetails(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/userCart", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.request(t, http.MethodGet, "/userCart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []handler.CartItemView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Teapot", items[0].Name)
	assert.Equal(t, 30, items[0].Price)
	assert.Equal(t, "http://example.com/p.jpg", items[0].ImageURL)
}

func TestCartAddDefaultsQuantityToOne(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/userCart", token, map[string]interface{}{
		"product_id": productID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var item model.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, 1, item.Quantity)
}

func TestCartAddUnknownProduct(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)

	rec := app.request(t, http.MethodPost, "/userCart", token, map[string]interface{}{
		"product_id": 77,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddRejectsNegativeQuantity(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/userCart", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   -3,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	app.db.Model(&model.CartItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestCartUpdateQuantity(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/userCart", token, map[string]interface{}{
		"product_id": productID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var item model.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec = app.request(t, http.MethodPatch, fmt.Sprintf("/userCart/%d", item.ID), token, map[string]interface{}{
		"quantity": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated model.CartItem
	require.NoError(t, app.db.First(&updated, item.ID).Error)
	assert.Equal(t, 5, updated.Quantity)

	rec = app.request(t, http.MethodPatch, fmt.Sprintf("/userCart/%d", item.ID), token, map[string]interface{}{
		"product_id": 2,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartUpdateRejectsNegativeQuantity(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/userCart", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var item model.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec = app.request(t, http.MethodPatch, fmt.Sprintf("/userCart/%d", item.ID), token, map[string]interface{}{
		"quantity": -5,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var untouched model.CartItem
	require.NoError(t, app.db.First(&untouched, item.ID).Error)
	assert.Equal(t, 2, untouched.Quantity)
}

func TestCartRemove(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/userCart", token, map[string]interface{}{
		"product_id": productID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var item model.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/userCart/%d", item.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/userCart/%d", item.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartIsScopedToUser(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/userCart", token, map[string]interface{}{
		"product_id": productID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var item model.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	app.signup(t, "other", "other@example.com", "secretpw")
	otherToken := app.login(t, "other@example.com", "secretpw")

	// The second user sees an empty cart and cannot touch the first
	// user's items.
	rec = app.request(t, http.MethodGet, "/userCart", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/userCart/%d", item.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.request(t, http.MethodPatch, fmt.Sprintf("/userCart/%d", item.ID), otherToken, map[string]interface{}{
		"quantity": 9,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var untouched model.CartItem
	require.NoError(t, app.db.First(&untouched, item.ID).Error)
	assert.Equal(t, 1, untouched.Quantity)
}
