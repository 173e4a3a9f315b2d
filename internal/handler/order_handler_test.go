package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeid-hub/WhimsyB/internal/model"
)

func authToken(t *testing.T, app *testApp) string {
	t.Helper()
	app.signup(t, "buyer", "buyer@example.com", "secretpw")
	return app.login(t, "buyer@example.com", "secretpw")
}

func TestOrderCreateForAuthenticatedUser(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/orders", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   2,
		"price":      60,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, productID, order.ProductID)
	assert.Equal(t, "pending", order.Status)

	// The buyer comes from the session token, not the body.
	var user model.User
	require.NoError(t, app.db.Where("email = ?", "buyer@example.com").First(&user).Error)
	assert.Equal(t, user.ID, order.UserID)
}

func TestOrderCreateIgnoresUserIDInBody(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/orders", token, map[string]interface{}{
		"product_id": productID,
		"user_id":    999,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.NotEqual(t, uint(999), order.UserID)
}

func TestOrderCreateUnknownProduct(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)

	rec := app.request(t, http.MethodPost, "/orders", token, map[string]interface{}{
		"product_id": 42,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Product does not exist", body["message"])

	var count int64
	app.db.Model(&model.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestOrderCreateRequiresProductID(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)

	rec := app.request(t, http.MethodPost, "/orders", token, map[string]interface{}{
		"quantity": 1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "product_id is required", body["message"])
}

func TestOrderRequiresAuthentication(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodGet, "/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderPatchAndDelete(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/orders", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = app.request(t, http.MethodPatch, fmt.Sprintf("/orders/%d", order.ID), token, map[string]interface{}{
		"status": "shipped",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated model.Order
	require.NoError(t, app.db.First(&updated, order.ID).Error)
	assert.Equal(t, "shipped", updated.Status)

	rec = app.request(t, http.MethodPatch, fmt.Sprintf("/orders/%d", order.ID), token, map[string]interface{}{
		"user_id": 7,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderItemCreateChecksReferences(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)
	productID := createProduct(t, app, "Teapot", 30)

	rec := app.request(t, http.MethodPost, "/order-items", token, map[string]interface{}{
		"order_id":   123,
		"product_id": productID,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", decodeBody(t, rec)["error"])

	rec = app.request(t, http.MethodPost, "/orders", token, map[string]interface{}{
		"product_id": productID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = app.request(t, http.MethodPost, "/order-items", token, map[string]interface{}{
		"order_id":   order.ID,
		"product_id": 999,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product does not exist", decodeBody(t, rec)["message"])

	var count int64
	app.db.Model(&model.OrderItem{}).Count(&count)
	assert.Zero(t, count)

	rec = app.request(t, http.MethodPost, "/order-items", token, map[string]interface{}{
		"order_id":   order.ID,
		"product_id": productID,
		"quantity":   3,
		"price":      90,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var item model.OrderItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, order.ID, item.OrderID)
	assert.Equal(t, "pending", item.Status)
}

func TestOrderItemCreateRequiresBothIDs(t *testing.T) {
	app := newTestApp(t)
	token := authToken(t, app)

	rec := app.request(t, http.MethodPost, "/order-items", token, map[string]interface{}{
		"quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
