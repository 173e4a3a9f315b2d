package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zeid-hub/WhimsyB/internal/blocklist"
	"github.com/zeid-hub/WhimsyB/internal/router"
	"github.com/zeid-hub/WhimsyB/pkg/config"
	"github.com/zeid-hub/WhimsyB/pkg/database"
	"github.com/zeid-hub/WhimsyB/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type testApp struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWithJWT(t, config.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 1,
	})
}

func newTestAppWithJWT(t *testing.T, jwtCfg config.JWTConfig) *testApp {
	t.Helper()

	// One shared in-memory database per test, named so parallel tests
	// cannot collide.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	cfg := &config.Config{
		DB: config.DBConfig{
			Driver:   "sqlite",
			Path:     dsn,
			LogLevel: gormlogger.Silent,
		},
		JWT: jwtCfg,
	}

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	tokens := jwtutil.New(&cfg.JWT)
	e := router.New(router.Deps{
		DB:      db,
		Tokens:  tokens,
		Revoked: blocklist.New(db),
	})

	return &testApp{e: e, db: db}
}

// request performs an HTTP round trip through the full middleware stack
func (a *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) signup(t *testing.T, username, email, password string) {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/adduser", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// refreshedCookie returns the value of the access_token cookie on the
// response, or "" when none was set
func refreshedCookie(rec *httptest.ResponseRecorder) string {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "access_token" {
			return cookie.Value
		}
	}
	return ""
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
