package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zeid-hub/WhimsyB/internal/middleware"
)

// idParam parses the :id path parameter
func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's id set by the auth middleware
func currentUserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(middleware.ContextUserID).(uint)
	return id, ok
}

// bindPatch decodes the request body into a sparse patch map. Only the
// body is bound; path parameters like :id must never land in the map.
func bindPatch(c echo.Context) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// filterFields keeps only whitelisted keys from a sparse patch body and
// rejects anything else, so a stray or injected key can never reach a column.
func filterFields(data map[string]interface{}, allowed ...string) (map[string]interface{}, error) {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = struct{}{}
	}

	updates := make(map[string]interface{}, len(data))
	for key, value := range data {
		if _, ok := allowedSet[key]; !ok {
			return nil, fmt.Errorf("unknown field: %s", key)
		}
		updates[key] = value
	}
	return updates, nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
