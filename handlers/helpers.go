package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func today() string {
	return time.Now().Format(dateLayout)
}

func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// bindError answers a failed Bind. A wrong primitive type carries the
// offending field, so it gets the same itemized shape as any other
// per-field violation; everything else is an opaque payload error.
func bindError(c echo.Context, err error) error {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR",
			"fields": map[string]string{
				ute.Field: fmt.Sprintf("%s must be of type %s", ute.Field, ute.Type),
			},
		})
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
}
