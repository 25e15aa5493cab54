package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func BadRequest(c echo.Context, err error) error {
	slog.WarnContext(
		c.Request().Context(), "bad request",
		slog.String("module", "rest"),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	slog.WarnContext(
		c.Request().Context(), "bad request",
		slog.String("module", "rest"),
		slog.String("path", c.Path()),
		slog.String("error", msg),
	)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
