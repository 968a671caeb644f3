package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
)

// HTTPErrorHandler is the last stop for every error a handler returns.
// Missing records become 404, echo errors keep their code, the rest is 500.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := err.Error()
	var he *echo.HTTPError
	switch {
	case errs.Kind(err) == errs.KindNotFound:
		code = http.StatusNotFound
	case errors.As(err, &he):
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	fields := []zap.Field{
		zap.String("method", c.Request().Method),
		zap.String("uri", c.Request().RequestURI),
		zap.Int("status", code),
		zap.Error(err),
	}
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", fields...)
	} else {
		h.log.Debug("request failed", fields...)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.Render(code, "error", echo.Map{
			"title":   http.StatusText(code),
			"status":  code,
			"message": message,
		})
	}
	if err != nil {
		h.log.Error("render error page", zap.Error(err))
		_ = c.String(code, message)
	}
}
