// Package httperr translates the two error families of this service --
// validation failures caught before any network call, and upstream/transport
// failures caught at the call site -- into echo HTTP errors.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/frontdesk/internal/platform/upstream"
)

// Translate maps an error from a service call to an HTTP error. Upstream 404s
// become 404s, other upstream or transport failures become 502s with the
// upstream's message, and anything else is treated as a validation failure.
func Translate(err error) *echo.HTTPError {
	if errors.Is(err, upstream.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	var ue *upstream.Error
	if errors.As(err, &ue) {
		return echo.NewHTTPError(http.StatusBadGateway, ue.Message)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	if isTransport(err) {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

// isTransport reports whether the error came from the network layer rather
// than from request validation.
func isTransport(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr)
}
