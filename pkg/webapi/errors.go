package webapi

import (
	"net/http"

	"github.com/handoff-labs/handoff/pkg/config"
	"github.com/handoff-labs/handoff/pkg/transfer"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps a transfer error kind onto an HTTP response. In a
// production posture only the stable kind goes out; the diagnostic detail
// is included everywhere else.
func toHTTPError(err error) *echo.HTTPError {
	var status int

	kind := transfer.Kind(err)
	switch kind {
	case "not_found":
		status = http.StatusNotFound
	case "unauthorized":
		status = http.StatusForbidden
	case "invalid_state_transition":
		status = http.StatusConflict
	case "invalid_manifest", "invalid_request":
		status = http.StatusBadRequest
	case "external_provider_error":
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	body := map[string]string{"error": kind}
	if config.GetKeyWithDefault("HANDOFF_ENV", "production") != "production" {
		body["detail"] = err.Error()
	}

	return echo.NewHTTPError(status, body)
}
