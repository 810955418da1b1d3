package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/4wadia/focusflow/internal/admission"
	"github.com/4wadia/focusflow/internal/services/serviceerr"
	"github.com/labstack/echo/v4"
)

// Error codes returned in the "code" field of error responses
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// errorStatus maps a service error to its HTTP status and response body.
// Unrecognised errors become a generic 500 so storage text never leaks.
func errorStatus(err error) (int, errorResponse) {
	var rej *admission.Rejection
	if errors.As(err, &rej) {
		return http.StatusBadRequest, errorResponse{Error: rej.Message, Code: string(rej.Reason)}
	}
	switch kind, sentinel := serviceerr.Of(err); kind {
	case serviceerr.Validation:
		return http.StatusBadRequest, errorResponse{Error: sentinel.Error(), Code: CodeValidation}
	case serviceerr.NotFound:
		return http.StatusNotFound, errorResponse{Error: sentinel.Error(), Code: CodeNotFound}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, errorResponse{Error: "Not found", Code: CodeNotFound}
		case http.StatusUnauthorized:
			return he.Code, errorResponse{Error: "Unauthorized", Code: CodeUnauthorized}
		}
		if he.Code < http.StatusInternalServerError {
			msg, ok := he.Message.(string)
			if !ok {
				msg = http.StatusText(he.Code)
			}
			return he.Code, errorResponse{Error: msg, Code: CodeValidation}
		}
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: CodeInternal}
}

// handleError is installed as the echo HTTPErrorHandler.
func handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"owner", ownerID(c),
			"error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}

// badRequest reports a malformed request body or parameter.
func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}
