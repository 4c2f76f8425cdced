package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

var taxonomy = []error{
	common.ErrValidation,
	common.ErrDuplicateEmail,
	common.ErrAuthenticationFailed,
	common.ErrInvalidIdentifier,
	common.ErrNotFound,
	common.ErrUnauthorized,
	common.ErrInvalidToken,
	common.ErrRevoked,
}

func known(err error) bool {
	for _, e := range taxonomy {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrDuplicateEmail),
		errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidIdentifier),
		errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRevoked):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// opaqueMessage replaces the text of errors outside the taxonomy, which may
// carry store or driver detail.
const opaqueMessage = "could not process request"

// errorHandler renders every failure as {"error": message}. Errors outside
// the taxonomy are logged and answered with 400 and a generic message.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := errorStatus(err)
	message := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = fmt.Sprint(he.Message)
	} else if !known(err) {
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err.Error())
		message = opaqueMessage
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, echo.Map{"error": message})
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "write error response", "error", err.Error())
	}
}
