package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const identityKey = "identity"

// authenticate requires a live token in the x-auth header and attaches the
// caller's identity to both the echo and the request context. A token that
// cannot be checked against the store is refused like an invalid one.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(common.AuthHeaderName)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, common.ErrUnauthorized.Error())
		}

		accountID, err := s.accounts.Authenticate(c.Request().Context(), token)
		if err != nil {
			if !errors.Is(err, common.ErrInvalidToken) && !errors.Is(err, common.ErrRevoked) {
				s.logger.Error(c.Request().Context(), "token verification failed", "error", err.Error())
			}
			return echo.NewHTTPError(http.StatusUnauthorized, common.ErrUnauthorized.Error())
		}

		id := auth.Identity{AccountID: accountID, Token: token}
		c.Set(identityKey, id)
		c.SetRequest(c.Request().WithContext(auth.WithIdentity(c.Request().Context(), id)))
		return next(c)
	}
}

func validTaskID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := uuid.Parse(c.Param("id")); err != nil {
			return common.ErrInvalidIdentifier
		}
		return next(c)
	}
}

// identity is only meaningful behind authenticate.
func identity(c echo.Context) auth.Identity {
	id, _ := c.Get(identityKey).(auth.Identity)
	return id
}

func (s *Server) accessLog() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
			}
			if id, ok := auth.IdentityFromContext(c.Request().Context()); ok {
				args = append(args, "account_id", id.AccountID)
			}
			s.logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	})
}
