package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func bindCredentials(c echo.Context) (credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return req, fmt.Errorf("%w: malformed request body", common.ErrValidation)
	}
	return req, nil
}

func (s *Server) register(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	account, token, err := s.accounts.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Response().Header().Set(common.AuthHeaderName, token)
	return c.JSON(http.StatusOK, account)
}

func (s *Server) login(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	account, token, err := s.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Response().Header().Set(common.AuthHeaderName, token)
	return c.JSON(http.StatusOK, account)
}

func (s *Server) me(c echo.Context) error {
	account, err := s.accounts.Me(c.Request().Context(), identity(c).AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func (s *Server) logout(c echo.Context) error {
	id := identity(c)
	if err := s.accounts.Logout(c.Request().Context(), id.AccountID, id.Token); err != nil {
		s.logger.Warn(c.Request().Context(), "token removal failed", "account_id", id.AccountID, "error", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, "could not remove token")
	}
	return c.NoContent(http.StatusOK)
}
