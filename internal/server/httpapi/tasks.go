package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/labstack/echo/v4"
)

type createTaskRequest struct {
	Text string `json:"text"`
}

// updateTaskRequest keeps completed raw: anything but the literal true
// counts as not completed.
type updateTaskRequest struct {
	Text      *string         `json:"text"`
	Completed json.RawMessage `json:"completed"`
}

func (r updateTaskRequest) patch() models.TaskPatch {
	return models.TaskPatch{
		Text:      r.Text,
		Completed: bytes.Equal(bytes.TrimSpace(r.Completed), []byte("true")),
	}
}

func malformedBody() error {
	return fmt.Errorf("%w: malformed request body", common.ErrValidation)
}

func (s *Server) createTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}

	task, err := s.tasks.Create(c.Request().Context(), identity(c).AccountID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) listTasks(c echo.Context) error {
	tasks, err := s.tasks.List(c.Request().Context(), identity(c).AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

func (s *Server) getTask(c echo.Context) error {
	task, err := s.tasks.Get(c.Request().Context(), identity(c).AccountID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"task": task})
}

func (s *Server) updateTask(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}

	task, err := s.tasks.Update(c.Request().Context(), identity(c).AccountID, c.Param("id"), req.patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"task": task})
}

func (s *Server) deleteTask(c echo.Context) error {
	task, err := s.tasks.Delete(c.Request().Context(), identity(c).AccountID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"task": task})
}
