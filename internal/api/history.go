package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

func noHistory(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "history is not configured"})
}

func (s *Server) listHistory(c echo.Context) error {
	if s.history == nil {
		return noHistory(c)
	}
	items, err := s.history.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) saveHistory(c echo.Context) error {
	if s.history == nil {
		return noHistory(c)
	}
	var req SaveRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Original) == "" || strings.TrimSpace(req.Enhanced) == "" {
		return badRequest(c, "original and enhanced are required")
	}
	saved, err := s.history.Save(c.Request().Context(), req.Original, req.Enhanced)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

func (s *Server) getHistory(c echo.Context) error {
	if s.history == nil {
		return noHistory(c)
	}
	item, err := s.history.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) deleteHistory(c echo.Context) error {
	if s.history == nil {
		return noHistory(c)
	}
	if err := s.history.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
