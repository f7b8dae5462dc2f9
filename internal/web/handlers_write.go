package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cowandilla/clccal/internal/service"
)

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	return nil
}

func (s *Server) handleListEvents(c echo.Context) error {
	from, err := dateParam(c, "from")
	if err != nil {
		return err
	}
	to, err := dateParam(c, "to")
	if err != nil {
		return err
	}
	records, err := s.deps.Events.List(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventDTOs(records))
}

func (s *Server) handleGetEvent(c echo.Context) error {
	rec, err := s.deps.Events.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventDTO(*rec))
}

func (s *Server) handleCreateEvent(c echo.Context) error {
	var in service.EventInput
	if err := bind(c, &in); err != nil {
		return err
	}
	rec, err := s.deps.Events.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventDTO(*rec))
}

func (s *Server) handleUpdateEvent(c echo.Context) error {
	var in service.EventInput
	if err := bind(c, &in); err != nil {
		return err
	}
	rec, err := s.deps.Events.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventDTO(*rec))
}

func (s *Server) handleDeleteEvent(c echo.Context) error {
	if err := s.deps.Events.Delete(c.Request().Context(), s.actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListGovernance(c echo.Context) error {
	from, err := dateParam(c, "from")
	if err != nil {
		return err
	}
	to, err := dateParam(c, "to")
	if err != nil {
		return err
	}
	records, err := s.deps.Governance.List(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventDTOs(records))
}

func (s *Server) handleAddGovernance(c echo.Context) error {
	var in service.GovernanceInput
	if err := bind(c, &in); err != nil {
		return err
	}
	rec, err := s.deps.Governance.Add(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventDTO(*rec))
}

func (s *Server) handleDeleteGovernance(c echo.Context) error {
	if err := s.deps.Governance.Delete(c.Request().Context(), s.actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAddTransition(c echo.Context) error {
	var in service.TransitionInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if _, err := s.deps.Transitions.Add(c.Request().Context(), in); err != nil {
		return err
	}
	return s.respondStudent(c, http.StatusCreated, in.StudentInitials)
}

func (s *Server) handleUpdateTransition(c echo.Context) error {
	var in service.TransitionInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if _, err := s.deps.Transitions.Update(c.Request().Context(), c.Param("id"), in); err != nil {
		return err
	}
	return s.respondStudent(c, http.StatusOK, in.StudentInitials)
}

func (s *Server) handleDeleteTransition(c echo.Context) error {
	if err := s.deps.Transitions.Delete(c.Request().Context(), s.actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// respondStudent answers a transition write with the student's schedule.
func (s *Server) respondStudent(c echo.Context, code int, initials string) error {
	view, err := s.deps.Calendar.Transitions(c.Request().Context(), initials)
	if err != nil {
		return err
	}
	return c.JSON(code, toTransitionsDTO(view))
}
