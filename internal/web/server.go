package web

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/export"
	"github.com/cowandilla/clccal/internal/repository"
	"github.com/cowandilla/clccal/internal/service"
)

// AdminHeader carries the admin password on delete requests.
const AdminHeader = "X-Admin-Password"

// Deps are the services the API serves.
type Deps struct {
	Calendar    service.CalendarService
	Events      service.EventService
	Governance  service.GovernanceService
	Transitions service.TransitionService

	// IsAdmin checks an admin password. Nil rejects everyone.
	IsAdmin func(password string) bool

	// ExportWeeksBack and ExportWeeksAhead size the default export window.
	ExportWeeksBack  int
	ExportWeeksAhead int

	Logger *slog.Logger
	Now    func() time.Time
}

// Server is the JSON API over the calendar services.
type Server struct {
	deps Deps
	e    *echo.Echo
	log  *slog.Logger
}

func NewServer(deps Deps) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.IsAdmin == nil {
		deps.IsAdmin = func(string) bool { return false }
	}
	if deps.ExportWeeksAhead <= 0 {
		deps.ExportWeeksBack, deps.ExportWeeksAhead = 4, 26
	}
	s := &Server{deps: deps, e: echo.New(), log: deps.Logger}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.HTTPErrorHandler = s.handleError
	s.e.Use(middleware.Recover())
	s.e.Use(s.requestLogger)
	s.registerRoutes()
	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) registerRoutes() {
	s.e.GET("/health", s.handleHealth)

	api := s.e.Group("/api")
	api.GET("/month", s.handleMonth)
	api.GET("/week", s.handleWeek)
	api.GET("/agenda", s.handleAgenda)
	api.GET("/timeline", s.handleTimeline)
	api.GET("/transitions", s.handleTransitions)
	api.GET("/legend", s.handleLegend)
	api.GET("/export.ics", s.handleExport)

	api.GET("/events", s.handleListEvents)
	api.POST("/events", s.handleCreateEvent)
	api.GET("/events/:id", s.handleGetEvent)
	api.PUT("/events/:id", s.handleUpdateEvent)
	api.DELETE("/events/:id", s.handleDeleteEvent)

	api.GET("/governance", s.handleListGovernance)
	api.POST("/governance", s.handleAddGovernance)
	api.DELETE("/governance/:id", s.handleDeleteGovernance)

	api.POST("/transitions", s.handleAddTransition)
	api.PUT("/transitions/:id", s.handleUpdateTransition)
	api.DELETE("/transitions/:id", s.handleDeleteTransition)
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", "listen", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		<-errCh
		return nil
	}
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.log.Debug("api request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// handleError maps service errors onto HTTP statuses.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	resp := errorResponse{Error: err.Error()}

	var he *echo.HTTPError
	var ve *service.ValidationError
	switch {
	case errors.As(err, &he):
		code = he.Code
		resp.Error = fmt.Sprint(he.Message)
	case errors.As(err, &ve):
		code = http.StatusBadRequest
		resp.Field = ve.Field
	case errors.Is(err, repository.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrReadOnly):
		code = http.StatusConflict
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	}
	if code >= http.StatusInternalServerError {
		s.log.ErrorContext(c.Request().Context(), "api error",
			"path", c.Request().URL.Path, "error", err)
		resp.Error = "internal error"
	}
	if err := c.JSON(code, resp); err != nil {
		s.log.Error("writing error response", "error", err)
	}
}

func (s *Server) actor(c echo.Context) service.Actor {
	password := c.Request().Header.Get(AdminHeader)
	admin := password != "" && s.deps.IsAdmin(password)
	return service.Actor{Name: c.RealIP(), Admin: admin}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.deps.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleMonth(c echo.Context) error {
	var req service.MonthRequest
	if m := strings.TrimSpace(c.QueryParam("month")); m != "" {
		ym, err := calendar.ParseYearMonth(m)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		req.Month = ym
	}
	selected, err := dateParam(c, "selected")
	if err != nil {
		return err
	}
	req.Selected = selected

	view, err := s.deps.Calendar.Month(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMonthDTO(view))
}

func (s *Server) handleWeek(c echo.Context) error {
	var req service.WeekRequest
	start, err := dateParam(c, "start")
	if err != nil {
		return err
	}
	if start != nil {
		req.Start = *start
	}
	if req.Selected, err = dateParam(c, "selected"); err != nil {
		return err
	}

	view, err := s.deps.Calendar.Week(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWeekDTO(view))
}

func (s *Server) handleAgenda(c echo.Context) error {
	var req service.AgendaRequest
	var err error
	if req.From, err = dateParam(c, "from"); err != nil {
		return err
	}
	if req.To, err = dateParam(c, "to"); err != nil {
		return err
	}
	for _, raw := range c.QueryParams()["category"] {
		cat, ok := domain.ParseCategory(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown category %q", raw))
		}
		req.Categories = append(req.Categories, cat)
	}

	view, err := s.deps.Calendar.Agenda(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAgendaDTO(view))
}

func (s *Server) handleTimeline(c echo.Context) error {
	var req service.TimelineRequest
	var err error
	if req.From, err = dateParam(c, "from"); err != nil {
		return err
	}
	if req.To, err = dateParam(c, "to"); err != nil {
		return err
	}
	for _, raw := range c.QueryParams()["program"] {
		req.Programs = append(req.Programs, domain.ParseProgram(raw))
	}

	view, err := s.deps.Calendar.Timeline(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTimelineDTO(view))
}

func (s *Server) handleTransitions(c echo.Context) error {
	view, err := s.deps.Calendar.Transitions(c.Request().Context(), c.QueryParam("student"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTransitionsDTO(view))
}

type legendEntry struct {
	Category string        `json:"category"`
	Accent   domain.Accent `json:"accent"`
}

func (s *Server) handleLegend(c echo.Context) error {
	out := make([]legendEntry, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		out = append(out, legendEntry{Category: string(cat), Accent: domain.CategoryAccent(cat)})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleExport(c echo.Context) error {
	from, err := dateParam(c, "from")
	if err != nil {
		return err
	}
	to, err := dateParam(c, "to")
	if err != nil {
		return err
	}
	window := export.SnapshotWindow(s.deps.Now(), s.deps.ExportWeeksBack, s.deps.ExportWeeksAhead)
	if from != nil {
		window.From = *from
	}
	if to != nil {
		window.To = *to
	}

	view, err := s.deps.Calendar.Records(c.Request().Context(), window)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/calendar; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="clc-calendar.ics"`)
	c.Response().WriteHeader(http.StatusOK)
	_, _, err = export.Write(c.Response(), view.Records, s.deps.Now())
	return err
}

// dateParam reads an optional YYYY-MM-DD query parameter.
func dateParam(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s: invalid date %q (want YYYY-MM-DD)", name, raw))
	}
	return &d, nil
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// PasswordChecker returns an IsAdmin func for a configured password. An
// empty password disables admin access.
func PasswordChecker(password string) func(string) bool {
	return func(candidate string) bool {
		return password != "" && secureCompare(candidate, password)
	}
}
