package server

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/afero"

	"github.com/nfrund/onlinehelp/internal/config"
	"github.com/nfrund/onlinehelp/internal/directive"
	appmiddleware "github.com/nfrund/onlinehelp/internal/middleware"
	"github.com/nfrund/onlinehelp/internal/rendering"
	"github.com/nfrund/onlinehelp/internal/site"
	"github.com/nfrund/onlinehelp/internal/views"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E         *echo.Echo
	Cfg       config.Provider
	Help      *directive.Service
	Site      *site.Site
	Templates *rendering.Templates

	renderer    *rendering.UniversalRenderer
	helpHandler *views.Handler
	watcher     *directive.Watcher
}

// Deps are the collaborators a Server is built from.
type Deps struct {
	Cfg config.Provider
	// Fs is where help topics are read from. Hot reload needs the OS
	// filesystem.
	Fs   afero.Fs
	Site *site.Site
}

// New creates a new Server instance and loads the help topics.
func New(deps Deps) (*Server, error) {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Site == nil {
		deps.Site = site.Default()
	}

	help, err := directive.NewService(directive.Options{
		Fs:           deps.Fs,
		Title:        deps.Cfg.GetRootTitle(),
		WelcomePath:  deps.Cfg.GetWelcomePath(),
		Declarations: deps.Cfg.GetDeclarations(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load help topics: %w", err)
	}

	renderer := rendering.NewUniversalRenderer()
	templates := rendering.NewTemplates()

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	setupErrorHandling(e)

	s := &Server{
		E:           e,
		Cfg:         deps.Cfg,
		Help:        help,
		Site:        deps.Site,
		Templates:   templates,
		renderer:    renderer,
		helpHandler: views.NewHandler(help, rendering.NewSources(), templates, renderer),
		watcher:     directive.NewWatcher(help, templates.Reset),
	}
	s.RegisterRoutes()
	return s, nil
}

// setupErrorHandling logs errors before echo writes the error response.
// Errors that are not *echo.HTTPError are unexpected and get a stack trace.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		logger := appmiddleware.FromContext(c.Request().Context())

		if he, ok := err.(*echo.HTTPError); ok {
			if he.Code >= http.StatusInternalServerError {
				logger.Error("Server error", "status", he.Code, "error", he.Message, "internal", he.Internal)
			} else {
				logger.Debug("Request failed", "status", he.Code, "error", he.Message)
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		logger.Error("Internal Server Error (Unhandled)",
			"error", err.Error(),
			"stack_trace", string(debug.Stack()),
		)
		e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err), c)
	}
}
