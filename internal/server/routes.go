package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/onlinehelp/internal/site"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Everything else is traversed through the site tree.
	s.E.GET("/*", s.traverse)
}

// traverse resolves the request path against the site and hands requests
// for the help namespace to the help views.
func (s *Server) traverse(c echo.Context) error {
	res, err := s.Site.Resolve(c.Request().URL.Path)
	if err != nil {
		if errors.Is(err, site.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
		}
		return err
	}

	if res.Help {
		return s.helpHandler.Serve(c, res.Context, res.HelpBase, res.Rest)
	}
	return s.renderer.RenderPage(c, http.StatusOK, s.Site.Page(res))
}
