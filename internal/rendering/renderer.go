package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer writes help pages built from templ components or gomponents
// nodes.
type Renderer interface {
	// RenderComponent renders into memory, e.g. for fragments loaded into
	// the help pane.
	RenderComponent(ctx context.Context, component any) ([]byte, error)

	// RenderPage renders a complete response with status.
	RenderPage(c echo.Context, status int, component any) error
}

// UniversalRenderer renders both component kinds. It also serves as the
// echo.Renderer of the server.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a UniversalRenderer.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// node matches gomponents.Node without importing it here.
type node interface {
	Render(w io.Writer) error
}

func (r *UniversalRenderer) write(ctx context.Context, w io.Writer, component any) error {
	switch v := component.(type) {
	case templ.Component:
		return v.Render(ctx, w)
	case node:
		return v.Render(w)
	}
	return fmt.Errorf("unsupported component type %T: want templ.Component or a gomponents node", component)
}

// RenderComponent implements Renderer.
func (r *UniversalRenderer) RenderComponent(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.write(ctx, &buf, component); err != nil {
		return nil, fmt.Errorf("render component: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage implements Renderer. Nothing is written unless the whole
// component rendered, so a failing topic never leaves half a page behind a
// 200 status.
func (r *UniversalRenderer) RenderPage(c echo.Context, status int, component any) error {
	body, err := r.RenderComponent(c.Request().Context(), component)
	if err != nil {
		return err
	}
	return c.HTMLBlob(status, body)
}

// Render implements echo.Renderer; the component is passed as data and
// name is ignored.
func (r *UniversalRenderer) Render(w io.Writer, _ string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.write(c.Request().Context(), w, data)
}
