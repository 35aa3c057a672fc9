// Package http implements the HTTP half of the transport server using
// echo.
package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Mounadi05/taskmaster/internal/application/dispatch"
)

// Server wraps an echo instance exposing GET /command.
type Server struct {
	echo *echo.Echo
	addr string
}

// New builds a Server bound to addr, with the single /command route.
func New(addr string, d *dispatch.Dispatcher) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/command", func(c echo.Context) error {
		cmd := c.QueryParam("cmd")
		if cmd == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"status":  "error",
				"message": "missing cmd parameter",
			})
		}
		reply := d.Dispatch(strings.Fields(cmd))
		return c.JSON(http.StatusOK, reply)
	})

	return &Server{echo: e, addr: addr}
}

// Serve blocks, listening on the configured address.
func (s *Server) Serve() error {
	err := s.echo.Start(s.addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close shuts the HTTP server down.
func (s *Server) Close() error {
	return s.echo.Close()
}
