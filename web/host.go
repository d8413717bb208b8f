package web

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Host serves a gin engine over HTTP as a hosted service.
type Host struct {
	addr   string
	server *http.Server
}

// NewHost wraps engine in an HTTP server listening on addr.
func NewHost(engine *gin.Engine, addr string) *Host {
	return &Host{
		addr:   addr,
		server: &http.Server{Addr: addr, Handler: engine},
	}
}

// Addr returns the configured listen address.
func (h *Host) Addr() string { return h.addr }

// Start listens and serves until Stop or a listener failure. The bind
// happens before Serve so a taken port fails Start instead of a
// background goroutine.
func (h *Host) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return err
	}
	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully, bounded by ctx.
func (h *Host) Stop(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}
