package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

type HTTPServer struct {
	httpServer *http.Server
}

func NewHTTPServer(addr string, handler http.Handler) HTTPServer {
	handler = http.TimeoutHandler(handler, 5*time.Second, "unavailable")
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Second,
	}
	return HTTPServer{s}
}

// Run serves until the server is closed. Any other stop calls stopFn.
func (s HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := slog.With("op", op)

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		log.Error("failed to listen", "err", err)
		stopFn()
		return
	}
	s.Serve(ln, stopFn)
}

func (s HTTPServer) Serve(ln net.Listener, stopFn context.CancelFunc) {
	const op = "HTTPServer.Serve"
	log := slog.With("op", op)

	log.Info("http server is listening", "addr", ln.Addr().String())

	err := s.httpServer.Serve(ln)
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Error("unexpected servers shutdown", "err", err)
	}
	stopFn()
}

func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	log.Info("closing http server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error("failed to shutdown gracefully", "err", err)
	}
	log.Info("http server is closed")
}
