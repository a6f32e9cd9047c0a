package workers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"sitesmith/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type httpServer struct {
	srv      *http.Server
	certFile string
	keyFile  string
}

func NewHTTPServer(addr string, handler http.Handler, certFile, keyFile string) (*httpServer, error) {
	return &httpServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		certFile: certFile,
		keyFile:  keyFile,
	}, nil
}

func (h *httpServer) Name() string { return "http_server" }

func (h *httpServer) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", h.Name(), "addr", h.srv.Addr, "tls", h.tlsEnabled())
	defer slog.Info("Worker stopped", "name", h.Name())

	go func() {
		<-ctx.Done()

		shutdownCtx, cancelFn := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelFn()

		if err := h.srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutting down http server", logger.Err(err))
		}
	}()

	var err error
	if h.tlsEnabled() {
		err = h.srv.ListenAndServeTLS(h.certFile, h.keyFile)
	} else {
		err = h.srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (h *httpServer) tlsEnabled() bool {
	return h.certFile != "" && h.keyFile != ""
}
