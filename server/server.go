package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/waves-mcp/config"
	"github.com/adrianliechti/waves-mcp/server/mcp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const liveness = "MCP server running. Use /mcp (streamable HTTP) or /sse for protocol."

type Server struct {
	*config.Config
	http.Handler

	mcp *mcp.Handler
}

func New(cfg *config.Config) (*Server, error) {
	h, err := mcp.New(cfg)

	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	s := &Server{
		Config:  cfg,
		Handler: otelhttp.NewHandler(r, "waves-mcp"),

		mcp: h,
	}

	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	}))

	r.Get("/", s.handleLiveness)

	s.mcp.Attach(r)

	return s, nil
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(liveness))
}

// ListenAndServe serves until ctx is cancelled and then drains open
// connections.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: s,

		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)

	go func() {
		slog.Info("server listening", "address", s.Address)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
