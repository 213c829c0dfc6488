package mcp

import (
	"context"
	"net/http"

	"github.com/adrianliechti/waves-mcp/config"
	"github.com/adrianliechti/waves-mcp/pkg/auth"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Handler struct {
	*config.Config

	handler http.Handler
	sse     http.Handler
}

func New(cfg *config.Config) (*Handler, error) {
	s, err := cfg.MCP().Server(context.Background())

	if err != nil {
		return nil, err
	}

	getServer := func(request *http.Request) *mcp.Server {
		return s
	}

	h := &Handler{
		Config: cfg,

		handler: mcp.NewStreamableHTTPHandler(getServer, &mcp.StreamableHTTPOptions{
			Stateless: true,
		}),

		sse: mcp.NewSSEHandler(getServer, nil),
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.Authorizers))

		r.Handle("/mcp", h.handler)
		r.Handle("/mcp/*", h.handler)

		r.Handle("/sse", h.sse)
	})
}
