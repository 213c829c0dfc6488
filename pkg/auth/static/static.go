package static

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/adrianliechti/waves-mcp/pkg/auth"
)

var _ auth.Provider = (*Provider)(nil)

// Provider accepts requests carrying a fixed bearer token.
type Provider struct {
	token string
}

func New(token string) (*Provider, error) {
	if token == "" {
		return nil, errors.New("invalid token")
	}

	return &Provider{
		token: token,
	}, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	header := r.Header.Get("Authorization")

	if header == "" {
		return ctx, errors.New("missing authorization header")
	}

	token, ok := strings.CutPrefix(header, "Bearer ")

	if !ok {
		return ctx, errors.New("invalid authorization header")
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(p.token)) != 1 {
		return ctx, errors.New("invalid token")
	}

	ctx = context.WithValue(ctx, auth.UserContextKey, "static")

	return ctx, nil
}
