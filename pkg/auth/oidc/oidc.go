package oidc

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/adrianliechti/waves-mcp/pkg/auth"

	"github.com/coreos/go-oidc/v3/oidc"
)

var _ auth.Provider = (*Provider)(nil)

// Provider validates bearer tokens as OIDC ID tokens of the given issuer.
type Provider struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

func New(ctx context.Context, issuer, audience string) (*Provider, error) {
	if issuer == "" {
		return nil, errors.New("invalid issuer")
	}

	cfg := &oidc.Config{
		ClientID: audience,

		SkipClientIDCheck: audience == "",
	}

	provider, err := oidc.NewProvider(ctx, issuer)

	if err != nil {
		return nil, err
	}

	verifier := provider.Verifier(cfg)

	return &Provider{
		provider: provider,
		verifier: verifier,
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

	idtoken, err := p.verifier.Verify(ctx, token)

	if err != nil {
		return ctx, err
	}

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
	}

	if err := idtoken.Claims(&claims); err == nil {
		if claims.Subject != "" {
			ctx = context.WithValue(ctx, auth.UserContextKey, claims.Subject)
		}

		if claims.Email != "" {
			ctx = context.WithValue(ctx, auth.EmailContextKey, claims.Email)
		}
	}

	return ctx, nil
}
