package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/openai/openai-go/option"
)

// TokenSource yields the bearer token for a single request.
type TokenSource func(context.Context) (string, error)

// StaticToken always returns the same token.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// EnvToken reads the named environment variable on every request, so rotated
// keys are picked up without rebuilding the provider.
func EnvToken(name string) TokenSource {
	return func(context.Context) (string, error) {
		return os.Getenv(name), nil
	}
}

// WithTokenSource authenticates every request with the token returned by src.
// An empty token removes the Authorization header, which local endpoints such
// as LM Studio expect.
func WithTokenSource(src TokenSource) option.RequestOption {
	return option.WithMiddleware(func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		token, err := src(req.Context())
		if err != nil {
			return nil, fmt.Errorf("resolve api token: %w", err)
		}
		if token == "" {
			req.Header.Del("Authorization")
		} else {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return next(req)
	})
}
