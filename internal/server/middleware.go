package server

import (
	"context"
	"crypto/subtle"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/selector"
	"github.com/go-kratos/kratos/v2/transport"
)

// AuthMiddleware guards the HTTP surface: agents submitting reports
// present X-Client-Secret, while API consumers present X-API-Key on
// every other operation. An empty secret disables the corresponding
// check (pass-through). Swagger UI is unaffected because it is
// registered via HandlePrefix, which bypasses the middleware chain.
func AuthMiddleware(clientSecret, apiSecret string) middleware.Middleware {
	submitGuard := selector.Server(secretMiddleware("X-Client-Secret", clientSecret)).
		Match(isSubmitOperation).Build()
	apiGuard := selector.Server(secretMiddleware("X-API-Key", apiSecret)).
		Match(isAPIOperation).Build()
	return middleware.Chain(submitGuard, apiGuard)
}

func isSubmitOperation(_ context.Context, operation string) bool {
	return operation == OperationSubmitReport
}

func isAPIOperation(ctx context.Context, operation string) bool {
	return !isSubmitOperation(ctx, operation)
}

// secretMiddleware validates a single header against a shared secret
// using a constant-time comparison.
func secretMiddleware(header, secret string) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req any) (any, error) {
			if secret == "" {
				return handler(ctx, req)
			}

			tr, ok := transport.FromServerContext(ctx)
			if !ok {
				return nil, errors.InternalServer("NO_TRANSPORT", "no transport in context")
			}

			got := tr.RequestHeader().Get(header)
			if got == "" {
				return nil, errors.Unauthorized("MISSING_SECRET", "missing "+header+" header")
			}

			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				return nil, errors.Unauthorized("INVALID_SECRET", "invalid "+header)
			}

			return handler(ctx, req)
		}
	}
}
