package middleware

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

type ctxKey struct{}

// WithIdentity кладёт вызывающего в контекст
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// GetIdentity возвращает вызывающего, установленного Auth
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(domain.Identity)
	return identity, ok
}
