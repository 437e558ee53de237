package service

import (
	"context"

	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/pkg/apiclient"
)

type sessionKey struct{}

// WithSession stores the authenticated session on ctx for the rest of the
// request, including upstream calls made on its behalf.
func WithSession(ctx context.Context, session *entity.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func SessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*entity.Session)
	return session, ok && session != nil
}

// UpstreamTokenSource resolves the bearer token of the session carried by the
// request context. Requests without a session go out unauthenticated.
func UpstreamTokenSource() apiclient.TokenSource {
	return apiclient.TokenSourceFunc(func(ctx context.Context) (string, error) {
		if session, ok := SessionFromContext(ctx); ok {
			return session.UpstreamToken, nil
		}
		return "", nil
	})
}
