package transport

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// Exchange is the in-flight HTTP request/response pair. Collaborators that
// only receive a context (the flash notifier) use it to reach the response.
type Exchange struct {
	Request *http.Request
	Writer  http.ResponseWriter
}

func WithHTTP(ctx context.Context, r *http.Request, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Exchange{Request: r, Writer: w})
}

func FromContext(ctx context.Context) (*Exchange, bool) {
	ex, ok := ctx.Value(ctxKey{}).(*Exchange)
	return ex, ok && ex != nil
}

func GetRequest(ctx context.Context) *http.Request {
	if ex, ok := FromContext(ctx); ok {
		return ex.Request
	}
	return nil
}

func GetResponseWriter(ctx context.Context) http.ResponseWriter {
	if ex, ok := FromContext(ctx); ok {
		return ex.Writer
	}
	return nil
}

// Middleware stores the exchange on every request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithHTTP(r.Context(), r, w)))
	})
}
