package handler

import (
	"context"
	"net/http"
)

// contextKey keeps request-scoped values apart from other packages' keys.
type contextKey string

const requestIDContextKey = contextKey("requestID")

// contextSetRequestID returns a copy of the request carrying id.
func (h *Handler) contextSetRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, id)
	return r.WithContext(ctx)
}

// contextGetRequestID returns the request id, or "" outside the requestID middleware.
func (h *Handler) contextGetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDContextKey).(string)
	return id
}
