package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/books", h.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/books", h.createBookHandler)
	// httprouter cannot register /books/search or /books/stats beside
	// /books/:id, so the GET route dispatches on the segment itself.
	router.HandlerFunc(http.MethodGet, "/books/:id", h.routeBookHandler)
	router.HandlerFunc(http.MethodPut, "/books/:id", h.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/books/:id", h.deleteBookHandler)

	router.HandlerFunc(http.MethodGet, "/healthcheck", h.healthcheckHandler)
	if h.config.Metrics.Enabled {
		router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())
	}

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.requestID(h.recoverPanic(h.logAccess(h.metrics(h.enableCORS(h.rateLimit(router))))))
}
