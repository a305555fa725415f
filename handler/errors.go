package handler

import (
	"fmt"
	"net/http"
)

func (h *Handler) logError(r *http.Request, err error) {
	h.logger.PrintError(err, map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
		"request_id":     h.contextGetRequestID(r),
	})
}

// errorResponse writes {"message": message} with the given status.
func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	env := envelope{"message": message}
	err := h.encodeJSON(w, status, env, nil)
	if err != nil {
		h.logError(r, err)
		w.WriteHeader(500)
	}
}

// serverErrorResponse logs err and reports its message to the client.
func (h *Handler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	h.errorResponse(w, r, http.StatusInternalServerError, err.Error())
}

// storeErrorResponse logs err but answers with a fixed message.
func (h *Handler) storeErrorResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	h.logError(r, err)
	h.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (h *Handler) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	h.errorResponse(w, r, http.StatusNotFound, message)
}

func (h *Handler) bookNotFoundResponse(w http.ResponseWriter, r *http.Request, bookID string) {
	message := fmt.Sprintf("Cannot find book for %s", bookID)
	h.errorResponse(w, r, http.StatusNotFound, message)
}

func (h *Handler) missingSearchTermResponse(w http.ResponseWriter, r *http.Request) {
	h.errorResponse(w, r, http.StatusNotFound, "Search term not found")
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	h.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (h *Handler) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (h *Handler) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "rate limit exceeded"
	h.errorResponse(w, r, http.StatusTooManyRequests, message)
}
