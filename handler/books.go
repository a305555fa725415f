package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/emzola/bookcatalog/data"
	"github.com/emzola/bookcatalog/data/dto"
	"github.com/emzola/bookcatalog/internal/objectid"
	"github.com/emzola/bookcatalog/service"
)

func (h *Handler) routeBookHandler(w http.ResponseWriter, r *http.Request) {
	switch bookID := h.readIDParam(r); {
	case bookID == "search":
		h.searchBooksHandler(w, r)
	case bookID == "stats":
		h.showStatsHandler(w, r)
	case objectid.Valid(strings.ToLower(bookID)):
		h.showBookHandler(w, r)
	default:
		h.notFoundResponse(w, r)
	}
}

// ListBooks godoc
// @Summary List books
// @Description This endpoint returns one page of the catalog
// @Tags books
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 5)"
// @Success 200 {object} data.Page
// @Failure 500
// @Router /books [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListBooks
	qs := r.URL.Query()
	qsInput.Filters.Page = h.readInt(qs, "page", data.DefaultPage)
	qsInput.Filters.Limit = h.readInt(qs, "limit", data.DefaultListLimit)
	page, err := h.service.ListBooks(r.Context(), qsInput)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, page, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowBook godoc
// @Summary Show details of a book
// @Description This endpoint returns a book, or null when no book has the ID
// @Tags books
// @Produce json
// @Param id path string true "24 character hex ID of the book"
// @Success 200 {object} data.Book
// @Failure 404
// @Failure 500
// @Router /books/{id} [get]
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID := h.readBookID(r)
	book, err := h.service.GetBook(r.Context(), bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			book = nil
		default:
			h.storeErrorResponse(w, r, err, fmt.Sprintf("%s does not exist in DB.", bookID))
			return
		}
	}
	err = h.encodeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateBook godoc
// @Summary Create a new book
// @Description This endpoint stores a new book; title, author and publicationYear are required
// @Tags books
// @Accept  json
// @Produce json
// @Param body body dto.BookRequestBody true "JSON payload required to create a book"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 500
// @Router /books [post]
func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.BookRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.CreateBook(r.Context(), requestBody)
	if err != nil {
		h.storeErrorResponse(w, r, err, "Failed to input book(s) into DB.")
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/books/%s", book.ID))
	if err := h.encodeJSON(w, http.StatusOK, book, headers); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateBook godoc
// @Summary Update a book
// @Description This endpoint overwrites the fields present in the body and returns the updated book
// @Tags books
// @Accept  json
// @Produce json
// @Param id path string true "ID of book to update"
// @Param body body dto.BookRequestBody true "Fields to update"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /books/{id} [put]
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.BookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	bookID := h.readBookID(r)
	book, err := h.service.UpdateBook(r.Context(), bookID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.bookNotFoundResponse(w, r, bookID)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteBook godoc
// @Summary Delete a book
// @Description This endpoint deletes a book
// @Tags books
// @Produce json
// @Param id path string true "ID of book to delete"
// @Success 200
// @Failure 404
// @Failure 500
// @Router /books/{id} [delete]
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID := h.readBookID(r)
	err := h.service.DeleteBook(r.Context(), bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.bookNotFoundResponse(w, r, bookID)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	message := fmt.Sprintf("Successfully deleted book for %s", bookID)
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": message}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// SearchBooks godoc
// @Summary Search books
// @Description This endpoint matches q against titles and authors, ignoring whitespace, and pages through the matches
// @Tags books
// @Produce json
// @Param q query string true "Search term"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} data.Page
// @Failure 404
// @Failure 500
// @Router /books/search [get]
func (h *Handler) searchBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsSearchBooks
	qs := r.URL.Query()
	qsInput.Query = h.readString(qs, "q", "")
	qsInput.Filters.Page = h.readInt(qs, "page", data.DefaultPage)
	qsInput.Filters.Limit = h.readInt(qs, "limit", data.DefaultSearchLimit)
	page, err := h.service.SearchBooks(r.Context(), qsInput)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingSearchTerm):
			h.missingSearchTermResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, page, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowStats godoc
// @Summary Show catalog statistics
// @Description This endpoint returns the book count and the titles ordered alphabetically, by publication year and by creation time
// @Tags books
// @Produce json
// @Success 200 {object} data.Stats
// @Failure 500
// @Router /books/stats [get]
func (h *Handler) showStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, stats, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
