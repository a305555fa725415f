package data

const (
	DefaultPage        = 1
	DefaultListLimit   = 5
	DefaultSearchLimit = 10
)

// Filters holds the pagination knobs read from the query string. Page is
// 1-indexed. Neither field is range checked.
type Filters struct {
	Page  int
	Limit int
}

func (f Filters) startIndex() int {
	return (f.Page - 1) * f.Limit
}

func (f Filters) endIndex() int {
	return f.Page * f.Limit
}

// PageRef points at a neighbouring page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Page is one slice of an ordered collection.
type Page struct {
	Next     *PageRef `json:"next,omitempty"`
	Previous *PageRef `json:"previous,omitempty"`
	Results  []*Book  `json:"results"`
}

// Paginate returns the books in [(page-1)*limit, page*limit). Next is set
// when books remain past the page end and Previous when the page does not
// start at zero. A page past the end yields no results but still points
// back at page-1. Out of range bounds, including those produced by a
// non-positive page or limit, are clamped to the collection.
func Paginate(books []*Book, filters Filters) Page {
	start, end := filters.startIndex(), filters.endIndex()
	var page Page
	if end < len(books) {
		page.Next = &PageRef{Page: filters.Page + 1, Limit: filters.Limit}
	}
	if start > 0 {
		page.Previous = &PageRef{Page: filters.Page - 1, Limit: filters.Limit}
	}
	start = clamp(start, 0, len(books))
	end = clamp(end, start, len(books))
	page.Results = make([]*Book, end-start)
	copy(page.Results, books[start:end])
	return page
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
