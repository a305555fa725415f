package data

import (
	"strings"
	"unicode"
)

// searchTerm keeps the normalized forms of a query so a collection is
// scanned without renormalizing the term for every book.
type searchTerm struct {
	compact      string // whitespace removed
	folded       string // lower-cased, whitespace removed
	foldedNoDots string // lower-cased, whitespace and '.' removed
}

func newSearchTerm(term string) searchTerm {
	folded := removeSpace(strings.ToLower(term))
	return searchTerm{
		compact:      removeSpace(term),
		folded:       folded,
		foldedNoDots: strings.ReplaceAll(folded, ".", ""),
	}
}

func (t searchTerm) matches(book *Book) bool {
	if strings.Contains(removeSpace(book.Title), t.compact) {
		return true
	}
	title := strings.ReplaceAll(removeSpace(strings.ToLower(book.Title)), ".", "")
	if strings.Contains(title, t.foldedNoDots) {
		return true
	}
	return strings.Contains(removeSpace(strings.ToLower(book.Author)), t.folded)
}

// MatchBook reports whether book matches term. Whitespace is ignored in
// every comparison. The title matches either exactly or ignoring case and
// dots; the author matches ignoring case.
func MatchBook(book *Book, term string) bool {
	return newSearchTerm(term).matches(book)
}

// FilterBooks returns the books matching term, in their original order.
func FilterBooks(books []*Book, term string) []*Book {
	t := newSearchTerm(term)
	matched := make([]*Book, 0, len(books))
	for _, book := range books {
		if t.matches(book) {
			matched = append(matched, book)
		}
	}
	return matched
}

func removeSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
