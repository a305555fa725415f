package dto

import "github.com/emzola/bookcatalog/data"

// QsListBooks defines the query strings used for listing books.
type QsListBooks struct {
	Filters data.Filters
}

// QsSearchBooks defines the query strings used for searching books.
type QsSearchBooks struct {
	Query   string
	Filters data.Filters
}

// BookRequestBody defines the request body for the CreateBook and UpdateBook
// services. The fields are pointers so that an absent key can be told apart
// from a zero value: updates only touch the keys that were sent.
type BookRequestBody struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	PublicationYear *int    `json:"publicationYear"`
}

// Fields converts the body into the repository input.
func (b BookRequestBody) Fields() data.BookFields {
	return data.BookFields{
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
	}
}
