package repository

import (
	"context"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

// Repository is the catalog document store. Lookups of a single record
// return errs.ErrNotFound when the id does not resolve.
type Repository interface {
	// ListAuthors returns every author ordered by family name, byte-wise.
	ListAuthors(ctx context.Context) ([]model.Author, error)
	GetAuthor(ctx context.Context, id string) (model.Author, error)
	// CreateAuthor assigns a new id and inserts the author.
	CreateAuthor(ctx context.Context, author model.Author) (model.Author, error)
	// DeleteAuthor removes the author. It returns errs.ErrHasDependents when
	// the store still holds books referencing it. Deleting a missing id is a no-op.
	DeleteAuthor(ctx context.Context, id string) error

	// ListBooksByAuthor returns the books of an author projected to id, title and summary.
	ListBooksByAuthor(ctx context.Context, authorID string) ([]model.Book, error)
	// ListBookTitles returns every book projected to id and title, ordered by title.
	ListBookTitles(ctx context.Context) ([]model.Book, error)
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)

	// ListBookInstances returns every copy with its book populated.
	ListBookInstances(ctx context.Context) ([]model.BookInstance, error)
	GetBookInstance(ctx context.Context, id string) (model.BookInstance, error)
	CreateBookInstance(ctx context.Context, bi model.BookInstance) (model.BookInstance, error)
}

var (
	_ Repository = (*postgresRepository)(nil)
	_ Repository = (*BoltRepository)(nil)
)
