package handler

import (
	"context"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/catalog/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	ListAuthors(ctx context.Context) ([]model.Author, error)
	AuthorDetail(ctx context.Context, id string) (model.AuthorDetail, error)
	CreateAuthor(ctx context.Context, form model.AuthorForm) (model.Author, error)
	DeleteAuthor(ctx context.Context, id string) (model.AuthorDetail, error)

	ListBookInstances(ctx context.Context) ([]model.BookInstance, error)
	BookInstanceDetail(ctx context.Context, id string) (model.BookInstance, error)
	ListBookTitles(ctx context.Context) ([]model.Book, error)
	CreateBookInstance(ctx context.Context, form model.BookInstanceForm) (model.BookInstance, error)
}

var _ CatalogService = (*service.Service)(nil)
