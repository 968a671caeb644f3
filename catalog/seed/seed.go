// Package seed holds a small demo catalog.
package seed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/catalog/internal/repository"
)

type demoBook struct {
	title, summary, isbn string
	copies               []model.BookInstance
}

type demoAuthor struct {
	author model.Author
	books  []demoBook
}

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

var catalog = []demoAuthor{
	{
		author: model.Author{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: date("1973-06-06")},
		books: []demoBook{
			{
				title:   "The Name of the Wind",
				summary: "The first day of *Kvothe's* story.",
				isbn:    "9781473211896",
				copies: []model.BookInstance{
					{Imprint: "Gollancz, 2011.", Status: model.StatusAvailable},
					{Imprint: "Gollancz, 2011.", Status: model.StatusLoaned, DueBack: date("2026-11-01")},
				},
			},
			{
				title:   "The Wise Man's Fear",
				summary: "The second day.",
				isbn:    "9788401352836",
				copies: []model.BookInstance{
					{Imprint: "Gollancz, 2011.", Status: model.StatusMaintenance},
				},
			},
		},
	},
	{
		author: model.Author{FirstName: "Ben", FamilyName: "Bova", DateOfBirth: date("1932-11-08"), DateOfDeath: date("2020-11-29")},
		books: []demoBook{
			{
				title:   "Apes and Angels",
				summary: "Humankind's first venture outside the solar system.",
				isbn:    "9780765379528",
				copies: []model.BookInstance{
					{Imprint: "Tor, 2016.", Status: model.StatusReserved},
				},
			},
		},
	},
	{
		author: model.Author{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: date("1920-01-02"), DateOfDeath: date("1992-04-06")},
	},
}

// Seed inserts the demo catalog through repo. It is not idempotent.
func Seed(ctx context.Context, repo repository.Repository, log *zap.Logger) error {
	for _, sa := range catalog {
		author, err := repo.CreateAuthor(ctx, sa.author)
		if err != nil {
			return err
		}
		log.Info("author", zap.String("id", author.ID), zap.String("name", author.Name()))
		for _, sb := range sa.books {
			book, err := repo.CreateBook(ctx, model.Book{
				Title:    sb.title,
				Summary:  sb.summary,
				ISBN:     sb.isbn,
				AuthorID: author.ID,
			})
			if err != nil {
				return err
			}
			for _, bi := range sb.copies {
				bi.BookID = book.ID
				if _, err := repo.CreateBookInstance(ctx, bi); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
