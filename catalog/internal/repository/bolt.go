package repository

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
)

var (
	authorsBucket       = []byte(authorsTableName)
	booksBucket         = []byte(booksTableName)
	bookInstancesBucket = []byte(bookInstancesTableName)
)

// BoltRepository keeps each entity type as JSON documents in its own bucket,
// keyed by id.
type BoltRepository struct {
	db  *bolt.DB
	log *zap.Logger
}

func NewBolt(filename string, log *zap.Logger) (*BoltRepository, error) {
	db, err := bolt.Open(filename, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "bolt.Open %s", filename)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{authorsBucket, booksBucket, bookInstancesBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create buckets")
	}
	return &BoltRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

func (r *BoltRepository) Close() error {
	return r.db.Close()
}

func (r *BoltRepository) ListAuthors(_ context.Context) ([]model.Author, error) {
	var authors []model.Author
	err := r.db.View(func(tx *bolt.Tx) error {
		return each(tx.Bucket(authorsBucket), func(a model.Author) {
			authors = append(authors, a)
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(authors, func(i, j int) bool {
		return authors[i].FamilyName < authors[j].FamilyName
	})
	return authors, nil
}

func (r *BoltRepository) GetAuthor(_ context.Context, id string) (model.Author, error) {
	var a model.Author
	err := r.db.View(func(tx *bolt.Tx) error {
		return get(tx.Bucket(authorsBucket), id, &a)
	})
	return a, err
}

func (r *BoltRepository) CreateAuthor(_ context.Context, author model.Author) (model.Author, error) {
	author.ID = uuid.NewString()
	err := r.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket(authorsBucket), author.ID, author)
	})
	if err != nil {
		r.log.Error("CreateAuthor", zap.String("id", author.ID), zap.Error(err))
		return model.Author{}, err
	}
	return author, nil
}

// DeleteAuthor checks for referencing books and deletes in one write
// transaction, so a concurrently created book cannot be orphaned.
func (r *BoltRepository) DeleteAuthor(_ context.Context, id string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		referenced := false
		err := each(tx.Bucket(booksBucket), func(b model.Book) {
			if b.AuthorID == id {
				referenced = true
			}
		})
		if err != nil {
			return err
		}
		if referenced {
			return errs.ErrHasDependents
		}
		return tx.Bucket(authorsBucket).Delete([]byte(id))
	})
}

func (r *BoltRepository) ListBooksByAuthor(_ context.Context, authorID string) ([]model.Book, error) {
	var books []model.Book
	err := r.db.View(func(tx *bolt.Tx) error {
		return each(tx.Bucket(booksBucket), func(b model.Book) {
			if b.AuthorID == authorID {
				books = append(books, model.Book{ID: b.ID, Title: b.Title, Summary: b.Summary})
			}
		})
	})
	if err != nil {
		return nil, err
	}
	sortByTitle(books)
	return books, nil
}

func (r *BoltRepository) ListBookTitles(_ context.Context) ([]model.Book, error) {
	var books []model.Book
	err := r.db.View(func(tx *bolt.Tx) error {
		return each(tx.Bucket(booksBucket), func(b model.Book) {
			books = append(books, model.Book{ID: b.ID, Title: b.Title})
		})
	})
	if err != nil {
		return nil, err
	}
	sortByTitle(books)
	return books, nil
}

func (r *BoltRepository) CreateBook(_ context.Context, book model.Book) (model.Book, error) {
	book.ID = uuid.NewString()
	err := r.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket(booksBucket), book.ID, book)
	})
	if err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (r *BoltRepository) ListBookInstances(_ context.Context) ([]model.BookInstance, error) {
	var items []model.BookInstance
	err := r.db.View(func(tx *bolt.Tx) error {
		books := tx.Bucket(booksBucket)
		return eachErr(tx.Bucket(bookInstancesBucket), func(bi model.BookInstance) error {
			if err := populate(books, &bi); err != nil {
				return err
			}
			items = append(items, bi)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return bookTitle(items[i]) < bookTitle(items[j])
	})
	return items, nil
}

func (r *BoltRepository) GetBookInstance(_ context.Context, id string) (model.BookInstance, error) {
	var bi model.BookInstance
	err := r.db.View(func(tx *bolt.Tx) error {
		if err := get(tx.Bucket(bookInstancesBucket), id, &bi); err != nil {
			return err
		}
		return populate(tx.Bucket(booksBucket), &bi)
	})
	return bi, err
}

func (r *BoltRepository) CreateBookInstance(_ context.Context, bi model.BookInstance) (model.BookInstance, error) {
	bi.ID = uuid.NewString()
	bi.Book = nil
	err := r.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket(bookInstancesBucket), bi.ID, bi)
	})
	if err != nil {
		r.log.Error("CreateBookInstance", zap.String("id", bi.ID), zap.Error(err))
		return model.BookInstance{}, err
	}
	return bi, nil
}

func populate(books *bolt.Bucket, bi *model.BookInstance) error {
	var b model.Book
	switch err := get(books, bi.BookID, &b); {
	case errors.Is(err, errs.ErrNotFound):
		bi.Book = nil
	case err != nil:
		return err
	default:
		bi.Book = &b
	}
	return nil
}

func bookTitle(bi model.BookInstance) string {
	if bi.Book == nil {
		return ""
	}
	return bi.Book.Title
}

func sortByTitle(books []model.Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].Title < books[j].Title
	})
}

func get(b *bolt.Bucket, id string, v interface{}) error {
	bs := b.Get([]byte(id))
	if bs == nil {
		return errs.ErrNotFound
	}
	return json.Unmarshal(bs, v)
}

func put(b *bolt.Bucket, id string, v interface{}) error {
	js, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(id), js)
}

func each[T any](b *bolt.Bucket, fn func(T)) error {
	return eachErr(b, func(v T) error {
		fn(v)
		return nil
	})
}

func eachErr[T any](b *bolt.Bucket, fn func(T) error) error {
	return b.ForEach(func(_, bs []byte) error {
		var v T
		if err := json.Unmarshal(bs, &v); err != nil {
			return err
		}
		return fn(v)
	})
}
