package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
)

type postgresRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewPostgres(db *pgxpool.Pool, log *zap.Logger) *postgresRepository {
	return &postgresRepository{
		db:  db,
		log: log.Named("repo"),
	}
}

const (
	authorsTableName       = `authors`
	booksTableName         = `books`
	bookInstancesTableName = `book_instances`
)

// byteOrder makes ORDER BY compare bytes, independent of the database collation.
const byteOrder = ` COLLATE "C" ASC`

var (
	qb            = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	authorColumns = []string{"id", "first_name", "family_name", "date_of_birth", "date_of_death"}
)

func listAuthorsQuery() (string, []interface{}, error) {
	return qb.Select(authorColumns...).
		From(authorsTableName).
		OrderBy("family_name" + byteOrder).
		ToSql()
}

func getAuthorQuery(id string) (string, []interface{}, error) {
	return qb.Select(authorColumns...).
		From(authorsTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
}

func booksByAuthorQuery(authorID string) (string, []interface{}, error) {
	return qb.Select("id", "title", "summary").
		From(booksTableName).
		Where(sq.Eq{"author_id": authorID}).
		OrderBy("title" + byteOrder).
		ToSql()
}

func bookTitlesQuery() (string, []interface{}, error) {
	return qb.Select("id", "title").
		From(booksTableName).
		OrderBy("title" + byteOrder).
		ToSql()
}

func bookInstancesQuery() sq.SelectBuilder {
	return qb.Select("bi.id", "bi.book_id", "bi.imprint", "bi.status", "bi.due_back",
		"b.title", "b.summary", "b.isbn", "b.author_id").
		From(bookInstancesTableName + " bi").
		LeftJoin(booksTableName + " b ON b.id = bi.book_id")
}

func listBookInstancesQuery() (string, []interface{}, error) {
	return bookInstancesQuery().
		OrderBy("b.title"+byteOrder, "bi.id ASC").
		ToSql()
}

func (r *postgresRepository) ListAuthors(ctx context.Context) ([]model.Author, error) {
	query, args, err := listAuthorsQuery()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("ListAuthors", zap.String("q", query), zap.Error(err))
		return nil, err
	}
	authors, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Author])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return authors, nil
}

func (r *postgresRepository) GetAuthor(ctx context.Context, id string) (model.Author, error) {
	query, args, err := getAuthorQuery(id)
	if err != nil {
		return model.Author{}, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("GetAuthor", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.Author{}, err
	}
	author, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Author])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Author{}, errs.ErrNotFound
		}
		return model.Author{}, err
	}
	return author, nil
}

func (r *postgresRepository) CreateAuthor(ctx context.Context, author model.Author) (model.Author, error) {
	author.ID = uuid.NewString()
	query, args, err := qb.Insert(authorsTableName).
		Columns(authorColumns...).
		Values(author.ID, author.FirstName, author.FamilyName, author.DateOfBirth, author.DateOfDeath).
		ToSql()
	if err != nil {
		return model.Author{}, err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("CreateAuthor", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.Author{}, err
	}
	return author, nil
}

func (r *postgresRepository) DeleteAuthor(ctx context.Context, id string) error {
	query, args, err := qb.Delete(authorsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return errs.ErrHasDependents
		}
		r.log.Error("DeleteAuthor", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return err
	}
	return nil
}

func (r *postgresRepository) ListBooksByAuthor(ctx context.Context, authorID string) ([]model.Book, error) {
	query, args, err := booksByAuthorQuery(authorID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("ListBooksByAuthor", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Book, error) {
		var b model.Book
		err := row.Scan(&b.ID, &b.Title, &b.Summary)
		return b, err
	})
}

func (r *postgresRepository) ListBookTitles(ctx context.Context) ([]model.Book, error) {
	query, args, err := bookTitlesQuery()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("ListBookTitles", zap.String("q", query), zap.Error(err))
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Book, error) {
		var b model.Book
		err := row.Scan(&b.ID, &b.Title)
		return b, err
	})
}

func (r *postgresRepository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	book.ID = uuid.NewString()
	const q = `insert into books (id, title, summary, isbn, author_id)
	values (@id, @title, @summary, @isbn, @author_id)`
	args := pgx.NamedArgs{
		"id":        book.ID,
		"title":     book.Title,
		"summary":   book.Summary,
		"isbn":      book.ISBN,
		"author_id": book.AuthorID,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		r.log.Error("CreateBook", zap.Any("args", args), zap.Error(err))
		return model.Book{}, err
	}
	return book, nil
}

func (r *postgresRepository) ListBookInstances(ctx context.Context) ([]model.BookInstance, error) {
	query, args, err := listBookInstancesQuery()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("ListBookInstances", zap.String("q", query), zap.Error(err))
		return nil, err
	}
	return pgx.CollectRows(rows, scanBookInstance)
}

func (r *postgresRepository) GetBookInstance(ctx context.Context, id string) (model.BookInstance, error) {
	query, args, err := bookInstancesQuery().
		Where(sq.Eq{"bi.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.BookInstance{}, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("GetBookInstance", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.BookInstance{}, err
	}
	bi, err := pgx.CollectOneRow(rows, scanBookInstance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BookInstance{}, errs.ErrNotFound
		}
		return model.BookInstance{}, err
	}
	return bi, nil
}

func (r *postgresRepository) CreateBookInstance(ctx context.Context, bi model.BookInstance) (model.BookInstance, error) {
	bi.ID = uuid.NewString()
	query, args, err := qb.Insert(bookInstancesTableName).
		Columns("id", "book_id", "imprint", "status", "due_back").
		Values(bi.ID, bi.BookID, bi.Imprint, bi.Status, bi.DueBack).
		ToSql()
	if err != nil {
		return model.BookInstance{}, err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("CreateBookInstance", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.BookInstance{}, err
	}
	bi.Book = nil
	return bi, nil
}

// scanBookInstance reads a copy row left-joined with its book; the book is
// nil when the reference does not resolve.
func scanBookInstance(row pgx.CollectableRow) (model.BookInstance, error) {
	var bi model.BookInstance
	var title, summary, isbn, authorID *string
	if err := row.Scan(&bi.ID, &bi.BookID, &bi.Imprint, &bi.Status, &bi.DueBack,
		&title, &summary, &isbn, &authorID); err != nil {
		return model.BookInstance{}, err
	}
	if title != nil {
		bi.Book = &model.Book{
			ID:       bi.BookID,
			Title:    *title,
			Summary:  deref(summary),
			ISBN:     deref(isbn),
			AuthorID: deref(authorID),
		}
	}
	return bi, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
