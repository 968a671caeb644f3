package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	catalogRepo "github.com/Astemirdum/library-catalog/catalog/internal/repository"
	"github.com/Astemirdum/library-catalog/pkg/kafka"
	"github.com/Astemirdum/library-catalog/pkg/validate"
)

type EventPublisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

type Service struct {
	log       *zap.Logger
	repo      catalogRepo.Repository
	events    EventPublisher
	validator *validate.CustomValidator
	now       func() time.Time
}

func NewService(repo catalogRepo.Repository, events EventPublisher, log *zap.Logger) *Service {
	if events == nil {
		events = kafka.NopPublisher{}
	}
	return &Service{
		log:       log.Named("service"),
		repo:      repo,
		events:    events,
		validator: validate.NewCustomValidator(),
		now:       time.Now,
	}
}

func (s *Service) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.repo.ListAuthors(ctx)
}

// AuthorDetail fetches the author and its books concurrently.
func (s *Service) AuthorDetail(ctx context.Context, id string) (model.AuthorDetail, error) {
	detail, found, err := s.authorWithBooks(ctx, id)
	if err != nil {
		return model.AuthorDetail{}, err
	}
	if !found {
		return model.AuthorDetail{}, errors.Wrap(errs.ErrNotFound, "author")
	}
	return detail, nil
}

// CreateAuthor runs the author form through trimming, validation and
// escaping. The candidate author is returned even when validation fails so
// the form can be rendered again with the submitted values.
func (s *Service) CreateAuthor(ctx context.Context, form model.AuthorForm) (model.Author, error) {
	form = form.Normalize()
	verr := s.validator.Validate(form)
	author := form.Author()
	if verr != nil {
		return author, validationError(verr)
	}

	created, err := s.repo.CreateAuthor(ctx, author)
	if err != nil {
		return author, errors.Wrap(err, "create author")
	}
	s.publish(ctx, kafka.EventAuthorCreated, created.ID)
	return created, nil
}

// DeleteAuthor deletes the author only when no book references it. The
// check is made here, at deletion time. When books exist the author and its
// books are returned along with errs.ErrHasDependents and nothing is changed.
// A missing author with no books is treated as already deleted.
func (s *Service) DeleteAuthor(ctx context.Context, id string) (model.AuthorDetail, error) {
	detail, _, err := s.authorWithBooks(ctx, id)
	if err != nil {
		return model.AuthorDetail{}, err
	}
	if len(detail.Books) > 0 {
		return detail, errs.ErrHasDependents
	}

	if err := s.repo.DeleteAuthor(ctx, id); err != nil {
		if !errors.Is(err, errs.ErrHasDependents) {
			return model.AuthorDetail{}, errors.Wrap(err, "delete author")
		}
		// a book was added after the check above; the store refused
		s.log.Info("author delete raced with book insert", zap.String("author", id))
		fresh, _, ferr := s.authorWithBooks(ctx, id)
		if ferr != nil {
			return model.AuthorDetail{}, ferr
		}
		return fresh, errs.ErrHasDependents
	}
	s.publish(ctx, kafka.EventAuthorDeleted, id)
	return detail, nil
}

func (s *Service) authorWithBooks(ctx context.Context, id string) (model.AuthorDetail, bool, error) {
	var (
		detail model.AuthorDetail
		found  bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		author, err := s.repo.GetAuthor(gctx, id)
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "get author")
		}
		detail.Author, found = author, true
		return nil
	})
	g.Go(func() error {
		books, err := s.repo.ListBooksByAuthor(gctx, id)
		if err != nil {
			return errors.Wrap(err, "list books by author")
		}
		detail.Books = books
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.AuthorDetail{}, false, err
	}
	return detail, found, nil
}

func (s *Service) ListBookInstances(ctx context.Context) ([]model.BookInstance, error) {
	return s.repo.ListBookInstances(ctx)
}

func (s *Service) BookInstanceDetail(ctx context.Context, id string) (model.BookInstance, error) {
	bi, err := s.repo.GetBookInstance(ctx, id)
	if err != nil {
		return model.BookInstance{}, errors.Wrap(err, "book copy")
	}
	return bi, nil
}

// ListBookTitles feeds the copy form's book selector.
func (s *Service) ListBookTitles(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBookTitles(ctx)
}

// CreateBookInstance mirrors CreateAuthor for copies.
func (s *Service) CreateBookInstance(ctx context.Context, form model.BookInstanceForm) (model.BookInstance, error) {
	form = form.Normalize()
	verr := s.validator.Validate(form)
	bi := form.BookInstance()
	if verr != nil {
		return bi, validationError(verr)
	}

	created, err := s.repo.CreateBookInstance(ctx, bi)
	if err != nil {
		return bi, errors.Wrap(err, "create book instance")
	}
	s.publish(ctx, kafka.EventBookInstanceCreated, created.ID)
	return created, nil
}

func (s *Service) publish(ctx context.Context, typ kafka.EventType, id string) {
	event := kafka.Event{Type: typ, EntityID: id, Timestamp: s.now().UTC()}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn("publish event", zap.String("type", string(typ)), zap.String("id", id), zap.Error(err))
	}
}

func validationError(err error) error {
	var msgs validate.Messages
	if errors.As(err, &msgs) {
		return &errs.ValidationError{Messages: msgs}
	}
	return errors.Wrap(err, "validate")
}
