package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/handler"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"

	service_mocks "github.com/Astemirdum/library-catalog/catalog/internal/handler/mocks"
)

// recorder remembers the last rendered view and writes its name as the body.
type recorder struct {
	mu   sync.Mutex
	name string
	data echo.Map
}

func (r *recorder) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
	r.data, _ = data.(echo.Map)
	_, err := io.WriteString(w, name)
	return err
}

const (
	authorID = "5b5b5bd5-6e2d-4d1b-9d1e-0d3f1b9c2a11"
	bookID   = "0c1f8d4e-6b8a-4f55-8c1a-3f4b0e6d7a22"
	copyID   = "9a7e2c1d-3b4f-4e5a-8d6c-1b2a3c4d5e33"
)

var (
	born   = time.Date(1973, time.June, 6, 0, 0, 0, 0, time.UTC)
	author = model.Author{ID: authorID, FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: &born}
	book   = model.Book{ID: bookID, Title: "The Name of the Wind", Summary: "Day one.", AuthorID: authorID}
	copy1  = model.BookInstance{ID: copyID, BookID: bookID, Book: &book, Imprint: "Gollancz, 2011.", Status: model.StatusAvailable}
)

func TestHandler(t *testing.T) {
	t.Parallel()
	type input struct {
		method, target string
		form           url.Values
	}
	type response struct {
		expectedCode     int
		expectedView     string
		expectedBody     string
		expectedLocation string
		checkData        func(t *testing.T, data echo.Map)
	}
	type mockBehavior func(r *service_mocks.MockCatalogService)

	tests := []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
	}{
		{
			name: "list authors",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().ListAuthors(gomock.Any()).Return([]model.Author{author}, nil)
			},
			input: input{method: http.MethodGet, target: "/catalog/authors"},
			response: response{
				expectedCode: http.StatusOK,
				expectedView: "author_list",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, "Author List", data["title"])
					require.Equal(t, []model.Author{author}, data["author_list"])
				},
			},
		},
		{
			name: "list authors. store failure",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().ListAuthors(gomock.Any()).Return(nil, errors.New("db internal"))
			},
			input: input{method: http.MethodGet, target: "/catalog/authors"},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedView: "error",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, "db internal", data["message"])
				},
			},
		},
		{
			name: "author detail",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().AuthorDetail(gomock.Any(), authorID).
					Return(model.AuthorDetail{Author: author, Books: []model.Book{book}}, nil)
			},
			input: input{method: http.MethodGet, target: "/catalog/author/" + authorID},
			response: response{
				expectedCode: http.StatusOK,
				expectedView: "author_detail",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, "Author Detail", data["title"])
					require.Equal(t, author, data["author"])
					require.Equal(t, []model.Book{book}, data["author_books"])
				},
			},
		},
		{
			name: "author detail. not found",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().AuthorDetail(gomock.Any(), "missing").
					Return(model.AuthorDetail{}, errors.Wrap(errs.ErrNotFound, "author"))
			},
			input: input{method: http.MethodGet, target: "/catalog/author/missing"},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedView: "error",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, http.StatusNotFound, data["status"])
				},
			},
		},
		{
			name:         "author create form",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			input:        input{method: http.MethodGet, target: "/catalog/author/create"},
			response: response{
				expectedCode: http.StatusOK,
				expectedView: "author_form",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, "Create Author", data["title"])
					require.NotContains(t, data, "errors")
				},
			},
		},
		{
			name: "create author",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().CreateAuthor(gomock.Any(), model.AuthorForm{
					FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: "1973-06-06",
				}).Return(author, nil)
			},
			input: input{method: http.MethodPost, target: "/catalog/author/create", form: url.Values{
				"first_name":    {"Patrick"},
				"family_name":   {"Rothfuss"},
				"date_of_birth": {"1973-06-06"},
			}},
			response: response{
				expectedCode:     http.StatusSeeOther,
				expectedLocation: "/catalog/author/" + authorID,
			},
		},
		{
			name: "create author. validation failed",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().CreateAuthor(gomock.Any(), model.AuthorForm{FamilyName: "Rothfuss"}).
					Return(model.Author{FamilyName: "Rothfuss"}, &errs.ValidationError{
						Messages: []string{"First name must be specified"},
					})
			},
			input: input{method: http.MethodPost, target: "/catalog/author/create", form: url.Values{
				"family_name": {"Rothfuss"},
			}},
			response: response{
				expectedCode: http.StatusUnprocessableEntity,
				expectedView: "author_form",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, model.Author{FamilyName: "Rothfuss"}, data["author"])
					require.Equal(t, []string{"First name must be specified"}, data["errors"])
				},
			},
		},
		{
			name: "create author. store failure",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().CreateAuthor(gomock.Any(), gomock.Any()).
					Return(model.Author{}, errors.New("insert failed"))
			},
			input: input{method: http.MethodPost, target: "/catalog/author/create", form: url.Values{
				"first_name":  {"Patrick"},
				"family_name": {"Rothfuss"},
			}},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedView: "error",
			},
		},
		{
			name: "delete confirm",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().AuthorDetail(gomock.Any(), authorID).
					Return(model.AuthorDetail{Author: author, Books: []model.Book{book}}, nil)
			},
			input: input{method: http.MethodGet, target: "/catalog/author/" + authorID + "/delete"},
			response: response{
				expectedCode: http.StatusOK,
				expectedView: "author_delete",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, "Delete Author", data["title"])
					require.Equal(t, []model.Book{book}, data["author_books"])
				},
			},
		},
		{
			name: "delete confirm. missing author redirects to list",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().AuthorDetail(gomock.Any(), "missing").
					Return(model.AuthorDetail{}, errors.Wrap(errs.ErrNotFound, "author"))
			},
			input: input{method: http.MethodGet, target: "/catalog/author/missing/delete"},
			response: response{
				expectedCode:     http.StatusFound,
				expectedLocation: "/catalog/authors",
			},
		},
		{
			name: "delete author",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().DeleteAuthor(gomock.Any(), authorID).Return(model.AuthorDetail{}, nil)
			},
			input: input{method: http.MethodPost, target: "/catalog/author/" + authorID + "/delete", form: url.Values{
				"authorid": {authorID},
			}},
			response: response{
				expectedCode:     http.StatusSeeOther,
				expectedLocation: "/catalog/authors",
			},
		},
		{
			name: "delete author. books remain",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().DeleteAuthor(gomock.Any(), authorID).
					Return(model.AuthorDetail{Author: author, Books: []model.Book{book}}, errs.ErrHasDependents)
			},
			input: input{method: http.MethodPost, target: "/catalog/author/" + authorID + "/delete"},
			response: response{
				expectedCode: http.StatusConflict,
				expectedView: "author_delete",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, author, data["author"])
					require.Equal(t, []model.Book{book}, data["author_books"])
				},
			},
		},
		{
			name: "list copies",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().ListBookInstances(gomock.Any()).Return([]model.BookInstance{copy1}, nil)
			},
			input: input{method: http.MethodGet, target: "/catalog/bookinstances"},
			response: response{
				expectedCode: http.StatusOK,
				expectedView: "bookinstance_list",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, []model.BookInstance{copy1}, data["bookinstance_list"])
				},
			},
		},
		{
			name: "copy detail",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().BookInstanceDetail(gomock.Any(), copyID).Return(copy1, nil)
			},
			input: input{method: http.MethodGet, target: "/catalog/bookinstance/" + copyID},
			response: response{
				expectedCode: http.StatusOK,
				expectedView: "bookinstance_detail",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, copy1, data["bookinstance"])
				},
			},
		},
		{
			name: "copy detail. not found",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().BookInstanceDetail(gomock.Any(), "missing").
					Return(model.BookInstance{}, errors.Wrap(errs.ErrNotFound, "book instance"))
			},
			input: input{method: http.MethodGet, target: "/catalog/bookinstance/missing"},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedView: "error",
			},
		},
		{
			name: "copy create form",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().ListBookTitles(gomock.Any()).Return([]model.Book{{ID: bookID, Title: book.Title}}, nil)
			},
			input: input{method: http.MethodGet, target: "/catalog/bookinstance/create"},
			response: response{
				expectedCode: http.StatusOK,
				expectedView: "bookinstance_form",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, []model.Book{{ID: bookID, Title: book.Title}}, data["book_list"])
					require.Equal(t, model.Statuses(), data["statuses"])
				},
			},
		},
		{
			name: "create copy",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().CreateBookInstance(gomock.Any(), model.BookInstanceForm{
					Book: bookID, Imprint: "Gollancz, 2011.", Status: "Available",
				}).Return(model.BookInstance{ID: copyID, BookID: bookID}, nil)
			},
			input: input{method: http.MethodPost, target: "/catalog/bookinstance/create", form: url.Values{
				"book":    {bookID},
				"imprint": {"Gollancz, 2011."},
				"status":  {"Available"},
			}},
			response: response{
				expectedCode:     http.StatusSeeOther,
				expectedLocation: "/catalog/bookinstance/" + copyID,
			},
		},
		{
			name: "create copy. validation failed",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				candidate := model.BookInstance{BookID: bookID, Status: model.StatusMaintenance}
				gomock.InOrder(
					r.EXPECT().CreateBookInstance(gomock.Any(), gomock.Any()).
						Return(candidate, &errs.ValidationError{Messages: []string{"Invalid date"}}),
					r.EXPECT().ListBookTitles(gomock.Any()).Return([]model.Book{{ID: bookID, Title: book.Title}}, nil),
				)
			},
			input: input{method: http.MethodPost, target: "/catalog/bookinstance/create", form: url.Values{
				"book":     {bookID},
				"due_back": {"someday"},
			}},
			response: response{
				expectedCode: http.StatusUnprocessableEntity,
				expectedView: "bookinstance_form",
				checkData: func(t *testing.T, data echo.Map) {
					require.Equal(t, []string{"Invalid date"}, data["errors"])
					require.Equal(t, bookID, data["selected_book"])
					require.Equal(t, []model.Book{{ID: bookID, Title: book.Title}}, data["book_list"])
				},
			},
		},
		{
			name: "create copy. book list failure after validation",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().CreateBookInstance(gomock.Any(), gomock.Any()).
					Return(model.BookInstance{}, &errs.ValidationError{Messages: []string{"Book must be specified"}})
				r.EXPECT().ListBookTitles(gomock.Any()).Return(nil, errors.New("db internal"))
			},
			input: input{method: http.MethodPost, target: "/catalog/bookinstance/create", form: url.Values{}},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedView: "error",
			},
		},
		{
			name:         "author update stub",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			input:        input{method: http.MethodGet, target: "/catalog/author/" + authorID + "/update"},
			response: response{
				expectedCode: http.StatusNotImplemented,
				expectedBody: "NOT IMPLEMENTED: Author update GET",
			},
		},
		{
			name:         "copy delete stub",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			input:        input{method: http.MethodPost, target: "/catalog/bookinstance/" + copyID + "/delete"},
			response: response{
				expectedCode: http.StatusNotImplemented,
				expectedBody: "NOT IMPLEMENTED: BookInstance delete POST",
			},
		},
		{
			name:         "copy update stub",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			input:        input{method: http.MethodPost, target: "/catalog/bookinstance/" + copyID + "/update"},
			response: response{
				expectedCode: http.StatusNotImplemented,
				expectedBody: "NOT IMPLEMENTED: BookInstance update POST",
			},
		},
		{
			name:         "root redirects to authors",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			input:        input{method: http.MethodGet, target: "/"},
			response: response{
				expectedCode:     http.StatusFound,
				expectedLocation: "/catalog/authors",
			},
		},
		{
			name:         "health",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			input:        input{method: http.MethodGet, target: "/manage/health"},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: "OK",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCatalogService(c)
			tt.mockBehavior(svc)
			views := &recorder{}
			h := handler.New(svc, views, zap.NewNop())

			var body io.Reader
			if tt.input.form != nil {
				body = strings.NewReader(tt.input.form.Encode())
			}
			req := httptest.NewRequest(tt.input.method, tt.input.target, body)
			if tt.input.form != nil {
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
			}
			w := httptest.NewRecorder()
			h.NewRouter().ServeHTTP(w, req)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedLocation != "" {
				require.Equal(t, tt.response.expectedLocation, w.Header().Get(echo.HeaderLocation))
			}
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, w.Body.String())
			}
			if tt.response.expectedView != "" {
				require.Equal(t, tt.response.expectedView, views.name)
				require.Equal(t, tt.response.expectedView, w.Body.String())
			}
			if tt.response.checkData != nil {
				tt.response.checkData(t, views.data)
			}
		})
	}
}
