package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
)

// ListBookInstances godoc
// @Summary  List book copies with their book
// @Tags     bookinstances
// @Produce  html
// @Success  200
// @Router   /catalog/bookinstances [get]
func (h *Handler) ListBookInstances(c echo.Context) error {
	items, err := h.catalogSvc.ListBookInstances(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "bookinstance_list", echo.Map{
		"title":             "Book Instance List",
		"bookinstance_list": items,
	})
}

// BookInstanceDetail godoc
// @Summary  One book copy
// @Tags     bookinstances
// @Produce  html
// @Param    id  path  string  true  "copy id"
// @Success  200
// @Failure  404
// @Router   /catalog/bookinstance/{id} [get]
func (h *Handler) BookInstanceDetail(c echo.Context) error {
	bi, err := h.catalogSvc.BookInstanceDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "bookinstance_detail", echo.Map{
		"title":        "Book",
		"bookinstance": bi,
	})
}

// BookInstanceCreateForm godoc
// @Summary  Empty copy form
// @Tags     bookinstances
// @Produce  html
// @Success  200
// @Router   /catalog/bookinstance/create [get]
func (h *Handler) BookInstanceCreateForm(c echo.Context) error {
	books, err := h.catalogSvc.ListBookTitles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "bookinstance_form", echo.Map{
		"title":     "Create BookInstance",
		"book_list": books,
		"statuses":  model.Statuses(),
	})
}

// CreateBookInstance godoc
// @Summary  Create a book copy
// @Tags     bookinstances
// @Accept   x-www-form-urlencoded
// @Produce  html
// @Param    book      formData  string  true   "book id"
// @Param    imprint   formData  string  false  "imprint"
// @Param    status    formData  string  false  "Available, Maintenance, Loaned or Reserved"
// @Param    due_back  formData  string  false  "YYYY-MM-DD"
// @Success  303
// @Failure  422
// @Router   /catalog/bookinstance/create [post]
func (h *Handler) CreateBookInstance(c echo.Context) error {
	var form model.BookInstanceForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	ctx := c.Request().Context()
	bi, err := h.catalogSvc.CreateBookInstance(ctx, form)
	if err != nil {
		if errs.Kind(err) != errs.KindValidationFailed {
			return err
		}
		// fresh book list for the re-rendered form
		books, lerr := h.catalogSvc.ListBookTitles(ctx)
		if lerr != nil {
			return lerr
		}
		return c.Render(http.StatusUnprocessableEntity, "bookinstance_form", echo.Map{
			"title":         "Create BookInstance",
			"book_list":     books,
			"statuses":      model.Statuses(),
			"selected_book": bi.BookID,
			"bookinstance":  bi,
			"errors":        errs.Messages(err),
		})
	}
	return c.Redirect(http.StatusSeeOther, bi.URL())
}
