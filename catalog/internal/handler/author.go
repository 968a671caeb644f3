package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
)

// ListAuthors godoc
// @Summary  List authors ordered by family name
// @Tags     authors
// @Produce  html
// @Success  200
// @Router   /catalog/authors [get]
func (h *Handler) ListAuthors(c echo.Context) error {
	authors, err := h.catalogSvc.ListAuthors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "author_list", echo.Map{
		"title":       "Author List",
		"author_list": authors,
	})
}

// AuthorDetail godoc
// @Summary  Author with their books
// @Tags     authors
// @Produce  html
// @Param    id  path  string  true  "author id"
// @Success  200
// @Failure  404
// @Router   /catalog/author/{id} [get]
func (h *Handler) AuthorDetail(c echo.Context) error {
	detail, err := h.catalogSvc.AuthorDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "author_detail", echo.Map{
		"title":        "Author Detail",
		"author":       detail.Author,
		"author_books": detail.Books,
	})
}

// AuthorCreateForm godoc
// @Summary  Empty author form
// @Tags     authors
// @Produce  html
// @Success  200
// @Router   /catalog/author/create [get]
func (h *Handler) AuthorCreateForm(c echo.Context) error {
	return c.Render(http.StatusOK, "author_form", echo.Map{
		"title": "Create Author",
	})
}

// CreateAuthor godoc
// @Summary  Create an author
// @Tags     authors
// @Accept   x-www-form-urlencoded
// @Produce  html
// @Param    first_name     formData  string  true   "first name"
// @Param    family_name    formData  string  true   "family name"
// @Param    date_of_birth  formData  string  false  "YYYY-MM-DD"
// @Param    date_of_death  formData  string  false  "YYYY-MM-DD"
// @Success  303
// @Failure  422
// @Router   /catalog/author/create [post]
func (h *Handler) CreateAuthor(c echo.Context) error {
	var form model.AuthorForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	author, err := h.catalogSvc.CreateAuthor(c.Request().Context(), form)
	if err != nil {
		if errs.Kind(err) != errs.KindValidationFailed {
			return err
		}
		return c.Render(http.StatusUnprocessableEntity, "author_form", echo.Map{
			"title":  "Create Author",
			"author": author,
			"errors": errs.Messages(err),
		})
	}
	return c.Redirect(http.StatusSeeOther, author.URL())
}

// AuthorDeleteConfirm godoc
// @Summary  Delete confirmation page
// @Description An unknown author redirects to the author list instead of answering 404.
// @Tags     authors
// @Produce  html
// @Param    id  path  string  true  "author id"
// @Success  200
// @Success  302
// @Router   /catalog/author/{id}/delete [get]
func (h *Handler) AuthorDeleteConfirm(c echo.Context) error {
	detail, err := h.catalogSvc.AuthorDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errs.Kind(err) == errs.KindNotFound {
			return c.Redirect(http.StatusFound, model.AuthorsURL())
		}
		return err
	}
	return h.renderDeleteConfirm(c, http.StatusOK, detail)
}

// DeleteAuthor godoc
// @Summary  Delete an author that has no books
// @Description Renders the confirmation page again while books still reference the author.
// @Tags     authors
// @Produce  html
// @Param    id  path  string  true  "author id"
// @Success  303
// @Failure  409
// @Router   /catalog/author/{id}/delete [post]
func (h *Handler) DeleteAuthor(c echo.Context) error {
	detail, err := h.catalogSvc.DeleteAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errs.ErrHasDependents) {
			return h.renderDeleteConfirm(c, http.StatusConflict, detail)
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, model.AuthorsURL())
}

func (h *Handler) renderDeleteConfirm(c echo.Context, code int, detail model.AuthorDetail) error {
	return c.Render(code, "author_delete", echo.Map{
		"title":        "Delete Author",
		"author":       detail.Author,
		"author_books": detail.Books,
	})
}
