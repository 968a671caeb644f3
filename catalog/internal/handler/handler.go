package handler

import (
	"net/http"

	_ "github.com/Astemirdum/library-catalog/docs"
	md "github.com/Astemirdum/library-catalog/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	catalogSvc CatalogService
	renderer   echo.Renderer
	log        *zap.Logger
}

func New(catalogSvc CatalogService, renderer echo.Renderer, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		renderer:   renderer,
		log:        log.Named("handler"),
	}
}

// @title       Library catalog
// @version     1.0
// @description Author and book copy pages of the library catalog.
// @BasePath    /
func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Renderer = h.renderer
	e.HTTPErrorHandler = h.HTTPErrorHandler
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.BodyLimit("64K"))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/catalog/authors")
	})

	catalog := e.Group("/catalog",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	catalog.GET("/authors", h.ListAuthors)
	catalog.GET("/author/create", h.AuthorCreateForm)
	catalog.POST("/author/create", h.CreateAuthor)
	catalog.GET("/author/:id/delete", h.AuthorDeleteConfirm)
	catalog.POST("/author/:id/delete", h.DeleteAuthor)
	catalog.GET("/author/:id/update", notImplemented("Author update GET"))
	catalog.POST("/author/:id/update", notImplemented("Author update POST"))
	catalog.GET("/author/:id", h.AuthorDetail)

	catalog.GET("/bookinstances", h.ListBookInstances)
	catalog.GET("/bookinstance/create", h.BookInstanceCreateForm)
	catalog.POST("/bookinstance/create", h.CreateBookInstance)
	catalog.GET("/bookinstance/:id/delete", notImplemented("BookInstance delete GET"))
	catalog.POST("/bookinstance/:id/delete", notImplemented("BookInstance delete POST"))
	catalog.GET("/bookinstance/:id/update", notImplemented("BookInstance update GET"))
	catalog.POST("/bookinstance/:id/update", notImplemented("BookInstance update POST"))
	catalog.GET("/bookinstance/:id", h.BookInstanceDetail)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// notImplemented answers the update and delete routes that have no behaviour yet.
func notImplemented(what string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusNotImplemented, "NOT IMPLEMENTED: "+what)
	}
}
