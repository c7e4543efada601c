package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authorService "library-catalog/internal/domains/author/service"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/flash"
	"library-catalog/internal/shared/response"
)

// Handler serves the listing, add-book and delete endpoints.
type Handler struct {
	service service.ServiceInterface
	authors authorService.ServiceInterface
	flash   flash.Store
}

// NewHandler - Constructor with DI
func NewHandler(svc service.ServiceInterface, authors authorService.ServiceInterface, store flash.Store) *Handler {
	return &Handler{
		service: svc,
		authors: authors,
		flash:   store,
	}
}

// Home - GET /?search=&sort_by=title|author&direction=asc|desc
func (h *Handler) Home(c *gin.Context) {
	filter := model.NewListFilter(c.Query("search"), c.Query("sort_by"), c.Query("direction"))
	h.renderListing(c, "/", "Library", filter, true)
}

// Library - GET /library?sort_by=&direction= (no search)
func (h *Handler) Library(c *gin.Context) {
	filter := model.NewListFilter("", c.Query("sort_by"), c.Query("direction"))
	h.renderListing(c, "/library", "All books", filter, false)
}

func (h *Handler) renderListing(c *gin.Context, action, title string, filter model.ListFilter, showSearch bool) {
	books, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.Page(c, http.StatusOK, "home.html", gin.H{
		"Title":       title,
		"Action":      action,
		"ShowSearch":  showSearch,
		"Books":       books,
		"SearchQuery": filter.Search,
		"SortBy":      string(filter.SortBy),
		"Direction":   string(filter.Direction),
	}, flash.Consume(c, h.flash))
}

// HomeSubmit - POST / with form field delete_book_id
func (h *Handler) HomeSubmit(c *gin.Context) {
	raw := c.PostForm("delete_book_id")
	if strings.TrimSpace(raw) == "" {
		response.Redirect(c, "/")
		return
	}
	h.deleteAndRedirect(c, raw)
}

// DeleteBook - POST /book/:id/delete
func (h *Handler) DeleteBook(c *gin.Context) {
	h.deleteAndRedirect(c, c.Param("id"))
}

func (h *Handler) deleteAndRedirect(c *gin.Context, rawID string) {
	id, err := model.ParseBookID(rawID)
	if err == nil {
		var result *model.DeleteResult
		result, err = h.service.Delete(c.Request.Context(), id)
		if err == nil {
			flash.Queue(c, h.flash, deleteMessages(result)...)
			response.Redirect(c, "/")
			return
		}
	}

	msg, ok := messageFor(err)
	if !ok {
		response.ServerError(c, err)
		return
	}
	flash.Queue(c, h.flash, msg)
	response.Redirect(c, "/")
}

// AddBookForm - GET /add_book
func (h *Handler) AddBookForm(c *gin.Context) {
	authors, err := h.authors.List(c.Request.Context())
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.Page(c, http.StatusOK, "add_book.html", gin.H{
		"Title":   "Add a book",
		"Authors": authors,
	}, flash.Consume(c, h.flash))
}

// AddBook - POST /add_book
func (h *Handler) AddBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Queue(c, h.flash, flash.Error("Could not read the submitted form."))
		response.Redirect(c, "/add_book")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		msg, ok := messageFor(err)
		if !ok {
			response.ServerError(c, err)
			return
		}
		flash.Queue(c, h.flash, msg)
		response.Redirect(c, "/add_book")
		return
	}

	flash.Queue(c, h.flash, flash.Success(fmt.Sprintf("Book %q successfully added!", created.Title)))
	response.Redirect(c, "/add_book")
}
