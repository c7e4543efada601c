package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	bookService "library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/flash"
	"library-catalog/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
	books   bookService.ServiceInterface
	flash   flash.Store
}

func NewHandler(svc service.ServiceInterface, books bookService.ServiceInterface, store flash.Store) *Handler {
	return &Handler{
		service: svc,
		books:   books,
		flash:   store,
	}
}

// AddAuthorForm - GET /add_author
func (h *Handler) AddAuthorForm(c *gin.Context) {
	response.Page(c, http.StatusOK, "add_author.html", gin.H{
		"Title": "Add an author",
	}, flash.Consume(c, h.flash))
}

// AddAuthor - POST /add_author
func (h *Handler) AddAuthor(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Queue(c, h.flash, flash.Error("Could not read the submitted form."))
		response.Redirect(c, "/add_author")
		return
	}

	if _, err := h.service.Create(c.Request.Context(), req); err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			flash.Queue(c, h.flash, flash.Error("Name and birth date are required!"))
			response.Redirect(c, "/add_author")
			return
		}
		response.ServerError(c, err)
		return
	}

	flash.Queue(c, h.flash, flash.Success("Author successfully added!"))
	response.Redirect(c, "/add_author")
}

// Show - GET /author/:id
func (h *Handler) Show(c *gin.Context) {
	id, err := model.ParseID(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Author not found.")
		return
	}

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			response.NotFound(c, "Author not found.")
			return
		}
		response.ServerError(c, err)
		return
	}

	books, err := h.books.ListByAuthor(c.Request.Context(), author.ID)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.Page(c, http.StatusOK, "author.html", gin.H{
		"Title":  author.Name,
		"Author": author,
		"Books":  books,
	}, flash.Consume(c, h.flash))
}
