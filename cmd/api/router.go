package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/flash"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
	"library-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)
	router.SetHTMLTemplate(c.Templates)

	setupBookRoutes(router, c)
	setupAuthorRoutes(router, c)

	router.POST("/clear_flash", clearFlashHandler(c))
	router.GET("/health", healthCheckHandler(c))

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Page not found.")
	})

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/", c.BookHandler.Home)
	r.POST("/", c.BookHandler.HomeSubmit)
	r.GET("/library", c.BookHandler.Library)
	r.GET("/add_book", c.BookHandler.AddBookForm)
	r.POST("/add_book", c.BookHandler.AddBook)
	r.POST("/book/:id/delete", c.BookHandler.DeleteBook)
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/add_author", c.AuthorHandler.AddAuthorForm)
	r.POST("/add_author", c.AuthorHandler.AddAuthor)
	r.GET("/author/:id", c.AuthorHandler.Show)
}

func clearFlashHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		flash.Consume(ctx, c.Flash)
		ctx.Status(http.StatusNoContent)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		if err := c.Ping(reqCtx); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", err.Error())
			return
		}

		books, err := c.BookService.Count(reqCtx)
		if err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", err.Error())
			return
		}
		authors, err := c.AuthorService.Count(reqCtx)
		if err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", err.Error())
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
			"driver":  c.Config.Database.Driver,
			"books":   books,
			"authors": authors,
		})
	}
}
