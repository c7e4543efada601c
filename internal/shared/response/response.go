package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/flash"
)

// ========================================
// JSON
// ========================================

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// ========================================
// HTML
// ========================================

// Page renders a template with the flash messages consumed for this request.
// data may be nil.
func Page(c *gin.Context, status int, name string, data gin.H, messages []flash.Message) {
	if data == nil {
		data = gin.H{}
	}
	data["Messages"] = messages
	c.HTML(status, name, data)
}

// Redirect answers a form submission; 303 makes the browser follow with GET.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// ServerError logs err and renders the generic error page.
func ServerError(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")

	ErrorPage(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// NotFound renders the error page with a 404 status.
func NotFound(c *gin.Context, message string) {
	ErrorPage(c, http.StatusNotFound, message)
}

func ErrorPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
	c.Abort()
}
