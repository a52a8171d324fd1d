package middleware

import (
	"log/slog"
	"net/http"

	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public error as the flat error body when the
// handler aborted without writing one.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.Response{Error: "Internal server error"})
	}
}

// CustomRecovery turns a panic into a 500 with the flat body. The stack is taken
// inside the deferred call so it still points at the panicking frame.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := errs.Newf("panic: %v", r)
				slog.Error("recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", errs.ExtractStackLines(err, 15))

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					httperr.Response{Status: http.StatusInternalServerError, Error: "Internal server error"})
			}
		}()
		c.Next()
	}
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, httperr.Response{Status: http.StatusNotFound, Error: "Not found"})
}

func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, httperr.Response{Status: http.StatusMethodNotAllowed, Error: "Method not allowed"})
}
