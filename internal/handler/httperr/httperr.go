package httperr

import (
	"github.com/gin-gonic/gin"
)

// Detail carries the optional fields of an error body. Nil fields are omitted.
type Detail struct {
	Code      string `json:"code,omitempty"`
	Details   string `json:"details,omitempty"`
	Available *int   `json:"available,omitempty"`
	PriceID   string `json:"priceId,omitempty"`
}

// Response is the flat error body: {"error": "...", ...detail}.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
	*Detail
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail *Detail) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg, Detail: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
