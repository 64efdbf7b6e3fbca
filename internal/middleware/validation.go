package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/benchtrack/internal/app/models/dto"
)

const validatedBodyKey = "validatedBody"

// ValidateRequest binds and validates the JSON body into a fresh T and
// stores it for the handler. Binding tags run through gin's validator.
func ValidateRequest[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := new(T)
		if err := c.ShouldBindJSON(req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}

		c.Set(validatedBodyKey, req)
		c.Next()
	}
}

// BindBody returns the body validated by ValidateRequest, binding it itself
// when the middleware did not run. On failure the 400 response is written
// and ok is false.
func BindBody[T any](c *gin.Context) (req *T, ok bool) {
	if v, exists := c.Get(validatedBodyKey); exists {
		if typed, match := v.(*T); match {
			return typed, true
		}
	}

	req = new(T)
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return nil, false
	}
	return req, true
}
