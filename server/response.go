package server

import "github.com/gin-gonic/gin"

// ErrorCode defines standard error codes for programmatic handling
type ErrorCode string

const (
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"      // 400
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR" // 400
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"        // 404
	ErrCodeConflict   ErrorCode = "CONFLICT"         // 409
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"   // 500
	ErrCodeUpstream   ErrorCode = "UPSTREAM_ERROR"   // 502
)

// ErrorResponse is the error body of every failed request.
type ErrorResponse struct {
	Error struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
}

func respondError(c *gin.Context, status int, code ErrorCode, message string) {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	c.AbortWithStatusJSON(status, resp)
}
