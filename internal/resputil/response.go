package resputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every endpoint. Declared generically so
// swagger can document the data payload per route.
type Response[T any] struct {
	Code ErrorCode `json:"code"`
	Data T         `json:"data"`
	Msg  string    `json:"msg"`
}

func wrapResponse(c *gin.Context, httpCode int, msg string, data any, code ErrorCode) {
	c.JSON(httpCode, Response[any]{
		Code: code,
		Data: data,
		Msg:  msg,
	})
}

func Success(c *gin.Context, data any) {
	wrapResponse(c, http.StatusOK, "", data, OK)
}

// Error reports a failure that is not tied to a specific HTTP semantic;
// the client switches on the error code.
func Error(c *gin.Context, msg string, errorCode ErrorCode) {
	wrapResponse(c, http.StatusInternalServerError, msg, nil, errorCode)
}

func HTTPError(c *gin.Context, httpCode int, msg string, errorCode ErrorCode) {
	wrapResponse(c, httpCode, msg, nil, errorCode)
}

func BadRequestError(c *gin.Context, msg string) {
	wrapResponse(c, http.StatusBadRequest, msg, nil, InvalidRequest)
}

// RedirectError answers a request for a view the client must not show,
// carrying the route to go to instead (e.g. setup gating).
func RedirectError(c *gin.Context, msg, redirectTo string, errorCode ErrorCode) {
	wrapResponse(c, http.StatusConflict, msg, gin.H{"redirectTo": redirectTo}, errorCode)
}
