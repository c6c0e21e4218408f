package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	ErrorMsg   string `json:"error"`
}

func (e *Err) Error() string {
	return fmt.Sprintf("status code %d - %s", e.StatusCode, e.ErrorMsg)
}

// RenderErr writes the error response. Internal errors are logged with the
// request ID and masked so their details never reach the client.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("server error encountered",
			zap.Int("status_code", err.StatusCode),
			zap.String("error", err.ErrorMsg),
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.Request.URL.Path),
		)

		masked := &Err{
			StatusCode: err.StatusCode,
			ErrorMsg:   http.StatusText(err.StatusCode),
		}
		ctx.JSON(masked.StatusCode, masked)

		return
	}

	ctx.JSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		ErrorMsg:   err.Error(),
	}
}

func ErrUnauthorized(msg string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		ErrorMsg:   msg,
	}
}

func ErrWrongCredentials() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		ErrorMsg:   "wrong credentials",
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		ErrorMsg:   err.Error(),
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		ErrorMsg:   fmt.Sprintf("%v not found (%v = %v)", resource, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		ErrorMsg:   err.Error(),
	}
}

func ErrBadGateway(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadGateway,
		ErrorMsg:   err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		ErrorMsg:   err.Error(),
	}
}
