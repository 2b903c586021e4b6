package ez

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"urbanvibe-api/internal/domain"
	resp "urbanvibe-api/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

type Binder string

const (
	BindQuery Binder = "query" // ?a=b
	BindURI   Binder = "uri"   // :id
	BindNone  Binder = "none"
)

// AErr carries an explicit HTTP code out of a handler.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }

// Action describes one route: I is the bound input, O the JSON output.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		case BindURI:
			bindErr = c.ShouldBindUri(&in)
		}
		if bindErr != nil {
			resp.Abort(c, resp.CodeBadRequest, "invalid parameters")
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}

	method := strings.ToUpper(a.Method)
	if method == "" {
		method = http.MethodGet
	}
	e.g.Handle(method, a.Path, h)
}

// WriteError maps handler errors to status codes. Causes of 5xx answers are
// attached to the gin context for the access log and never sent to clients.
func WriteError(c *gin.Context, err error) {
	var ae *AErr
	switch {
	case errors.As(err, &ae):
		if ae.Code >= resp.CodeServerError {
			_ = c.Error(err)
		}
		resp.Abort(c, ae.Code, ae.Msg)
	case errors.Is(err, domain.ErrNotFound):
		resp.Abort(c, resp.CodeNotFound, "")
	case errors.Is(err, domain.ErrBlocked):
		resp.Abort(c, resp.CodeForbidden, "user is blocked")
	case errors.Is(err, domain.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		_ = c.Error(err)
		resp.Abort(c, resp.CodeUnavailable, "")
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful can be written
		_ = c.Error(err)
		c.Abort()
	default:
		_ = c.Error(err)
		resp.Abort(c, resp.CodeServerError, "")
	}
}
