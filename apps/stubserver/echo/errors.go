package stubapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/classroom"
	"github.com/trezcool/shule/core/comment"
	"github.com/trezcool/shule/core/material"
	"github.com/trezcool/shule/core/submission"
	"github.com/trezcool/shule/core/user"
)

// stubHTTPErrorHandler maps the client-side error taxonomy back onto the wire
// shapes the real backend uses: {"error": ...} plus a "fields" map for
// validation failures.
func stubHTTPErrorHandler(err error, ctx echo.Context) {
	var code int
	var payload interface{}

	switch origErr := errors.Cause(err).(type) {
	case *echo.HTTPError:
		code = origErr.Code
		payload = echo.Map{"error": origErr.Message}
	case *core.ValidationError:
		flds := make(map[string]string, len(origErr.Fields))
		for _, fErr := range origErr.Fields {
			flds[fErr.Field] = fErr.Error
		}
		code = http.StatusBadRequest
		payload = echo.Map{"error": origErr.Error(), "fields": flds}
	case *core.APIError:
		code = origErr.StatusCode
		payload = echo.Map{"error": origErr.Message}
	default:
		switch origErr {
		case assignment.ErrNotFound, submission.ErrNotFound, material.ErrNotFound,
			comment.ErrNotFound, classroom.ErrNotFound, user.ErrNotFound:
			code = http.StatusNotFound
			payload = echo.Map{"error": origErr.Error()}
		default:
			code = http.StatusInternalServerError
			payload = echo.Map{"error": http.StatusText(code)}
		}
	}

	if !ctx.Response().Committed {
		if jErr := ctx.JSON(code, payload); jErr != nil {
			ctx.Echo().Logger.Error(jErr)
		}
	}
}
