package echoapi

import (
	"github.com/labstack/echo/v4"
)

// teacherIDHeader carries the acting teacher's identity. The API sits behind
// an authenticating proxy which is trusted to set it.
const teacherIDHeader = "X-Teacher-ID"

func getTeacherID(ctx echo.Context) (string, error) {
	id := ctx.Request().Header.Get(teacherIDHeader)
	if id == "" {
		return "", errUnauthenticated
	}
	return id, nil
}
