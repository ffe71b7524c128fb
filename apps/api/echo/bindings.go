package echoapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/award"
)

var orderingParam = "ordering"

// bindOrderings parses a comma-separated `ordering` query param; a leading "-"
// means descending.
func bindOrderings(ctx echo.Context) []core.DBOrdering {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return nil
	}

	var orderings []core.DBOrdering
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
	return orderings
}

// awardFilter binds award history query params onto an award.Filter.
// Unparseable values are ignored rather than rejected.
type awardFilter struct {
	award.Filter
}

func (f *awardFilter) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}

	f.StudentID = ctx.QueryParam("student_id")
	f.BehaviorID = ctx.QueryParam("behavior_id")
	if v := ctx.QueryParam("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.From = t
		}
	}
	if v := ctx.QueryParam("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.To = t
		}
	}
	if v := ctx.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}
	f.Orderings = bindOrderings(ctx)
}
