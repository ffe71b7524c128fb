package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/engconnect/classtools/core/award"
	"github.com/engconnect/classtools/core/roster"
)

const defaultHistoryLimit = 50

type awardApi struct {
	svc    *award.Service
	roster *roster.Service
}

func registerAwardAPI(g *echo.Group, svc *award.Service, rosterSvc *roster.Service) {
	api := awardApi{svc: svc, roster: rosterSvc}

	cg := g.Group("/classes/:id")
	cg.POST("/awards", api.grant)
	cg.GET("/awards", api.history)
	cg.GET("/leaderboard", api.leaderboard)
}

// Handlers

func (api *awardApi) grant(ctx echo.Context) error {
	teacherID, err := getTeacherID(ctx)
	if err != nil {
		return err
	}

	var data award.Request
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Request")
	}

	students, err := api.svc.Grant(ctx.Request().Context(), ctx.Param("id"), teacherID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"students": students})
}

func (api *awardApi) history(ctx echo.Context) error {
	if _, err := getTeacherID(ctx); err != nil {
		return err
	}
	if _, err := api.roster.GetClass(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}

	var filter awardFilter
	filter.Bind(ctx)
	filter.ClassID = ctx.Param("id")
	if filter.Limit == 0 {
		filter.Limit = defaultHistoryLimit
	}

	awards, err := api.svc.History(ctx.Request().Context(), filter.Filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, awards)
}

func (api *awardApi) leaderboard(ctx echo.Context) error {
	if _, err := getTeacherID(ctx); err != nil {
		return err
	}

	var limit int
	if v := ctx.QueryParam("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	students, err := api.svc.Leaderboard(ctx.Request().Context(), ctx.Param("id"), limit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}
