package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/engconnect/classtools/core/roster"
	"github.com/engconnect/classtools/core/seating"
)

type seatingApi struct {
	svc    *seating.Service
	roster *roster.Service
}

func registerSeatingAPI(g *echo.Group, svc *seating.Service, rosterSvc *roster.Service) {
	api := seatingApi{svc: svc, roster: rosterSvc}

	cg := g.Group("/classes/:id")
	cg.GET("/tools", api.tools)
	cg.PUT("/seating", api.saveLayout)
	cg.GET("/grid-config", api.gridConfig)
	cg.PUT("/grid-config", api.saveGridConfig)
}

// Handlers

func (api *seatingApi) tools(ctx echo.Context) error {
	if _, err := getTeacherID(ctx); err != nil {
		return err
	}
	tools, err := api.svc.Tools(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tools)
}

func (api *seatingApi) saveLayout(ctx echo.Context) error {
	if _, err := getTeacherID(ctx); err != nil {
		return err
	}

	var data struct {
		Seats []seating.Seat `json:"seats"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding seat list")
	}

	classID := ctx.Param("id")
	if err := api.svc.SaveLayout(ctx.Request().Context(), classID, seating.Layout(data.Seats)); err != nil {
		return err
	}

	seats, err := api.svc.Layout(ctx.Request().Context(), classID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"seats": seats})
}

func (api *seatingApi) gridConfig(ctx echo.Context) error {
	if _, err := getTeacherID(ctx); err != nil {
		return err
	}
	if _, err := api.roster.GetClass(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	gc, err := api.svc.Config(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, gc)
}

func (api *seatingApi) saveGridConfig(ctx echo.Context) error {
	if _, err := getTeacherID(ctx); err != nil {
		return err
	}

	var data seating.GridConfig
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GridConfig")
	}

	gc, err := api.svc.SaveConfig(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, gc)
}
