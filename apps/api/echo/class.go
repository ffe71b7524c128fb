package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/engconnect/classtools/core/roster"
)

type classApi struct {
	svc *roster.Service
}

func registerClassAPI(g *echo.Group, svc *roster.Service) {
	api := classApi{svc: svc}

	cg := g.Group("/classes")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.POST("/:id/students", api.enroll)
	cg.POST("/:id/behaviors", api.createBehavior)

	g.PUT("/students/:id", api.updateStudent)
	g.PUT("/behaviors/:id", api.updateBehavior)
}

// Handlers

func (api *classApi) query(ctx echo.Context) error {
	teacherID, err := getTeacherID(ctx)
	if err != nil {
		return err
	}
	classes, err := api.svc.QueryClasses(ctx.Request().Context(), teacherID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) create(ctx echo.Context) error {
	teacherID, err := getTeacherID(ctx)
	if err != nil {
		return err
	}

	var data roster.NewClass
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	cls, err := api.svc.CreateClass(ctx.Request().Context(), teacherID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classApi) enroll(ctx echo.Context) error {
	if _, err := getTeacherID(ctx); err != nil {
		return err
	}

	var data roster.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := api.svc.Enroll(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *classApi) updateStudent(ctx echo.Context) error {
	if _, err := getTeacherID(ctx); err != nil {
		return err
	}

	var data roster.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	std, err := api.svc.UpdateStudent(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *classApi) createBehavior(ctx echo.Context) error {
	if _, err := getTeacherID(ctx); err != nil {
		return err
	}

	var data roster.NewBehavior
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBehavior")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	bhv, err := api.svc.CreateBehavior(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, bhv)
}

func (api *classApi) updateBehavior(ctx echo.Context) error {
	if _, err := getTeacherID(ctx); err != nil {
		return err
	}

	var data roster.UpdateBehavior
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateBehavior")
	}

	bhv, err := api.svc.UpdateBehavior(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, bhv)
}
