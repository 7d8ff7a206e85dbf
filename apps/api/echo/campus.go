package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core/campus"
)

type campusApi struct {
	deps ServerDeps
}

func registerCampusAPI(g *echo.Group, authed []echo.MiddlewareFunc, deps ServerDeps) {
	api := campusApi{deps: deps}

	cg := g.Group("/campuses", authed...)
	cg.GET("", api.query)
	cg.POST("", api.create, superAdminMiddleware)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update, superAdminMiddleware)
	cg.DELETE("/:id", api.destroy, superAdminMiddleware)
}

func (api *campusApi) query(ctx echo.Context) error {
	campuses, err := api.deps.CampusSvc.QueryAll(ctx.Request().Context(), ctx.QueryParam(orderingParam))
	if err != nil {
		return errors.Wrap(err, "querying campuses")
	}
	if campuses == nil {
		campuses = []campus.Campus{}
	}
	return ctx.JSON(http.StatusOK, campuses)
}

func (api *campusApi) create(ctx echo.Context) error {
	var data campus.NewCampus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCampus")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	cmp, err := api.deps.CampusSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating campus")
	}
	return ctx.JSON(http.StatusCreated, cmp)
}

func (api *campusApi) retrieve(ctx echo.Context) error {
	cmp, err := api.deps.CampusSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding campus by ID")
	}
	return ctx.JSON(http.StatusOK, cmp)
}

func (api *campusApi) update(ctx echo.Context) error {
	var data campus.UpdateCampus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCampus")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	cmp, err := api.deps.CampusSvc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating campus")
	}
	return ctx.JSON(http.StatusOK, cmp)
}

func (api *campusApi) destroy(ctx echo.Context) error {
	if err := api.deps.CampusSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting campus")
	}
	return ctx.NoContent(http.StatusNoContent)
}
