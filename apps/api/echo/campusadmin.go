package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core/campusadmin"
)

type campusAdminApi struct {
	deps ServerDeps
}

func registerCampusAdminAPI(g *echo.Group, authed []echo.MiddlewareFunc, deps ServerDeps) {
	api := campusAdminApi{deps: deps}

	mws := append(append([]echo.MiddlewareFunc{}, authed...), superAdminMiddleware)
	ag := g.Group("/campus-admins", mws...)
	ag.GET("", api.query)
	ag.POST("", api.assign)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *campusAdminApi) query(ctx echo.Context) error {
	admins, err := api.deps.CampusAdminSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying campus admins")
	}
	if admins == nil {
		admins = []campusadmin.CampusAdmin{}
	}
	return ctx.JSON(http.StatusOK, admins)
}

func (api *campusAdminApi) assign(ctx echo.Context) error {
	var data campusadmin.NewCampusAdmin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCampusAdmin")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	adm, err := api.deps.CampusAdminSvc.Assign(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "assigning campus admin")
	}
	if m := api.deps.Metrics; m != nil {
		m.AdminAssignments.Inc()
	}
	return ctx.JSON(http.StatusCreated, adm)
}

func (api *campusAdminApi) retrieve(ctx echo.Context) error {
	adm, err := api.deps.CampusAdminSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding campus admin by ID")
	}
	return ctx.JSON(http.StatusOK, adm)
}

func (api *campusAdminApi) update(ctx echo.Context) error {
	var data campusadmin.UpdateCampusAdmin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCampusAdmin")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	adm, err := api.deps.CampusAdminSvc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating campus admin")
	}
	return ctx.JSON(http.StatusOK, adm)
}

func (api *campusAdminApi) destroy(ctx echo.Context) error {
	if err := api.deps.CampusAdminSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting campus admin")
	}
	return ctx.NoContent(http.StatusNoContent)
}
