package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type dashboardApi struct {
	deps ServerDeps
}

func registerDashboardAPI(g *echo.Group, authed []echo.MiddlewareFunc, deps ServerDeps) {
	api := dashboardApi{deps: deps}

	dg := g.Group("/dashboard", authed...)
	dg.GET("/campuses", api.campusCards)
	dg.GET("/audit", api.audit, superAdminMiddleware)
}

func (api *dashboardApi) campusCards(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	campusID, err := sess.ScopeCampus(ctx.QueryParam("campus_id"))
	if err != nil {
		return err
	}
	cards, err := api.deps.DashboardSvc.CampusCards(ctx.Request().Context(), campusID)
	if err != nil {
		return errors.Wrap(err, "building campus cards")
	}
	return ctx.JSON(http.StatusOK, cards)
}

func (api *dashboardApi) audit(ctx echo.Context) error {
	report, err := api.deps.DashboardSvc.Audit(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "auditing references")
	}
	return ctx.JSON(http.StatusOK, report)
}
