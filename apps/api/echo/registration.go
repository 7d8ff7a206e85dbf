package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/registration"
)

const contextObjectKey = "object"

var errRegNotFoundInCtx = errors.New("registration object not found in echo.Context")

type registrationApi struct {
	deps ServerDeps
}

func registerRegistrationAPI(g *echo.Group, authed []echo.MiddlewareFunc, deps ServerDeps) {
	api := registrationApi{deps: deps}

	rg := g.Group("/registrations")

	// public registration form
	rg.POST("", api.create)
	rg.GET("/preview", api.preview)
	rg.GET("/lookup", api.lookup)

	// authed endpoints, scoped to the campus of a campus admin.
	// Middlewares are set per route: a sub-group with middlewares would also catch the public POST.
	rg.GET("", api.query, authed...)

	objMws := append(append([]echo.MiddlewareFunc{}, authed...), api.objectMiddleware)
	rg.GET("/:id", api.retrieve, objMws...)
	rg.PUT("/:id", api.update, objMws...)
	rg.DELETE("/:id", api.destroy, objMws...)
}

// objectMiddleware loads the registration of the :id param, if the session may access it.
func (api *registrationApi) objectMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess, err := getContextSession(ctx)
		if err != nil {
			return err
		}
		reg, err := api.deps.RegistrationSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
		if err != nil {
			return errors.Wrap(err, "finding registration by ID")
		}
		if !sess.CanAccessCampus(reg.CampusID) {
			return errHttpForbidden
		}
		ctx.Set(contextObjectKey, reg)
		return next(ctx)
	}
}

func contextRegistration(ctx echo.Context) (registration.Registration, error) {
	reg, ok := ctx.Get(contextObjectKey).(registration.Registration)
	if !ok {
		return registration.Registration{}, errors.Wrap(errRegNotFoundInCtx, "retrieving object from context")
	}
	return reg, nil
}

func (api *registrationApi) create(ctx echo.Context) error {
	var data registration.NewRegistration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRegistration")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	reg, err := api.deps.RegistrationSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating registration")
	}
	if m := api.deps.Metrics; m != nil {
		m.Registrations.Inc()
	}
	return ctx.JSON(http.StatusCreated, reg)
}

func (api *registrationApi) preview(ctx echo.Context) error {
	regNo, err := api.deps.RegistrationSvc.Preview(ctx.Request().Context(), ctx.QueryParam("campus_id"))
	if err != nil {
		return errors.Wrap(err, "previewing registration number")
	}
	return ctx.JSON(http.StatusOK, PreviewResponse{RegistrationNo: regNo})
}

func (api *registrationApi) lookup(ctx echo.Context) error {
	reg, err := api.deps.RegistrationSvc.GetByRegistrationNo(ctx.Request().Context(), ctx.QueryParam("registration_no"))
	if err != nil {
		return errors.Wrap(err, "finding registration by number")
	}
	return ctx.JSON(http.StatusOK, reg)
}

func (api *registrationApi) query(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	filter := registration.Filter{
		Name:   ctx.QueryParam("name"),
		Mobile: ctx.QueryParam("mobile"),
		Course: ctx.QueryParam("course"),
		Campus: ctx.QueryParam("campus"),
	}
	campusID, err := sess.ScopeCampus(core.CleanString(filter.Campus))
	if err != nil {
		return err
	}

	regs, err := api.deps.RegistrationSvc.List(ctx.Request().Context(), registration.QueryFilter{CampusID: campusID}, filter)
	if err != nil {
		return errors.Wrap(err, "querying registrations")
	}
	if regs == nil {
		regs = []registration.Registration{}
	}
	return ctx.JSON(http.StatusOK, regs)
}

func (api *registrationApi) retrieve(ctx echo.Context) error {
	reg, err := contextRegistration(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, reg)
}

func (api *registrationApi) update(ctx echo.Context) error {
	reg, err := contextRegistration(ctx)
	if err != nil {
		return err
	}

	var data registration.UpdateRegistration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRegistration")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	reg, err = api.deps.RegistrationSvc.Update(ctx.Request().Context(), reg.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating registration")
	}
	return ctx.JSON(http.StatusOK, reg)
}

func (api *registrationApi) destroy(ctx echo.Context) error {
	reg, err := contextRegistration(ctx)
	if err != nil {
		return err
	}
	if err := api.deps.RegistrationSvc.Delete(ctx.Request().Context(), reg.ID); err != nil {
		return errors.Wrap(err, "deleting registration")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type PreviewResponse struct {
	RegistrationNo string `json:"registration_no"`
}
