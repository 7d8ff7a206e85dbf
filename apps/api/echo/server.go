package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/cors"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/auth"
	"github.com/alfurqan/campusreg/core/campus"
	"github.com/alfurqan/campusreg/core/campusadmin"
	"github.com/alfurqan/campusreg/core/course"
	"github.com/alfurqan/campusreg/core/dashboard"
	"github.com/alfurqan/campusreg/core/registration"
	"github.com/alfurqan/campusreg/services/metrics"
)

const orderingParam = "ordering"

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Metrics    *metrics.Metrics

		AuthSvc         *auth.Service
		CampusSvc       *campus.Service
		CourseSvc       *course.Service
		CampusAdminSvc  *campusadmin.Service
		RegistrationSvc *registration.Service
		DashboardSvc    *dashboard.Service
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		server   *http.Server
		jwt      *jwtIssuer
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		jwt:      newJWTIssuer(deps.Conf),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()

	conf := deps.Conf.Server
	s.server = &http.Server{
		Addr:         conf.Address(),
		Handler:      s.corsHandler(),
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableRequestLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if s.deps.Metrics != nil {
		s.app.Use(metricsMiddleware(s.deps.Metrics))
		s.app.GET("/metrics", echo.WrapHandler(s.deps.Metrics.Handler()))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	authed := []echo.MiddlewareFunc{middleware.JWTWithConfig(s.jwt.config), s.sessionMiddleware}

	registerAuthAPI(v1, authed, s)
	registerCampusAPI(v1, authed, s.deps)
	registerCourseAPI(v1, authed, s.deps)
	registerCampusAdminAPI(v1, authed, s.deps)
	registerRegistrationAPI(v1, authed, s.deps)
	registerDashboardAPI(v1, authed, s.deps)
}

// corsHandler lets the browser front end call the API from its own origin.
func (s *Server) corsHandler() http.Handler {
	origins := s.deps.Conf.Server.CORSAllowedOrigins
	if len(origins) == 0 {
		return s.app
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	}).Handler(s.app)
}

func (s *Server) Start() {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

// Errors reports the errors that stopped the listener.
func (s *Server) Errors() <-chan error {
	return s.errors
}

// ShutdownSignal receives on SIGINT, SIGTERM or when a handler hits a core.shutdown error.
func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.server.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.server.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.server.Handler.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
