package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/auth"
)

const (
	contextTokenKey   = "userToken"
	contextSessionKey = "session"
	tokenAudience     = "campusreg"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	CampusID string `json:"campus_id,omitempty"`
}

func (c Claims) Session() auth.Session {
	sess := auth.Session{Role: c.Role, Email: c.Email, CampusID: c.CampusID}
	if c.Role == auth.RoleCampusAdmin {
		sess.AdminID = c.Subject
	}
	return sess
}

type jwtIssuer struct {
	appName string
	delta   time.Duration
	config  middleware.JWTConfig
}

func newJWTIssuer(conf *core.Config) *jwtIssuer {
	return &jwtIssuer{
		appName: conf.AppName,
		delta:   conf.Server.JWTExpirationDelta,
		config: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
	}
}

// claims returns fresh claims for sess, identified by a unique token ID.
func (iss *jwtIssuer) claims(sess auth.Session) *Claims {
	now := time.Now()
	subject := sess.AdminID
	if subject == "" {
		subject = sess.Role
	}
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    iss.appName,
			Subject:   subject,
			Audience:  tokenAudience,
			ExpiresAt: now.Add(iss.delta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Role:     sess.Role,
		Email:    sess.Email,
		CampusID: sess.CampusID,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func (iss *jwtIssuer) GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(iss.config.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(iss.config.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// GenerateToken signs an access token for sess; exposed for tests and tooling.
func (s *Server) GenerateToken(sess auth.Session) (string, error) {
	return s.jwt.GenerateToken(s.jwt.claims(sess))
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextSession(ctx echo.Context) (auth.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(auth.Session); ok {
		return sess, nil
	}
	return auth.Session{}, errUnauthorized
}

// sessionMiddleware rejects revoked tokens and exposes the Session of valid ones.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		revoked, err := s.deps.AuthSvc.IsRevoked(ctx.Request().Context(), claims.Id)
		if err != nil {
			return errors.Wrap(err, "checking token revocation")
		}
		if revoked {
			return errTokenRevoked
		}
		sess, err := s.currentSession(ctx, claims)
		if err != nil {
			return err
		}
		ctx.Set(contextSessionKey, sess)
		return next(ctx)
	}
}

// currentSession reloads a campus admin so that deleted or reassigned admins lose
// their old campus before their token expires.
func (s *Server) currentSession(ctx echo.Context, claims Claims) (auth.Session, error) {
	sess := claims.Session()
	if sess.Role != auth.RoleCampusAdmin {
		return sess, nil
	}
	adm, err := s.deps.CampusAdminSvc.GetByID(ctx.Request().Context(), sess.AdminID)
	if err != nil {
		if core.IsNotFound(err) {
			return auth.Session{}, errUnauthorized
		}
		return auth.Session{}, errors.Wrap(err, "loading session admin")
	}
	sess.Email = adm.Email
	sess.CampusID = adm.CampusID
	return sess, nil
}

func superAdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess, err := getContextSession(ctx)
		if err != nil {
			return err
		}
		if !sess.IsSuperAdmin() {
			return errHttpForbidden
		}
		return next(ctx)
	}
}

type authApi struct {
	srv *Server
}

func registerAuthAPI(g *echo.Group, authed []echo.MiddlewareFunc, srv *Server) {
	api := authApi{srv: srv}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout, authed...)
	ag.GET("/session", api.session, authed...)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.srv.deps.Validate); err != nil {
		return err
	}

	sess, err := api.srv.deps.AuthSvc.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if m := api.srv.deps.Metrics; m != nil && errors.Cause(err) == auth.ErrInvalidCredentials {
			m.Logins.WithLabelValues("failed").Inc()
		}
		return errors.Wrap(err, "logging in")
	}
	if m := api.srv.deps.Metrics; m != nil {
		m.Logins.WithLabelValues(sess.Role).Inc()
	}

	claims := api.srv.jwt.claims(sess)
	token, err := api.srv.jwt.GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
		Session:   sess,
	})
}

func (api *authApi) logout(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if err := api.srv.deps.AuthSvc.Logout(ctx.Request().Context(), claims.Id, time.Unix(claims.ExpiresAt, 0)); err != nil {
		return errors.Wrap(err, "revoking token")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "logged out"})
}

func (api *authApi) session(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"notblank"`
		Password string `json:"password" validate:"notblank"`
	}

	LoginResponse struct {
		Token     string       `json:"token"`
		ExpiresAt time.Time    `json:"expires_at"`
		Session   auth.Session `json:"session"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
