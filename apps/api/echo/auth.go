package echoapi

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/session"
)

const (
	contextTokenKey    = "sessionToken"
	contextTokenErrKey = "sessionTokenErr"
)

// Claims carries an identified session to the client and back.
type Claims struct {
	jwt.StandardClaims
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"name,omitempty"`
	PhoneNumber string `json:"phone,omitempty"`
}

func (c Claims) Identity() session.Identity {
	custID, _ := strconv.Atoi(c.Subject)
	return session.Identity{
		ID:          c.Subject,
		CustomerID:  custID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		PhoneNumber: c.PhoneNumber,
	}
}

type auth struct {
	appName    string
	signingKey []byte
	expiration time.Duration
	config     middleware.JWTConfig
}

func newAuth(conf *core.Config) *auth {
	a := &auth{
		appName:    conf.AppName,
		signingKey: []byte(conf.SecretKey),
		expiration: conf.Server.SessionExpirationDelta,
	}
	a.config = middleware.JWTConfig{
		SigningKey:    a.signingKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
	return a
}

// optional parses the token when there is one. Requests without a token, or with a
// rejected one, stay anonymous; the rejection is kept for required routes.
func (a *auth) optional() echo.MiddlewareFunc {
	parse := middleware.JWTWithConfig(a.config)
	accept := parse(func(echo.Context) error { return nil })
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if ctx.Request().Header.Get(echo.HeaderAuthorization) != "" {
				if err := accept(ctx); err != nil {
					ctx.Set(contextTokenErrKey, err)
				}
			}
			return next(ctx)
		}
	}
}

// required rejects requests whose session is not identified.
func (a *auth) required() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !session.FromContext(ctx.Request().Context()).IsIdentified() {
				if err, ok := ctx.Get(contextTokenErrKey).(error); ok {
					return err
				}
				return middleware.ErrJWTMissing
			}
			return next(ctx)
		}
	}
}

func (a *auth) claimsOf(ident session.Identity) *Claims {
	now := core.NowFunc()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.appName,
			Subject:   ident.ID,
			ExpiresAt: now.Add(a.expiration).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email:       ident.Email,
		DisplayName: ident.DisplayName,
		PhoneNumber: ident.PhoneNumber,
	}
}

// GenerateToken signs the claims of an identified session.
func (a *auth) GenerateToken(sess session.Session) (string, error) {
	if !sess.IsIdentified() {
		return "", errors.New("session not identified")
	}
	method := jwt.GetSigningMethod(a.config.SigningMethod)
	token := jwt.NewWithClaims(method, a.claimsOf(sess.Identity))

	ss, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, bool) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, true
		}
	}
	return Claims{}, false
}

// sessionMiddleware puts the session of the request token (or the anonymous one) in the request context.
func sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess := session.Anonymous()
		if claims, ok := getContextClaims(ctx); ok && claims.Subject != "" {
			sess = session.Identify(claims.Identity())
		}
		req := ctx.Request()
		ctx.SetRequest(req.WithContext(session.NewContext(req.Context(), sess)))
		return next(ctx)
	}
}

func contextSession(ctx echo.Context) session.Session {
	return session.FromContext(ctx.Request().Context())
}
