package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core/customer"
	"github.com/ericnguyen1274/Customer---App/core/session"
)

type (
	SignInRequest struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}

	SignInResponse struct {
		Token   string          `json:"token"`
		Session session.Session `json:"session"`
	}

	RegistrationResponse struct {
		Customer customer.Customer `json:"customer"`
		Message  string            `json:"message"`
	}
)

type sessionApi struct {
	auth          *auth
	customers     *customer.Service
	authenticator *session.Authenticator
}

func registerSessionAPI(g *echo.Group, auth *auth, customers *customer.Service, authenticator *session.Authenticator) {
	api := sessionApi{auth: auth, customers: customers, authenticator: authenticator}

	g.POST("/customers", api.register)
	g.POST("/session", api.signIn)
	g.DELETE("/session", api.signOut)

	// authed endpoints
	cg := g.Group("/customers/me", auth.required())
	cg.GET("", api.retrieveCustomer)
	cg.PUT("", api.updateCustomer)
}

// Handlers

func (api *sessionApi) register(ctx echo.Context) error {
	var data customer.NewCustomer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCustomer")
	}
	reg, err := api.customers.Register(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, RegistrationResponse{Customer: reg.Customer, Message: reg.Message})
}

func (api *sessionApi) signIn(ctx echo.Context) error {
	var data SignInRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SignInRequest")
	}
	sess, err := api.authenticator.SignIn(ctx.Request().Context(), data.Email, data.Phone)
	if err != nil {
		return err
	}
	token, err := api.auth.GenerateToken(sess)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, SignInResponse{Token: token, Session: sess})
}

// signOut has nothing to revoke: clients drop their token.
func (api *sessionApi) signOut(ctx echo.Context) error {
	return ctx.NoContent(http.StatusNoContent)
}

func (api *sessionApi) retrieveCustomer(ctx echo.Context) error {
	id, _ := contextSession(ctx).CustomerID()
	cust, err := api.customers.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cust)
}

func (api *sessionApi) updateCustomer(ctx echo.Context) error {
	var data customer.UpdateCustomer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCustomer")
	}
	id, _ := contextSession(ctx).CustomerID()
	cust, err := api.customers.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cust)
}
