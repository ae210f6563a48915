package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ericnguyen1274/Customer---App/core/purchase"
	"github.com/ericnguyen1274/Customer---App/core/view"
)

type profileApi struct {
	purchases  *purchase.Service
	newProfile func() *view.Profile
}

func registerProfileAPI(g *echo.Group, auth *auth, deps ServerDeps) {
	api := profileApi{
		purchases: deps.PurchaseSvc,
		newProfile: func() *view.Profile {
			return view.NewProfile(deps.PurchaseSvc, deps.Conf, deps.Logger, deps.Metrics)
		},
	}

	g.GET("/profile", api.retrieve, auth.required())
	g.GET("/payments/:id", api.retrievePayment, auth.required())
}

// Handlers

func (api *profileApi) retrieve(ctx echo.Context) error {
	snap, err := api.newProfile().Load(ctx.Request().Context(), contextSession(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snap)
}

// retrievePayment only returns payments of the session's customer.
func (api *profileApi) retrievePayment(ctx echo.Context) error {
	p, err := api.purchases.Payment(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if id, _ := contextSession(ctx).CustomerID(); p.CustomerID.Int() != id {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, view.PaymentItem{
		Payment:     p,
		AmountLabel: view.FormatAmount(p.Amount.Int()),
		DateLabel:   view.FormatDate(p.Date),
	})
}
