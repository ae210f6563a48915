package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/account"
)

const msgPasswordResetSent = "If an account with this email exists, a password reset link was sent to it."

type (
	PasswordLoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	PasswordResetRequest struct {
		Email string `json:"email"`
	}

	DisplayNameRequest struct {
		DisplayName string `json:"displayName"`
	}
)

type accountApi struct {
	svc *account.Service
}

func registerAccountAPI(g *echo.Group, svc *account.Service) {
	api := accountApi{svc: svc}

	ag := g.Group("/accounts")
	ag.POST("", api.create)
	ag.POST("/login", api.login)
	ag.PUT("/display-name", api.updateDisplayName)
	// TODO: rate limit `/password-reset` & `/password-reset-confirm`
	ag.POST("/password-reset", api.resetPassword)
	ag.POST("/password-reset-confirm", api.confirmPasswordReset)
}

// Handlers

func (api *accountApi) create(ctx echo.Context) error {
	var data account.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	usr, err := api.svc.SignUp(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *accountApi) login(ctx echo.Context) error {
	var data PasswordLoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PasswordLoginRequest")
	}
	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == account.ErrNotFound {
			return core.NewValidationError(errors.New("invalid credentials"))
		}
		return errors.Wrap(err, "authenticating")
	}
	return ctx.JSON(http.StatusOK, usr)
}

// updateDisplayName re-checks the password: accounts carry no session token.
func (api *accountApi) updateDisplayName(ctx echo.Context) error {
	var data struct {
		PasswordLoginRequest
		DisplayNameRequest
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DisplayNameRequest")
	}
	reqCtx := ctx.Request().Context()
	usr, err := api.svc.Authenticate(reqCtx, data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == account.ErrNotFound {
			return core.NewValidationError(errors.New("invalid credentials"))
		}
		return errors.Wrap(err, "authenticating")
	}
	usr, err = api.svc.UpdateDisplayName(reqCtx, usr.UID, data.DisplayName)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *accountApi) resetPassword(ctx echo.Context) error {
	var data PasswordResetRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PasswordResetRequest")
	}
	if err := api.svc.RequestPasswordReset(ctx.Request().Context(), data.Email); err != nil {
		if errors.Cause(err) != account.ErrNotFound {
			return errors.Wrap(err, "requesting password reset")
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": msgPasswordResetSent})
}

func (api *accountApi) confirmPasswordReset(ctx echo.Context) error {
	var data account.ResetUserPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetUserPassword")
	}
	usr, err := api.svc.ResetPassword(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}
