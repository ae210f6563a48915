package session

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/customer"
)

// Messages shown to the user on sign-in.
const (
	MsgMissingCredentials = "Please enter both email and phone number"
	MsgCustomerNotFound   = "Email not found. Please check your email address."
	MsgInvalidPhone       = "Invalid phone number. Please check your phone number."
	MsgLoginFailed        = "Login failed. Please try again."
)

// sign-in metric results
const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultBadPhone = "invalid_phone"
	resultInvalid  = "invalid"
	resultError    = "error"
)

var (
	// errors
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrMissingCredentials = errors.New(MsgMissingCredentials)
)

// CustomerFinder looks customers up by email.
type CustomerFinder interface {
	GetCustomerByEmail(ctx context.Context, email string) (customer.Customer, error)
}

// Authenticator checks an email/phone pair against the stored customers.
type Authenticator struct {
	customers CustomerFinder
	logger    core.Logger
	metrics   core.Metrics
}

func NewAuthenticator(customers CustomerFinder, logger core.Logger, metrics core.Metrics) *Authenticator {
	return &Authenticator{customers: customers, logger: logger, metrics: metrics}
}

// SignIn returns an identified Session when a customer with email exists and
// its stored phone equals phone exactly.
func (a *Authenticator) SignIn(ctx context.Context, email, phone string) (Session, error) {
	email = core.CleanString(email)
	phone = core.CleanString(phone)
	if email == "" || phone == "" {
		a.metrics.SignIn(resultInvalid)
		return Anonymous(), core.NewValidationError(ErrMissingCredentials)
	}

	cust, err := a.customers.GetCustomerByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) == customer.ErrNotFound {
			a.metrics.SignIn(resultNotFound)
			return Anonymous(), ErrCustomerNotFound
		}
		a.metrics.SignIn(resultError)
		err = errors.Wrap(err, "finding customer by email")
		a.logger.Error("signing in", err)
		return Anonymous(), err
	}
	if cust.Phone != phone {
		a.metrics.SignIn(resultBadPhone)
		return Anonymous(), ErrInvalidPhone
	}

	a.metrics.SignIn(resultSuccess)
	return Identify(IdentityOf(cust)), nil
}

// IdentityOf builds the Identity of a signed in customer.
func IdentityOf(cust customer.Customer) Identity {
	return Identity{
		ID:          strconv.Itoa(cust.ID()),
		CustomerID:  cust.ID(),
		Email:       cust.Email,
		DisplayName: cust.Name,
		PhoneNumber: cust.Phone,
	}
}

// LoginErrorMessage maps a SignIn error to the message shown to the user.
func LoginErrorMessage(err error) string {
	switch errors.Cause(err) {
	case nil:
		return ""
	case ErrMissingCredentials:
		return MsgMissingCredentials
	case ErrCustomerNotFound:
		return MsgCustomerNotFound
	case ErrInvalidPhone:
		return MsgInvalidPhone
	}
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && errors.Cause(vErr.Err) == ErrMissingCredentials {
		return MsgMissingCredentials
	}
	return MsgLoginFailed
}
