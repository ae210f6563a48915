package customer

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
)

// Messages shown to the user on registration.
const (
	MsgFillAllFields   = "Please fill in all fields"
	MsgEmailExists     = "An account with this email already exists"
	MsgRegistered      = "Account created successfully! You can now log in with your email and phone number."
	MsgRegisterFailed  = "Failed to create account. Please try again."
	customerSequenceID = core.CollectionCustomers

	// ids already taken by other writers are skipped this many times
	maxIDAttempts = 3
)

var (
	// errors
	ErrNotFound    = errors.New("customer not found")
	ErrEmailExists = errors.New(MsgEmailExists)
	ErrIDTaken     = errors.New("customer id already taken")

	errFillAllFields = errors.New(MsgFillAllFields)
)

type (
	Repository interface {
		// GetCustomerByEmail returns the first customer whose email equals email exactly.
		GetCustomerByEmail(ctx context.Context, email string) (Customer, error)
		GetCustomer(ctx context.Context, customerID int) (Customer, error)
		// CreateCustomerWithID stores cust under the decimal form of its CustomerID,
		// or fails with ErrIDTaken when a document already has that id.
		CreateCustomerWithID(ctx context.Context, cust Customer) (Customer, error)
		UpdateCustomer(ctx context.Context, cust Customer) (Customer, error)
		CountCustomers(ctx context.Context) (int, error)
	}

	Service struct {
		repo     Repository
		seq      core.Sequencer
		validate *validator.Validate
		logger   core.Logger
	}

	// Registration is the outcome of a successful Register.
	Registration struct {
		Customer Customer `json:"customer"`
		Message  string   `json:"message"`
	}
)

func NewService(repo Repository, seq core.Sequencer, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{repo: repo, seq: seq, validate: validate, logger: logger}
}

// Register creates a Customer after checking that nobody uses the email yet.
// Failures other than validation carry MsgRegisterFailed as their user message.
func (svc *Service) Register(ctx context.Context, nc NewCustomer) (Registration, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Registration{}, err
	}

	_, err := svc.repo.GetCustomerByEmail(ctx, nc.Email)
	switch {
	case err == nil:
		return Registration{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: MsgEmailExists})
	case errors.Cause(err) != ErrNotFound:
		return Registration{}, svc.failed(errors.Wrap(err, "checking email uniqueness"))
	}

	for attempt := 1; ; attempt++ {
		id, err := svc.seq.NextSequence(ctx, customerSequenceID)
		if err != nil {
			return Registration{}, svc.failed(errors.Wrap(err, "allocating customer id"))
		}

		now := core.NowFunc().UTC()
		cust, err := svc.repo.CreateCustomerWithID(ctx, Customer{
			CustomerID: core.FlexInt(id),
			Email:      nc.Email,
			Name:       nc.Name,
			Phone:      nc.Phone,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if errors.Cause(err) == ErrIDTaken && attempt < maxIDAttempts {
			svc.logger.Warn("customer id taken, allocating another", id)
			continue
		}
		if err != nil {
			return Registration{}, svc.failed(errors.Wrap(err, "creating customer"))
		}
		return Registration{Customer: cust, Message: MsgRegistered}, nil
	}
}

func (svc *Service) failed(err error) error {
	svc.logger.Error("registering customer", err)
	return core.NewUserError(MsgRegisterFailed, err)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Customer, error) {
	return svc.repo.GetCustomerByEmail(ctx, core.CleanString(email))
}

func (svc *Service) Get(ctx context.Context, customerID int) (Customer, error) {
	return svc.repo.GetCustomer(ctx, customerID)
}

func (svc *Service) Update(ctx context.Context, customerID int, uc UpdateCustomer) (Customer, error) {
	if err := uc.Validate(svc.validate); err != nil {
		return Customer{}, err
	}
	cust, err := svc.repo.GetCustomer(ctx, customerID)
	if err != nil {
		return Customer{}, err
	}
	if uc.Name != "" {
		cust.Name = uc.Name
	}
	if uc.Phone != "" {
		cust.Phone = uc.Phone
	}
	cust.UpdatedAt = core.NowFunc().UTC()
	return svc.repo.UpdateCustomer(ctx, cust)
}

func (svc *Service) Count(ctx context.Context) (int, error) {
	return svc.repo.CountCustomers(ctx)
}
