package customer

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ericnguyen1274/Customer---App/core"
)

// Customer is a person who can sign in with their email and phone number.
type Customer struct {
	DocID      string       `json:"id,omitempty" bson:"-"`
	CustomerID core.FlexInt `json:"customerId" bson:"customerId"`
	Email      string       `json:"email" bson:"email"`
	Name       string       `json:"name" bson:"name"`
	Phone      string       `json:"phone" bson:"phone"`
	CreatedAt  time.Time    `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt  time.Time    `json:"updatedAt" bson:"updatedAt"` // UTC
}

// ID returns the numeric customer id, falling back to a numeric document id.
func (c Customer) ID() int {
	if c.CustomerID != 0 {
		return c.CustomerID.Int()
	}
	id, _ := strconv.Atoi(c.DocID)
	return id
}

// NewCustomer contains information needed to register a new Customer.
type NewCustomer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
}

func (nc *NewCustomer) Clean() {
	nc.Name = core.CleanString(nc.Name)
	nc.Email = core.CleanString(nc.Email)
	nc.Phone = core.CleanString(nc.Phone)
}

func (nc *NewCustomer) Validate(validate *validator.Validate) error {
	nc.Clean()
	if nc.Name == "" || nc.Email == "" || nc.Phone == "" {
		return core.NewValidationError(errFillAllFields)
	}
	return validate.Struct(nc)
}

// UpdateCustomer defines what information may be provided to modify an existing Customer.
type UpdateCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone" validate:"omitempty,phone"`
}

func (uc *UpdateCustomer) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Phone = core.CleanString(uc.Phone)
	return validate.Struct(uc)
}
