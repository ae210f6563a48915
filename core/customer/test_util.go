package customer

import (
	"time"

	"github.com/ericnguyen1274/Customer---App/core"
)

// NewTestCustomer is a ready to store Customer for tests.
func NewTestCustomer(id int, email, phone string) Customer {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return Customer{
		CustomerID: core.FlexInt(id),
		Email:      email,
		Name:       "Customer " + core.FlexInt(id).String(),
		Phone:      phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
