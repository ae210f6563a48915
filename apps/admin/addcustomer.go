package main

import (
	"context"
	"fmt"

	"github.com/ericnguyen1274/Customer---App/core/customer"
)

// addCustomer registers a customer.Customer the same way the sign-up endpoint does.
func (cli *commandLine) addCustomer(name, email, phone string) error {
	reg, err := cli.customers.Register(context.Background(), customer.NewCustomer{
		Name:  name,
		Email: email,
		Phone: phone,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "customer %d: %s\n", reg.Customer.ID(), reg.Message)
	return nil
}
