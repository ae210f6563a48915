package docrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/customer"
)

type customerRepository struct {
	db core.DocStore
}

var _ customer.Repository = (*customerRepository)(nil)

func NewCustomerRepository(db core.DocStore) customer.Repository {
	return &customerRepository{db: db}
}

func decodeCustomer(snap core.Snapshot) (customer.Customer, error) {
	var cust customer.Customer
	if err := snap.DataTo(&cust); err != nil {
		return customer.Customer{}, err
	}
	cust.DocID = snap.ID()
	return cust, nil
}

func (repo *customerRepository) GetCustomerByEmail(ctx context.Context, email string) (customer.Customer, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionCustomers, core.Where("email", email))
	if err != nil {
		return customer.Customer{}, errors.Wrap(err, "querying customers by email")
	}
	if len(snaps) == 0 {
		return customer.Customer{}, customer.ErrNotFound
	}
	return decodeCustomer(snaps[0])
}

func (repo *customerRepository) GetCustomer(ctx context.Context, customerID int) (customer.Customer, error) {
	snap, err := repo.db.Get(ctx, core.CollectionCustomers, itoa(customerID))
	if err != nil {
		return customer.Customer{}, notFound(errors.Wrap(err, "getting customer"), customer.ErrNotFound)
	}
	return decodeCustomer(snap)
}

func (repo *customerRepository) CreateCustomerWithID(ctx context.Context, cust customer.Customer) (customer.Customer, error) {
	cust.DocID = ""
	id := cust.CustomerID.String()
	if err := repo.db.Create(ctx, core.CollectionCustomers, id, cust); err != nil {
		if errors.Cause(err) == core.ErrDocExists {
			return customer.Customer{}, customer.ErrIDTaken
		}
		return customer.Customer{}, errors.Wrap(err, "creating customer")
	}
	cust.DocID = id
	return cust, nil
}

func (repo *customerRepository) UpdateCustomer(ctx context.Context, cust customer.Customer) (customer.Customer, error) {
	id := cust.DocID
	if id == "" {
		id = itoa(cust.ID())
	}
	err := repo.db.Update(ctx, core.CollectionCustomers, id, map[string]interface{}{
		"name":      cust.Name,
		"phone":     cust.Phone,
		"updatedAt": cust.UpdatedAt,
	})
	if err != nil {
		return customer.Customer{}, notFound(errors.Wrap(err, "updating customer"), customer.ErrNotFound)
	}
	cust.DocID = id
	return cust, nil
}

func (repo *customerRepository) CountCustomers(ctx context.Context) (int, error) {
	n, err := repo.db.Count(ctx, core.CollectionCustomers)
	return n, errors.Wrap(err, "counting customers")
}
