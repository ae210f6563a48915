package docrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/purchase"
)

type purchaseRepository struct {
	db core.DocStore
}

var _ purchase.Repository = (*purchaseRepository)(nil)

func NewPurchaseRepository(db core.DocStore) purchase.Repository {
	return &purchaseRepository{db: db}
}

func (repo *purchaseRepository) SetReference(ctx context.Context, ref purchase.Reference) error {
	return errors.Wrap(repo.db.Set(ctx, core.CollectionCourseCustomerRefs, ref.DocID(), ref), "setting reference")
}

func (repo *purchaseRepository) QueryPurchasedCourseIDs(ctx context.Context, customerID int) ([]int, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionCourseCustomerRefs, core.Where("customerId", customerID))
	if err != nil {
		return nil, errors.Wrap(err, "querying references")
	}
	refs, err := decodeAll(core.CollectionCourseCustomerRefs, snaps, func(snap core.Snapshot) (purchase.Reference, error) {
		var ref purchase.Reference
		err := snap.DataTo(&ref)
		return ref, err
	})
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.CourseID.Int())
	}
	return ids, nil
}

func decodePayment(snap core.Snapshot) (purchase.Payment, error) {
	var p purchase.Payment
	if err := snap.DataTo(&p); err != nil {
		return purchase.Payment{}, err
	}
	p.DocID = snap.ID()
	return p, nil
}

func (repo *purchaseRepository) CreatePayment(ctx context.Context, p purchase.Payment) (purchase.Payment, error) {
	p.DocID = ""
	id := p.PaymentID.String()
	if err := repo.db.Create(ctx, core.CollectionPayments, id, p); err != nil {
		if errors.Cause(err) == core.ErrDocExists {
			return purchase.Payment{}, purchase.ErrPaymentIDTaken
		}
		return purchase.Payment{}, errors.Wrap(err, "creating payment")
	}
	p.DocID = id
	return p, nil
}

func (repo *purchaseRepository) QueryPaymentsByCustomer(ctx context.Context, customerID int) ([]purchase.Payment, error) {
	snaps, err := repo.db.Query(ctx, core.CollectionPayments, core.Where("customerId", customerID))
	if err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	return decodeAll(core.CollectionPayments, snaps, decodePayment)
}

func (repo *purchaseRepository) GetPaymentByID(ctx context.Context, paymentID string) (purchase.Payment, error) {
	snap, err := repo.db.Get(ctx, core.CollectionPayments, paymentID)
	if err != nil {
		return purchase.Payment{}, notFound(errors.Wrap(err, "getting payment"), purchase.ErrNotFound)
	}
	return decodePayment(snap)
}

func (repo *purchaseRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, repo purchase.Repository) error) error {
	return repo.db.RunTransaction(ctx, func(ctx context.Context, tx core.DocStore) error {
		return fn(ctx, NewPurchaseRepository(tx))
	})
}
