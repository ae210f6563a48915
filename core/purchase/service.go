package purchase

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/catalog"
	"github.com/ericnguyen1274/Customer---App/core/session"
)

// Modes
const (
	// ModeAtomic writes the reference and the payment in one transaction.
	ModeAtomic = "atomic"
	// ModeSequential writes them one after the other; the reference may persist alone.
	ModeSequential = "sequential"
)

// Messages shown to the user.
const (
	MsgNotIdentified  = "Please log in to purchase courses."
	MsgPurchaseFailed = "Failed to purchase course. Please try again."
	msgPurchased      = "Successfully purchased %s!"
)

// failure steps
const (
	stepSequence  = "sequence"
	stepReference = "reference"
	stepPayment   = "payment"
)

const paymentSequenceID = core.CollectionPayments

// ids already taken by other writers are skipped this many times
const maxIDAttempts = 3

var (
	// errors
	ErrNotFound       = errors.New("payment not found")
	ErrNotIdentified  = errors.New(MsgNotIdentified)
	ErrInvalidMode    = errors.New("invalid purchase mode")
	// ErrPaymentIDTaken is returned by Repository.CreatePayment when the id is in use.
	ErrPaymentIDTaken = errors.New("payment id already taken")
)

type (
	Repository interface {
		// SetReference creates or overwrites the reference of its (course, customer) pair.
		SetReference(ctx context.Context, ref Reference) error
		QueryPurchasedCourseIDs(ctx context.Context, customerID int) ([]int, error)
		// CreatePayment stores p under the decimal form of its PaymentID.
		CreatePayment(ctx context.Context, p Payment) (Payment, error)
		QueryPaymentsByCustomer(ctx context.Context, customerID int) ([]Payment, error)
		GetPaymentByID(ctx context.Context, paymentID string) (Payment, error)
		// RunInTx runs fn with a Repository whose writes are committed together.
		RunInTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
	}

	Service struct {
		repo    Repository
		seq     core.Sequencer
		mode    string
		logger  core.Logger
		metrics core.Metrics
	}
)

func NewService(repo Repository, seq core.Sequencer, conf *core.Config, logger core.Logger, metrics core.Metrics) (*Service, error) {
	mode := conf.Purchase.Mode
	if mode == "" {
		mode = ModeAtomic
	}
	if mode != ModeAtomic && mode != ModeSequential {
		return nil, errors.Wrap(ErrInvalidMode, mode)
	}
	return &Service{repo: repo, seq: seq, mode: mode, logger: logger, metrics: metrics}, nil
}

func (svc *Service) Mode() string { return svc.mode }

// Purchase records that the customer of sess bought course: a reference keyed
// "{courseId}_{customerId}" and a payment of the course price dated today.
// Repeated purchases overwrite the reference and add a payment each time.
func (svc *Service) Purchase(ctx context.Context, sess session.Session, course catalog.Course) (Receipt, error) {
	customerID, ok := sess.CustomerID()
	if !ok {
		return Receipt{}, ErrNotIdentified
	}

	ref := Reference{CustomerID: core.FlexInt(customerID), CourseID: course.CourseID}
	for attempt := 1; ; attempt++ {
		id, err := svc.seq.NextSequence(ctx, paymentSequenceID)
		if err != nil {
			return Receipt{}, svc.failed(stepSequence, errors.Wrap(err, "allocating payment id"), sess)
		}
		payment, err := svc.record(ctx, ref, Payment{
			PaymentID:  core.FlexInt(id),
			CustomerID: core.FlexInt(customerID),
			Amount:     course.Price,
			Date:       core.Today(),
		})
		if errors.Cause(err) == ErrPaymentIDTaken && attempt < maxIDAttempts {
			svc.logger.Warn("payment id taken, allocating another", id)
			continue
		}
		if err != nil {
			return Receipt{}, svc.failed(stepOf(err), err, sess)
		}

		svc.metrics.PurchaseSucceeded()
		return Receipt{
			ReferenceID: ref.DocID(),
			Payment:     payment,
			Message:     fmt.Sprintf(msgPurchased, course.Name),
		}, nil
	}
}

// stepError tells which write of a purchase failed.
type stepError struct {
	step string
	err  error
}

func (e *stepError) Error() string { return e.err.Error() }
func (e *stepError) Cause() error  { return e.err }
func (e *stepError) Unwrap() error { return e.err }

func stepOf(err error) string {
	var sErr *stepError
	if errors.As(err, &sErr) {
		return sErr.step
	}
	return stepPayment
}

// record writes the reference and the payment, in one transaction in atomic mode.
func (svc *Service) record(ctx context.Context, ref Reference, payment Payment) (Payment, error) {
	write := func(ctx context.Context, repo Repository) error {
		if err := repo.SetReference(ctx, ref); err != nil {
			return &stepError{step: stepReference, err: errors.Wrap(err, "setting purchase reference")}
		}
		p, err := repo.CreatePayment(ctx, payment)
		if err != nil {
			return &stepError{step: stepPayment, err: errors.Wrap(err, "creating payment")}
		}
		payment = p
		return nil
	}

	var err error
	if svc.mode == ModeAtomic {
		err = svc.repo.RunInTx(ctx, write)
	} else {
		err = write(ctx, svc.repo)
	}
	return payment, err
}

func (svc *Service) failed(step string, err error, sess session.Session) error {
	svc.metrics.PurchaseFailed(step)
	svc.logger.Error("purchasing course", err, sess.Identity)
	return core.NewUserError(MsgPurchaseFailed, err)
}

// Payments returns the customer's payments, newest first.
func (svc *Service) Payments(ctx context.Context, customerID int) ([]Payment, error) {
	payments, err := svc.repo.QueryPaymentsByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	for i := range payments {
		payments[i] = payments[i].Normalize()
	}
	SortByDateDesc(payments)
	return payments, nil
}

func (svc *Service) Payment(ctx context.Context, paymentID string) (Payment, error) {
	p, err := svc.repo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return Payment{}, err
	}
	return p.Normalize(), nil
}

func (svc *Service) PurchasedCourseIDs(ctx context.Context, customerID int) ([]int, error) {
	return svc.repo.QueryPurchasedCourseIDs(ctx, customerID)
}
