package view

import (
	"context"
	"sync"
	"time"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/purchase"
	"github.com/ericnguyen1274/Customer---App/core/session"
)

type (
	PaymentLister interface {
		// Payments returns the customer's payments, newest first.
		Payments(ctx context.Context, customerID int) ([]purchase.Payment, error)
	}

	PaymentItem struct {
		purchase.Payment
		AmountLabel string `json:"amountLabel"`
		DateLabel   string `json:"dateLabel"`
	}

	ProfileSnapshot struct {
		User       session.Identity     `json:"user"`
		Payments   Dataset[PaymentItem] `json:"payments"`
		TotalSpent int                  `json:"totalSpent"`
		TotalLabel string               `json:"totalLabel"`
	}

	// Profile is the view model of the payment history screen of one client.
	Profile struct {
		payments     PaymentLister
		logger       core.Logger
		metrics      core.Metrics
		placeholders bool

		gen      generation
		mu       sync.RWMutex
		identity session.Identity
		history  Dataset[purchase.Payment]
	}
)

func NewProfile(payments PaymentLister, conf *core.Config, logger core.Logger, metrics core.Metrics) *Profile {
	return &Profile{
		payments:     payments,
		logger:       logger,
		metrics:      metrics,
		placeholders: conf.View.Placeholders,
		history:      loading[purchase.Payment](),
	}
}

// Load fetches the payment history of sess; anonymous sessions have none.
func (p *Profile) Load(ctx context.Context, sess session.Session) (ProfileSnapshot, error) {
	token := p.gen.next()
	start := time.Now()

	var history Dataset[purchase.Payment]
	if customerID, ok := sess.CustomerID(); !ok {
		history = loaded[purchase.Payment](nil)
	} else if payments, err := p.payments.Payments(ctx, customerID); err != nil {
		p.metrics.ViewDegraded(datasetPayments)
		p.logger.Error("loading "+datasetPayments, err, sess.Identity)
		history = degraded(pick(p.placeholders, placeholderPayments))
	} else {
		for i := range payments {
			payments[i] = payments[i].Normalize()
		}
		purchase.SortByDateDesc(payments)
		history = loaded(payments)
	}

	if err := p.gen.commit(token, func() {
		p.mu.Lock()
		p.identity, p.history = sess.Identity, history
		p.mu.Unlock()
	}); err != nil {
		return ProfileSnapshot{}, err
	}
	p.metrics.ObserveViewLoad("profile", time.Since(start))
	return p.Snapshot(), nil
}

// Logout drops the loaded history and returns the anonymous session.
func (p *Profile) Logout(sess session.Session) session.Session {
	p.gen.next() // discard in-flight loads
	p.mu.Lock()
	p.identity, p.history = session.Identity{}, loading[purchase.Payment]()
	p.mu.Unlock()
	return sess.Logout()
}

func (p *Profile) Snapshot() ProfileSnapshot {
	p.mu.RLock()
	identity, history := p.identity, p.history
	p.mu.RUnlock()

	items := make([]PaymentItem, 0, len(history.Items))
	var total int
	for _, pay := range history.Items {
		total += pay.Amount.Int()
		items = append(items, PaymentItem{
			Payment:     pay,
			AmountLabel: FormatAmount(pay.Amount.Int()),
			DateLabel:   FormatDate(pay.Date),
		})
	}
	return ProfileSnapshot{
		User:       identity,
		Payments:   Dataset[PaymentItem]{State: history.State, Items: items, Placeholder: history.Placeholder},
		TotalSpent: total,
		TotalLabel: FormatAmount(total),
	}
}
