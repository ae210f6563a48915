package purchase

import (
	"fmt"
	"sort"
	"time"

	"github.com/ericnguyen1274/Customer---App/core"
)

// Reference records that a customer purchased a course.
type Reference struct {
	CustomerID core.FlexInt `json:"customerId" bson:"customerId"`
	CourseID   core.FlexInt `json:"courseId" bson:"courseId"`
}

// ReferenceID is the document id of the (course, customer) pair.
func ReferenceID(courseID, customerID int) string {
	return fmt.Sprintf("%d_%d", courseID, customerID)
}

func (r Reference) DocID() string {
	return ReferenceID(r.CourseID.Int(), r.CustomerID.Int())
}

type Payment struct {
	DocID      string       `json:"id,omitempty" bson:"-"`
	PaymentID  core.FlexInt `json:"paymentId" bson:"paymentId"`
	CustomerID core.FlexInt `json:"customerId" bson:"customerId"`
	Amount     core.FlexInt `json:"amount" bson:"amount"`
	Date       string       `json:"date" bson:"date"` // YYYY-MM-DD
}

// Normalize dates a payment without a date today.
func (p Payment) Normalize() Payment {
	if p.Date == "" {
		p.Date = core.Today()
	}
	return p
}

func (p Payment) parsedDate() time.Time {
	t, err := time.Parse(core.DateLayout, p.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SortByDateDesc orders payments newest first; unparsable dates sort last.
func SortByDateDesc(payments []Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].parsedDate().After(payments[j].parsedDate())
	})
}

// Receipt is the outcome of a successful purchase.
type Receipt struct {
	ReferenceID string  `json:"referenceId"`
	Payment     Payment `json:"payment"`
	Message     string  `json:"message"`
}
