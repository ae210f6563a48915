package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericnguyen1274/Customer---App/core/purchase"
	"github.com/ericnguyen1274/Customer---App/core/view"
	"github.com/ericnguyen1274/Customer---App/storage/database/docrepos"
	testutil "github.com/ericnguyen1274/Customer---App/tests"
)

func Test_profileApi(t *testing.T) {
	srv, db := setup(t)
	cust := testutil.CreateCustomer(t, db, 1, "one@test.cd", "555-0101")
	other := testutil.CreateCustomer(t, db, 2, "two@test.cd", "555-0102")
	token := getToken(t, cust)

	repo := docrepos.NewPurchaseRepository(db)
	for _, p := range []purchase.Payment{
		{PaymentID: 1, CustomerID: 1, Amount: 500, Date: "2025-01-05"},
		{PaymentID: 2, CustomerID: 1, Amount: 750, Date: "2025-01-15"},
		{PaymentID: 3, CustomerID: 2, Amount: 300, Date: "2025-01-10"},
	} {
		_, err := repo.CreatePayment(context.Background(), p)
		require.NoError(t, err)
	}

	runHttpTests(t, srv, []httpTest{
		{name: "auth required", path: "/v1/profile", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "payment: auth required", path: "/v1/payments/1", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "payment: unknown", path: "/v1/payments/42", token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "payment: not owned", path: "/v1/payments/3", token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
	})

	t.Run("history", func(t *testing.T) {
		rec := do(srv, http.MethodGet, "/v1/profile", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var snap view.ProfileSnapshot
		unmarchallObj(t, rec, &snap)
		assert.Equal(t, cust.Email, snap.User.Email)
		assert.Equal(t, view.StateLoaded, snap.Payments.State)
		require.Len(t, snap.Payments.Items, 2)
		assert.Equal(t, 2, snap.Payments.Items[0].PaymentID.Int()) // newest first
		assert.Equal(t, "Jan 15, 2025", snap.Payments.Items[0].DateLabel)
		assert.Equal(t, "$750", snap.Payments.Items[0].AmountLabel)
		assert.Equal(t, 1250, snap.TotalSpent)
		assert.Equal(t, "$1250", snap.TotalLabel)
	})

	t.Run("payment", func(t *testing.T) {
		rec := do(srv, http.MethodGet, "/v1/payments/3", getToken(t, other))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var item view.PaymentItem
		unmarchallObj(t, rec, &item)
		assert.Equal(t, 300, item.Amount.Int())
		assert.Equal(t, "$300", item.AmountLabel)
		assert.Equal(t, "Jan 10, 2025", item.DateLabel)
	})
}
