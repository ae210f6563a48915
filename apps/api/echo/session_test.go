package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/customer"
	"github.com/ericnguyen1274/Customer---App/core/session"
	"github.com/ericnguyen1274/Customer---App/core/view"
	testutil "github.com/ericnguyen1274/Customer---App/tests"
)

func Test_sessionApi_register(t *testing.T) {
	srv, db := setup(t)
	testutil.CreateCustomer(t, db, 40, "taken@test.cd", "555-0140")

	body := func(name, email, phone string) []byte {
		return marchallObj(t, customer.NewCustomer{Name: name, Email: email, Phone: phone})
	}

	tests := []httpTest{
		{
			name: "empty fields", body: body(" ", "lol@test.cd", ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: customer.MsgFillAllFields}),
		},
		{
			name: "invalid email", body: body("Lol", "lol", "555-0100"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "invalid phone", body: body("Lol", "lol@test.cd", "call me"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"phone": "phone must be a valid phone number"}),
		},
		{
			name: "email taken", body: body("Lol", "taken@test.cd", "555-0100"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"email": customer.MsgEmailExists}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/v1/customers"
	}
	runHttpTests(t, srv, tests)

	t.Run("registered", func(t *testing.T) {
		rec := do(srv, http.MethodPost, "/v1/customers", "", body("  Nia ", "nia@test.cd", "+1 555 0101"))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp RegistrationResponse
		unmarchallObj(t, rec, &resp)
		assert.Equal(t, customer.MsgRegistered, resp.Message)
		assert.Equal(t, 1, resp.Customer.ID())
		assert.Equal(t, "Nia", resp.Customer.Name)
		assert.Equal(t, "+1 555 0101", resp.Customer.Phone)
	})
}

func Test_sessionApi_signIn(t *testing.T) {
	srv, db := setup(t)
	cust := testutil.CreateCustomer(t, db, 7, "seven@test.cd", "555-0107")

	body := func(email, phone string) []byte {
		return marchallObj(t, SignInRequest{Email: email, Phone: phone})
	}

	tests := []httpTest{
		{
			name: "missing phone", body: body("seven@test.cd", ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: session.MsgMissingCredentials}),
		},
		{
			name: "unknown email", body: body("eight@test.cd", "555-0107"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: session.MsgCustomerNotFound}),
		},
		{
			name: "email is case sensitive", body: body("SEVEN@test.cd", "555-0107"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: session.MsgCustomerNotFound}),
		},
		{
			name: "wrong phone", body: body("seven@test.cd", "555 0107"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: session.MsgInvalidPhone}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/v1/session"
	}
	runHttpTests(t, srv, tests)

	t.Run("signed in", func(t *testing.T) {
		rec := do(srv, http.MethodPost, "/v1/session", "", body(" seven@test.cd ", "555-0107"))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp SignInResponse
		unmarchallObj(t, rec, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, session.Identify(session.IdentityOf(cust)), resp.Session)

		// the token identifies the customer
		rec = do(srv, http.MethodGet, "/v1/customers/me", resp.Token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var me customer.Customer
		unmarchallObj(t, rec, &me)
		assert.Equal(t, cust.Email, me.Email)
	})

	t.Run("signed out", func(t *testing.T) {
		rec := do(srv, http.MethodDelete, "/v1/session", getToken(t, cust))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func Test_sessionApi_me(t *testing.T) {
	srv, db := setup(t)
	cust := testutil.CreateCustomer(t, db, 3, "three@test.cd", "555-0103")
	token := getToken(t, cust)

	tests := []httpTest{
		{name: "auth required", path: "/v1/customers/me", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "invalid token", path: "/v1/customers/me", token: "lol",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errInvalidToken),
		},
		{
			name: "invalid phone", method: http.MethodPut, path: "/v1/customers/me", token: token,
			body:     marchallObj(t, customer.UpdateCustomer{Phone: "nope"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"phone": "phone must be a valid phone number"}),
		},
	}
	runHttpTests(t, srv, tests)

	t.Run("retrieve", func(t *testing.T) {
		rec := do(srv, http.MethodGet, "/v1/customers/me", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got customer.Customer
		unmarchallObj(t, rec, &got)
		assert.Equal(t, 3, got.ID())
		assert.Equal(t, "555-0103", got.Phone)
	})

	t.Run("update", func(t *testing.T) {
		rec := do(srv, http.MethodPut, "/v1/customers/me", token, marchallObj(t, customer.UpdateCustomer{Name: "Tri"}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got customer.Customer
		unmarchallObj(t, rec, &got)
		assert.Equal(t, "Tri", got.Name)
		assert.Equal(t, "555-0103", got.Phone)
	})
}

func Test_sessionApi_expiredToken(t *testing.T) {
	srv, db := setup(t)
	cust := testutil.CreateCustomer(t, db, 7, "seven@test.cd", "555-0107")

	// issued 30 days ago, past the default expiry
	core.NowFunc = func() time.Time { return time.Now().AddDate(0, 0, -30) }
	expired := getToken(t, cust)
	core.NowFunc = time.Now

	runHttpTests(t, srv, []httpTest{
		{name: "anonymous route", path: "/v1/courses", token: expired, wantCode: http.StatusOK},
		{name: "garbage token", path: "/v1/categories", token: "lol", wantCode: http.StatusOK},
		{name: "required route", path: "/v1/profile", token: expired, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errInvalidToken)},
	})

	t.Run("home is anonymous", func(t *testing.T) {
		rec := do(srv, http.MethodGet, "/v1/home", expired)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var snap view.HomeSnapshot
		unmarchallObj(t, rec, &snap)
		assert.Empty(t, snap.MyCourses.Items)
	})

	t.Run("sign in again", func(t *testing.T) {
		rec := do(srv, http.MethodPost, "/v1/session", expired, marchallObj(t, SignInRequest{Email: "seven@test.cd", Phone: "555-0107"}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp SignInResponse
		unmarchallObj(t, rec, &resp)
		rec = do(srv, http.MethodGet, "/v1/profile", resp.Token)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}
