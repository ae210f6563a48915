package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/account"
	"github.com/ericnguyen1274/Customer---App/core/catalog"
	"github.com/ericnguyen1274/Customer---App/core/customer"
	"github.com/ericnguyen1274/Customer---App/core/enrollment"
	"github.com/ericnguyen1274/Customer---App/core/purchase"
	"github.com/ericnguyen1274/Customer---App/core/session"
	emailsvc "github.com/ericnguyen1274/Customer---App/services/email"
	"github.com/ericnguyen1274/Customer---App/storage/database/docrepos"
	inmemdb "github.com/ericnguyen1274/Customer---App/storage/database/inmem"
	testutil "github.com/ericnguyen1274/Customer---App/tests"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errInvalidToken = httpErr{Error: "invalid or expired jwt"}
	errNotFound     = httpErr{Error: "not found"}
)

func setup(t *testing.T) (*Server, *inmemdb.DB) {
	// set up DB & repos
	db := testutil.PrepareDB(t)
	custRepo := docrepos.NewCustomerRepository(db)
	purchaseRepo := docrepos.NewPurchaseRepository(db)

	conf := core.NewTestConfig()
	logger := new(testutil.Logger)
	validate, translator := testutil.NewValidator()
	account.LoadCommonPasswords(logger)
	emailsvc.ResetSentMessages()

	// set up services
	purchaseSvc, err := purchase.NewService(purchaseRepo, db, conf, logger, core.NopMetrics{})
	if err != nil {
		t.Fatalf("purchase.NewService() failed: %v", err)
	}

	// set up server
	srv := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
		CustomerSvc:    customer.NewService(custRepo, db, validate, logger),
		Authenticator:  session.NewAuthenticator(custRepo, logger, core.NopMetrics{}),
		CatalogSvc: catalog.NewService(
			docrepos.NewCourseRepository(db),
			docrepos.NewCategoryRepository(db),
			docrepos.NewTeacherRepository(db),
			purchaseRepo,
			validate,
		),
		PurchaseSvc:   purchaseSvc,
		AccountSvc:    account.NewService(docrepos.NewUserRepository(db), emailsvc.NewConsoleServiceMock(conf), validate, conf),
		EnrollmentSvc: enrollment.NewService(docrepos.NewEnrollmentRepository(db), validate),
	})
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, db
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// do serves one request and returns its recorder.
func do(srv *Server, method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	srv.ServeHTTP(rec, req)
	return rec
}

func getToken(t *testing.T, cust customer.Customer) string {
	token, err := newAuth(core.NewTestConfig()).GenerateToken(session.Identify(session.IdentityOf(cust)))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func unmarchallObj(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), obj); err != nil {
		t.Fatalf("unmarchallObj(%s) failed: %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHttpTests(t *testing.T, srv *Server, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			checkCodeAndData(t, tt, do(srv, method, tt.path, tt.token, tt.body))
		})
	}
}

func TestServer_home(t *testing.T) {
	srv, _ := setup(t)
	rec := do(srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Yoga Studio API!", rec.Body.String())
}
