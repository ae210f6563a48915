package echoapi

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericnguyen1274/Customer---App/core/account"
	emailsvc "github.com/ericnguyen1274/Customer---App/services/email"
	testutil "github.com/ericnguyen1274/Customer---App/tests"
)

const strongPwd = "Yoga-Studio2025!"

func Test_accountApi_create(t *testing.T) {
	srv, db := setup(t)
	testutil.CreateUser(t, db, "uid-1", "Taken", "taken@test.cd", strongPwd)

	body := func(name, email, pwd, confirm string) []byte {
		return marchallObj(t, account.NewUser{FullName: name, Email: email, Password: pwd, PasswordConfirm: confirm})
	}

	tests := []httpTest{
		{name: "empty body", body: []byte("{}"), wantCode: http.StatusBadRequest},
		{name: "password mismatch", body: body("Asha Rao", "asha@test.cd", strongPwd, "lol"), wantCode: http.StatusBadRequest},
		{name: "weak password", body: body("Asha Rao", "asha@test.cd", "password", "password"), wantCode: http.StatusBadRequest},
		{
			name: "email taken", body: body("Other", "TAKEN@test.cd", strongPwd, strongPwd),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"email": account.ErrEmailExists.Error()}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/v1/accounts"
	}
	runHttpTests(t, srv, tests)

	t.Run("created", func(t *testing.T) {
		rec := do(srv, http.MethodPost, "/v1/accounts", "", body(" Asha Rao ", "Asha@Test.cd", strongPwd, strongPwd))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var usr map[string]interface{}
		unmarchallObj(t, rec, &usr)
		assert.Equal(t, "asha@test.cd", usr["email"])
		assert.Equal(t, "Asha Rao", usr["displayName"])
		assert.NotEmpty(t, usr["uid"])
		assert.NotContains(t, usr, "passwordHash")

		require.Len(t, emailsvc.SentMessages, 1)
		assert.Equal(t, "asha@test.cd", emailsvc.SentMessages[0].To[0].Address)
	})
}

func Test_accountApi_login(t *testing.T) {
	srv, db := setup(t)
	usr := testutil.CreateUser(t, db, "uid-1", "Asha Rao", "asha@test.cd", strongPwd)

	invalid := marchallObj(t, httpErr{Error: "invalid credentials"})
	tests := []httpTest{
		{
			name: "unknown email", method: http.MethodPost, path: "/v1/accounts/login",
			body: marchallObj(t, PasswordLoginRequest{Email: "lol@test.cd", Password: strongPwd}), wantCode: http.StatusBadRequest, wantData: invalid,
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/v1/accounts/login",
			body: marchallObj(t, PasswordLoginRequest{Email: usr.Email, Password: "lol"}), wantCode: http.StatusBadRequest, wantData: invalid,
		},
		{
			name: "display name: wrong password", method: http.MethodPut, path: "/v1/accounts/display-name",
			body:     marchallObj(t, echo.Map{"email": usr.Email, "password": "lol", "displayName": "Ash"}),
			wantCode: http.StatusBadRequest, wantData: invalid,
		},
		{
			name: "display name: empty", method: http.MethodPut, path: "/v1/accounts/display-name",
			body:     marchallObj(t, echo.Map{"email": usr.Email, "password": strongPwd, "displayName": " "}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"displayName": "this field is required"}),
		},
	}
	runHttpTests(t, srv, tests)

	t.Run("logged in", func(t *testing.T) {
		rec := do(srv, http.MethodPost, "/v1/accounts/login", "", marchallObj(t, PasswordLoginRequest{Email: "ASHA@test.cd", Password: strongPwd}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got account.User
		unmarchallObj(t, rec, &got)
		assert.Equal(t, usr.UID, got.UID)
		assert.False(t, got.LastLogin.IsZero())
	})

	t.Run("display name updated", func(t *testing.T) {
		rec := do(srv, http.MethodPut, "/v1/accounts/display-name", "",
			marchallObj(t, echo.Map{"email": usr.Email, "password": strongPwd, "displayName": " Ash "}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got account.User
		unmarchallObj(t, rec, &got)
		assert.Equal(t, "Ash", got.DisplayName)
		assert.Equal(t, "Asha Rao", got.FullName)
	})
}

func Test_accountApi_passwordReset(t *testing.T) {
	srv, db := setup(t)
	usr := testutil.CreateUser(t, db, "uid-1", "Asha Rao", "asha@test.cd", strongPwd)
	newPwd := "Lotus#Pose77x"
	resetSent := marchallObj(t, echo.Map{"message": msgPasswordResetSent})
	runHttpTests(t, srv, []httpTest{
		{
			name: "unknown email", method: http.MethodPost, path: "/v1/accounts/password-reset",
			body: marchallObj(t, PasswordResetRequest{Email: "lol@test.cd"}), wantCode: http.StatusOK, wantData: resetSent,
		},
		{
			name: "invalid uid", method: http.MethodPost, path: "/v1/accounts/password-reset-confirm",
			body: marchallObj(t, account.ResetUserPassword{
				UID: "!!", Token: "lol", Password: newPwd, PasswordConfirm: newPwd,
			}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: account.ErrInvalidResetID.Error()}),
		},
	})
	require.Empty(t, emailsvc.SentMessages)

	rec := do(srv, http.MethodPost, "/v1/accounts/password-reset", "", marchallObj(t, PasswordResetRequest{Email: usr.Email}))
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: resetSent}, rec)
	require.Len(t, emailsvc.SentMessages, 1)

	link := regexp.MustCompile(`uid=([^&\s]+)&token=(\S+)`).FindStringSubmatch(emailsvc.SentMessages[0].TextContent)
	require.Len(t, link, 3, emailsvc.SentMessages[0].TextContent)
	confirm := marchallObj(t, account.ResetUserPassword{UID: link[1], Token: link[2], Password: newPwd, PasswordConfirm: newPwd})

	rec = do(srv, http.MethodPost, "/v1/accounts/password-reset-confirm", "", confirm)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(srv, http.MethodPost, "/v1/accounts/login", "", marchallObj(t, PasswordLoginRequest{Email: usr.Email, Password: newPwd}))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// tokens are single use: the password hash changed
	rec = do(srv, http.MethodPost, "/v1/accounts/password-reset-confirm", "", confirm)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}
