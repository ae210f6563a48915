package account

import (
	"testing"
	"time"

	"github.com/ericnguyen1274/Customer---App/core"
)

func TestMakeVerifyToken(t *testing.T) {
	tokens := newTokenGenerator("secret", 3*24*time.Hour)

	now := time.Now()
	usr := User{
		UID:       "uid-1",
		FullName:  "T",
		Email:     "t@test.test",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		LastLogin: now,
	}
	_ = usr.SetPassword("pwd")

	validToken := tokens.makeToken(usr)

	// generate an expired token
	dayLate := tokens.timeout + (24 * time.Hour)
	core.NowFunc = func() time.Time { return time.Now().Add(-dayLate) }
	expiredToken := tokens.makeToken(usr)
	core.NowFunc = time.Now // reset

	loggedIn := usr
	loggedIn.LastLogin = now.Add(time.Minute)

	otherKey := newTokenGenerator("other secret", tokens.timeout)

	tests := []struct {
		name    string
		tokens  tokenGenerator
		usr     User
		token   string
		wantErr error
	}{
		{name: "no token", tokens: tokens, usr: usr, wantErr: errInvalidToken},
		{name: "invalid parts len", tokens: tokens, usr: usr, token: "lmaooolol", wantErr: errInvalidToken},
		{name: "invalid base32", tokens: tokens, usr: usr, token: "hahaha-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid timestamp", tokens: tokens, usr: usr, token: "NRXWY-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid token", tokens: tokens, usr: usr, token: "HE4TS-sigsig-sig", wantErr: errInvalidToken},
		{name: "expired token", tokens: tokens, usr: usr, token: expiredToken, wantErr: errTokenExpired},
		{name: "logged in since", tokens: tokens, usr: loggedIn, token: validToken, wantErr: errInvalidToken},
		{name: "other secret key", tokens: otherKey, usr: usr, token: validToken, wantErr: errInvalidToken},
		{name: "valid token", tokens: tokens, usr: usr, token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tokens.verifyToken(tt.usr, tt.token); err != tt.wantErr {
				t.Errorf("verifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeDecodeUID(t *testing.T) {
	usr := User{UID: "0b7c1e0e-5b1f-4c55-9d0e-3f0f7f3f9a11"}
	uid, err := decodeUID(EncodeUID(usr))
	if err != nil {
		t.Fatalf("decodeUID() failed: %v", err)
	}
	if uid != usr.UID {
		t.Errorf("failed! uid = %v; want %v", uid, usr.UID)
	}
	if _, err := decodeUID("!!"); err == nil {
		t.Error("decodeUID() error = nil; want an error")
	}
}
