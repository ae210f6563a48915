package session

import (
	"context"
	"strconv"
)

type State string

const (
	StateAnonymous  State = "anonymous"
	StateIdentified State = "identified"
)

// Identity is who an identified Session belongs to. ID is the decimal form of CustomerID.
type Identity struct {
	ID          string `json:"uid"`
	CustomerID  int    `json:"customerId,omitempty"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber"`
}

// Session is an explicit value; the zero value is the anonymous session.
type Session struct {
	State    State    `json:"state"`
	Identity Identity `json:"user"`
}

func Anonymous() Session {
	return Session{State: StateAnonymous}
}

func Identify(id Identity) Session {
	return Session{State: StateIdentified, Identity: id}
}

// Logout always succeeds.
func (s Session) Logout() Session {
	return Anonymous()
}

func (s Session) IsIdentified() bool {
	return s.State == StateIdentified
}

// CustomerID reports the customer the session is identified as.
// Anonymous sessions have no customer: (0, false).
func (s Session) CustomerID() (int, bool) {
	if !s.IsIdentified() {
		return 0, false
	}
	if s.Identity.CustomerID > 0 {
		return s.Identity.CustomerID, true
	}
	id, err := strconv.Atoi(s.Identity.ID)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying sess.
func NewContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the Session carried by ctx, or the anonymous session.
func FromContext(ctx context.Context) Session {
	if sess, ok := ctx.Value(ctxKey{}).(Session); ok {
		return sess
	}
	return Anonymous()
}
