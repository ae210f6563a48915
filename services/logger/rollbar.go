package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/session"
)

// RollbarLogger reports to rollbar and echoes every entry to a std logger.
//
// Entries accept, after the message: an error, a map of extra fields and the
// session.Session or session.Identity the entry concerns. The first identified
// customer becomes the rollbar person and its id is added to the extras.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// entry is a log call split into what rollbar reports and who it concerns.
type entry struct {
	args   []interface{}
	extras map[string]interface{}
	who    *session.Identity
}

func newEntry(msg string, args []interface{}) entry {
	e := entry{args: []interface{}{msg}}
	for _, arg := range args {
		switch v := arg.(type) {
		case session.Session:
			if v.IsIdentified() {
				e.identify(v.Identity)
			}
		case session.Identity:
			e.identify(v)
		case map[string]interface{}:
			if e.extras == nil {
				e.extras = make(map[string]interface{}, len(v)+1)
			}
			for k, val := range v {
				e.extras[k] = val
			}
		default:
			e.args = append(e.args, arg)
		}
	}
	if e.who != nil {
		if e.extras == nil {
			e.extras = make(map[string]interface{}, 1)
		}
		e.extras["customerId"] = e.who.ID
	}
	if e.extras != nil {
		e.args = append(e.args, e.extras)
	}
	return e
}

func (e *entry) identify(ident session.Identity) {
	if e.who == nil && ident.ID != "" {
		e.who = &ident
	}
}

func (l RollbarLogger) report(send func(...interface{}), msg string, args []interface{}) {
	e := newEntry(msg, args)
	if e.who != nil {
		rollbar.SetPerson(e.who.ID, e.who.DisplayName, e.who.Email)
	} else {
		rollbar.ClearPerson()
	}
	send(e.args...)

	for _, arg := range e.args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.report(rollbar.Debug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.report(rollbar.Info, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.report(rollbar.Warning, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.report(rollbar.Error, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.Critical, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
