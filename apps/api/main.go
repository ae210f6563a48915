package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	dig_container "github.com/ericnguyen1274/Customer---App/apps/api/di/dig"
	echoapi "github.com/ericnguyen1274/Customer---App/apps/api/echo"
	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/account"
	"github.com/ericnguyen1274/Customer---App/core/customer"
	"github.com/ericnguyen1274/Customer---App/core/purchase"
)

// studio is everything the API process needs once the container has wired it.
// Asking for the Sequencer makes the container sync the id sequences before serving.
type studio struct {
	dig.In

	Conf        *core.Config
	Logger      core.Logger
	DBLogger    core.Logger `name:"dbLogger"`
	DB          core.DB
	Sequencer   core.Sequencer
	Validate    *validator.Validate
	Translator  ut.Translator
	PurchaseSvc *purchase.Service
	Server      *echoapi.Server
}

func main() {
	c := dig_container.New()

	var runErr error
	must(c.Invoke(func(s studio) { runErr = s.run() }))
	must(runErr)
}

func (s studio) run() error {
	s.prepare()
	defer func() {
		if err := s.DB.Close(context.Background()); err != nil {
			s.DBLogger.Error(fmt.Sprintf("closing %s store: %v", s.Conf.Database.Engine, err), err)
		}
	}()
	defer s.Logger.Info("studio api stopped")

	go s.serveDebug()
	go s.Server.Start()

	return s.wait()
}

// prepare loads what the handlers read at request time: translations, email templates
// and the common passwords list.
func (s studio) prepare() {
	s.Logger.Info(fmt.Sprintf("studio api %q starting in %q", s.Conf.Build, s.Conf.Env))
	s.Logger.Info(fmt.Sprintf("documents in %s, ids from %s sequences, purchases %s",
		s.Conf.Database.Engine, s.Conf.Sequence.Backend, s.PurchaseSvc.Mode()))

	customer.InitValidators(s.Validate, s.Translator)
	account.InitValidators(s.Validate, s.Translator)
	core.ParseEmailTemplates(s.Logger)
	account.LoadCommonPasswords(s.Logger)
}

// serveDebug exposes /debug/pprof and /debug/vars on the debug address.
func (s studio) serveDebug() {
	expvar.NewString("build").Set(s.Conf.Build)
	expvar.NewString("env").Set(s.Conf.Env)
	expvar.NewString("store").Set(s.Conf.Database.Engine)
	expvar.NewString("purchaseMode").Set(s.PurchaseSvc.Mode())

	if err := http.ListenAndServe(s.Conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
		s.Logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
	}
}

// wait blocks until the server fails or a shutdown signal arrives.
func (s studio) wait() error {
	select {
	case err := <-s.Server.Errors():
		return errors.Wrap(err, "serving api")

	case sig := <-s.Server.ShutdownSignal():
		s.Logger.Info(fmt.Sprintf("%v: draining requests for up to %v", sig, s.Conf.Server.ShutdownTimeout))

		ctx, cancel := context.WithTimeout(context.Background(), s.Conf.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Server.Shutdown(ctx); err != nil {
			s.Logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
			return errors.Wrap(s.Server.Close(), "force stopping server")
		}
		return nil
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
