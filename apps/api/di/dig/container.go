package dig_container

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/ericnguyen1274/Customer---App/apps/api/echo"
	"github.com/ericnguyen1274/Customer---App/core"
	"github.com/ericnguyen1274/Customer---App/core/account"
	"github.com/ericnguyen1274/Customer---App/core/catalog"
	"github.com/ericnguyen1274/Customer---App/core/customer"
	"github.com/ericnguyen1274/Customer---App/core/enrollment"
	"github.com/ericnguyen1274/Customer---App/core/purchase"
	"github.com/ericnguyen1274/Customer---App/core/session"
	emailsvc "github.com/ericnguyen1274/Customer---App/services/email"
	logsvc "github.com/ericnguyen1274/Customer---App/services/logger"
	metricsvc "github.com/ericnguyen1274/Customer---App/services/metrics"
	"github.com/ericnguyen1274/Customer---App/storage/database"
	"github.com/ericnguyen1274/Customer---App/storage/database/docrepos"
	"github.com/ericnguyen1274/Customer---App/storage/sequence"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type serverParams struct {
	dig.In

	Conf          *core.Config
	Logger        core.Logger
	Metrics       *metricsvc.PrometheusMetrics
	Validate      *validator.Validate
	Translator    ut.Translator
	CustomerSvc   *customer.Service
	Authenticator *session.Authenticator
	CatalogSvc    *catalog.Service
	PurchaseSvc   *purchase.Service
	AccountSvc    *account.Service
	EnrollmentSvc *enrollment.Service
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) core.DB {
	setUp := func() (core.DB, error) {
		db, err := database.Open(context.Background(), conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

// newSequencer uses the store's own sequences unless redis is configured; either way the
// sequences start above the numbered documents already stored.
func newSequencer(conf *core.Config, db core.DB, loggerParam DBLoggerParam) core.Sequencer {
	seq, err := sequence.Open(context.Background(), conf, db)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up sequencer: %v", err), err)
	}
	return seq
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newMetrics(m *metricsvc.PrometheusMetrics) core.Metrics { return m }

func newDocStore(db core.DB) core.DocStore { return db }

func newCatalogService(db core.DocStore, validate *validator.Validate) *catalog.Service {
	return catalog.NewService(
		docrepos.NewCourseRepository(db),
		docrepos.NewCategoryRepository(db),
		docrepos.NewTeacherRepository(db),
		docrepos.NewPurchaseRepository(db),
		validate,
	)
}

func newAuthenticator(repo customer.Repository, logger core.Logger, metrics core.Metrics) *session.Authenticator {
	return session.NewAuthenticator(repo, logger, metrics)
}

func newServer(p serverParams) *echoapi.Server {
	var metricsHandler http.Handler
	if p.Metrics != nil {
		metricsHandler = p.Metrics.Handler()
	}
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:           p.Conf,
		Logger:         p.Logger,
		Metrics:        p.Metrics,
		MetricsHandler: metricsHandler,
		Validate:       p.Validate,
		Translator:     p.Translator,
		CustomerSvc:    p.CustomerSvc,
		Authenticator:  p.Authenticator,
		CatalogSvc:     p.CatalogSvc,
		PurchaseSvc:    p.PurchaseSvc,
		AccountSvc:     p.AccountSvc,
		EnrollmentSvc:  p.EnrollmentSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newDocStore))
	must(c.Provide(newSequencer))
	must(c.Provide(newEmailService))
	must(c.Provide(metricsvc.NewPrometheusMetrics))
	must(c.Provide(newMetrics))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(core.NewValidator))

	// repositories
	must(c.Provide(docrepos.NewCustomerRepository))
	must(c.Provide(docrepos.NewPurchaseRepository))
	must(c.Provide(docrepos.NewUserRepository))
	must(c.Provide(docrepos.NewEnrollmentRepository))

	// services
	must(c.Provide(customer.NewService))
	must(c.Provide(newAuthenticator))
	must(c.Provide(newCatalogService))
	must(c.Provide(purchase.NewService))
	must(c.Provide(account.NewService))
	must(c.Provide(enrollment.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
