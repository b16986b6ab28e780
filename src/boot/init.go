package boot

import (
	"context"
	"fmt"
	"time"

	"bookingapi/src/config"
	"bookingapi/src/controllers"
	"bookingapi/src/db"
	"bookingapi/src/lib"
	awslib "bookingapi/src/lib/aws"
	"bookingapi/src/lib/mailer"
	"bookingapi/src/logger"
	"bookingapi/src/metrics"
	"bookingapi/src/repository"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
)

const mailSendTimeout = 30 * time.Second

// App is the fully wired dependency graph of the API process.
type App struct {
	Config   *config.Config
	Log      logger.Logger
	Metrics  *metrics.Metrics
	Store    *repository.Store
	Notifier *controllers.Notifier

	Bookings  *controllers.BookingController
	Places    *controllers.PlaceController
	Users     *controllers.UserController
	Enquiries *controllers.EnquiryController

	stopConsumer context.CancelFunc
	consumerDone <-chan struct{}
}

// Init builds every dependency from cfg. The returned App owns the store and
// any background consumer; release them with Shutdown.
func Init(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	m := metrics.NewMetrics("bookingapi", prometheus.DefaultRegisterer)

	store, err := InitStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	places := InitPlaces(cfg, log)

	app := &App{Config: cfg, Log: log, Metrics: m, Store: store}
	mail, err := app.initMailer(ctx)
	if err != nil {
		store.Close(ctx)
		return nil, err
	}

	return app.wire(places, mail), nil
}

// NewApp wires controllers over already-built collaborators.
func NewApp(cfg *config.Config, log logger.Logger, m *metrics.Metrics, store *repository.Store, places lib.PlacesProvider, mail lib.Mailer) *App {
	app := &App{Config: cfg, Log: log, Metrics: m, Store: store}
	return app.wire(places, mail)
}

func (a *App) wire(places lib.PlacesProvider, mail lib.Mailer) *App {
	a.Notifier = controllers.NewNotifier(mail, mailSendTimeout, a.Log, a.Metrics)
	a.Places = controllers.NewPlaceController(places, a.Config.Places, a.Log, a.Metrics)
	a.Bookings = controllers.NewBookingController(a.Store, a.Places, a.Notifier, a.Config, a.Log)
	a.Users = controllers.NewUserController(a.Store.Users, a.Config, a.Log)
	a.Enquiries = controllers.NewEnquiryController(a.Store.Enquiries, a.Notifier, a.Config, a.Log)
	return a
}

func InitStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*repository.Store, error) {
	switch cfg.StoreDriver {
	case config.STORE_MONGO:
		database, err := db.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("error connecting to mongo: %w", err)
		}
		log.Info("connected to mongo", "database", cfg.MongoDB)
		return repository.NewMongoStore(ctx, database)
	default:
		gormDB, err := db.Open(postgres.Open(cfg.GetDSN()))
		if err != nil {
			return nil, fmt.Errorf("error connecting to postgres: %w", err)
		}
		if err := db.Migrate(gormDB); err != nil {
			return nil, fmt.Errorf("error migration: %w", err)
		}
		log.Info("connected to postgres", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return repository.NewGormStore(gormDB), nil
	}
}

// InitPlaces never fails: without an API key every lookup reports
// unavailable, and a broken cache setup falls back to direct lookups.
func InitPlaces(cfg *config.Config, log logger.Logger) lib.PlacesProvider {
	client, err := lib.NewPlacesClient(cfg.Places)
	if err != nil {
		log.Warn("place lookups disabled", "error", err)
		return lib.NewUnavailablePlaces()
	}
	if cfg.RedisURL == "" {
		return client
	}
	rdb, err := lib.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Warn("place cache disabled", "error", err)
		return client
	}
	return lib.NewCachedPlaces(client, rdb, cfg.PlaceCacheTTL, log)
}

func (a *App) initMailer(ctx context.Context) (lib.Mailer, error) {
	cfg := a.Config.Mail
	switch cfg.Transport {
	case config.MAIL_SES:
		sdk, err := lib.NewAWSSDKClient(ctx)
		if err != nil {
			return nil, err
		}
		return awslib.NewSESMailer(sdk.SES(), cfg, a.Log), nil
	case config.MAIL_QUEUE:
		sdk, err := lib.NewAWSSDKClient(ctx)
		if err != nil {
			return nil, err
		}
		relay := lib.NewSMTPMailer(cfg, a.Log.With("component", "relay"))
		consumer := awslib.NewSQSConsumer(sdk.SQS(), cfg.Queue, mailer.RelayHandler(relay, a.Log), a.Log)
		consumerCtx, cancel := context.WithCancel(context.Background())
		a.stopConsumer = cancel
		a.consumerDone = consumer.Listen(consumerCtx)
		a.Log.Info("relaying queued email", "queue", cfg.Queue)
		return mailer.NewQueueMailer(awslib.NewSQSProducer(sdk.SQS()), cfg.Queue), nil
	default:
		return lib.NewSMTPMailer(cfg, a.Log), nil
	}
}

// Shutdown waits for background email, stops the queue consumer and closes
// the store, in that order. Waiting on the consumer is bounded by ctx.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error
	if err := a.Notifier.Drain(ctx); err != nil {
		a.Log.Warn("pending emails not drained", "error", err)
		firstErr = err
	}
	if a.stopConsumer != nil {
		a.stopConsumer()
	}
	if a.consumerDone != nil {
		select {
		case <-a.consumerDone:
		case <-ctx.Done():
			a.Log.Warn("queue consumer still relaying at shutdown", "error", ctx.Err())
			if firstErr == nil {
				firstErr = ctx.Err()
			}
		}
	}
	if err := a.Store.Close(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
