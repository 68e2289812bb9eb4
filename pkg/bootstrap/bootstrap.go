package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/email"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/password"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/pg"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/pgstore"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/ratelimiter"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/redis"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/secrets"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/trusteddevice"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/twofactor"
)

// Store is the persistence the service needs. pgstore.Store and
// memstore.Store both implement it.
type Store interface {
	twofactor.ProfileStore
	otpcode.Store
	trusteddevice.Store
	password.HashStore
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Components are the pieces Build wires together.
type Components struct {
	Store        Store
	LimiterStore ratelimiter.Store // nil disables issuance throttling
	Sender       email.EmailSender // nil disables email delivery
}

// Service is the assembled two-factor stack.
type Service struct {
	Manager *twofactor.Manager
	Ledger  *otpcode.Ledger
	Devices *trusteddevice.Registry
	Logger  *slog.Logger
}

// Build assembles the domain services over already-opened components.
func Build(s Settings, c Components, log *slog.Logger) (*Service, error) {
	if log == nil {
		log = logger.Discard()
	}
	if c.Store == nil {
		return nil, ErrNoStore
	}

	cipher, err := secrets.New(s.Secrets, secrets.WithLogger(log))
	if err != nil {
		return nil, err
	}

	ledgerOpts := []otpcode.Option{otpcode.WithLogger(log), otpcode.WithTTL(s.App.CodeTTL)}
	if c.LimiterStore != nil {
		bucket, err := ratelimiter.NewBucket(c.LimiterStore, s.App.IssueLimit)
		if err != nil {
			return nil, err
		}
		ledgerOpts = append(ledgerOpts, otpcode.WithIssueLimiter(bucket))
	}
	ledger := otpcode.NewLedger(c.Store, c.Store, cipher, ledgerOpts...)
	devices := trusteddevice.NewRegistry(c.Store, trusteddevice.WithLogger(log))

	managerOpts := []twofactor.Option{twofactor.WithLogger(log), twofactor.WithCodeTTL(s.App.CodeTTL)}
	if c.Sender != nil {
		managerOpts = append(managerOpts, twofactor.WithNotifier(email.NewCodeMailer(c.Sender, s.App.ProductName)))
	}
	if s.App.RequirePassword {
		managerOpts = append(managerOpts, twofactor.WithPasswordChecker(password.NewVerifier(c.Store, password.WithLogger(log))))
	}

	manager, err := twofactor.NewManager(s.TwoFactor, twofactor.Dependencies{
		Profiles: c.Store,
		Tx:       c.Store,
		Cipher:   cipher,
		Ledger:   ledger,
		Devices:  devices,
	}, managerOpts...)
	if err != nil {
		return nil, err
	}

	return &Service{Manager: manager, Ledger: ledger, Devices: devices, Logger: log}, nil
}

// App owns the infrastructure connections behind a Service.
type App struct {
	*Service

	Pool  *pgxpool.Pool
	Redis *goredis.Client // nil when REDIS_URL is unset
	Store *pgstore.Store

	closers []func()
}

// New connects to Postgres, optionally Redis, picks an email sender and
// builds the Service. Close releases everything.
func New(ctx context.Context, s Settings, log *slog.Logger) (*App, error) {
	if log == nil {
		log = logger.Discard()
	}
	app := &App{}

	pool, err := pg.Connect(ctx, s.Postgres, log)
	if err != nil {
		return nil, err
	}
	app.Pool = pool
	app.closers = append(app.closers, pool.Close)
	app.Store = pgstore.New(pg.NewTransactor(pool))

	var limiterStore ratelimiter.Store
	if s.Redis.Enabled() {
		client, err := redis.Connect(ctx, s.Redis, log)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Redis = client
		app.closers = append(app.closers, func() { _ = client.Close() })
		limiterStore = ratelimiter.NewRedisStore(client)
	} else {
		mem := ratelimiter.NewMemoryStore()
		app.closers = append(app.closers, mem.Close)
		limiterStore = mem
	}

	sender, err := email.NewSender(s.Email, log)
	if err != nil {
		app.Close()
		return nil, err
	}

	svc, err := Build(s, Components{Store: app.Store, LimiterStore: limiterStore, Sender: sender}, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Service = svc
	return app, nil
}

// Healthcheck pings Postgres and, when configured, Redis.
func (a *App) Healthcheck(ctx context.Context) error {
	err := pg.Healthcheck(a.Pool)(ctx)
	if a.Redis != nil {
		err = errors.Join(err, redis.Healthcheck(a.Redis)(ctx))
	}
	return err
}

// Close waits for in-flight notifications, then closes connections in
// reverse order.
func (a *App) Close() {
	if a.Service != nil {
		a.Manager.Wait()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
