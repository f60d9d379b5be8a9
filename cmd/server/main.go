// Command server runs the Content Studio auth and history API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/contentstudio/studio/handler"
	"github.com/contentstudio/studio/locales"
	"github.com/contentstudio/studio/migrations"
	"github.com/contentstudio/studio/modules"
	"github.com/contentstudio/studio/modules/account"
	"github.com/contentstudio/studio/modules/history"
	"github.com/contentstudio/studio/pkg/auth"
	"github.com/contentstudio/studio/pkg/config"
	"github.com/contentstudio/studio/pkg/cookie"
	"github.com/contentstudio/studio/pkg/email"
	"github.com/contentstudio/studio/pkg/environment"
	"github.com/contentstudio/studio/pkg/httpserver"
	"github.com/contentstudio/studio/pkg/i18n"
	"github.com/contentstudio/studio/pkg/jwt"
	"github.com/contentstudio/studio/pkg/logger"
	"github.com/contentstudio/studio/pkg/mongo"
	"github.com/contentstudio/studio/pkg/pg"
	"github.com/contentstudio/studio/pkg/ratelimiter"
	"github.com/contentstudio/studio/pkg/redis"
	"github.com/contentstudio/studio/pkg/requestid"
	"github.com/contentstudio/studio/pkg/secrets"
	"github.com/contentstudio/studio/pkg/token"
)

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.AppName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// stores is the persistence selected by STORAGE_DRIVER.
type stores struct {
	accounts auth.Storage
	history  history.Storage
	checks   map[string]httpserver.Check
	close    func()
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	env := environment.Parse(cfg.Env)
	ctx = environment.WithContext(ctx, env)

	master := []byte(cfg.SecretKey)
	tokens, err := token.New(secrets.MustDerive(master, secrets.MagicLinkKey), token.WithTTL(cfg.MagicLinkTTL), token.WithIssuer(cfg.AppName))
	if err != nil {
		return err
	}
	sessions, err := jwt.New(secrets.MustDerive(master, secrets.SessionKey), jwt.WithTTL(cfg.SessionTTL), jwt.WithIssuer(cfg.AppName))
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	sender, err := newSender(cfg)
	if err != nil {
		return err
	}

	authOpts := []auth.Option{auth.WithLogger(log)}
	if cfg.SingleUseLinks {
		guard, closeGuard, err := newReplayGuard(ctx, cfg, log, st.checks)
		if err != nil {
			return err
		}
		defer closeGuard()
		authOpts = append(authOpts, auth.WithReplayGuard(guard))
	}

	svc := auth.NewService(
		st.accounts,
		email.NewMagicLinkNotifier(sender, cfg.AppName, cfg.MagicLinkTTL),
		tokens,
		sessions,
		auth.NewLinkBuilder(cfg.AppURL),
		authOpts...,
	)

	tr, err := i18n.NewTranslator(ctx, locales.FS, i18n.WithLogger(log))
	if err != nil {
		return err
	}
	errs := handler.NewErrors(log, tr, account.MapError, history.MapError)

	limitStore := ratelimiter.NewMemoryStore()
	defer limitStore.Close()
	limiter, err := ratelimiter.NewBucket(limitStore, ratelimiter.PerMinute(cfg.RateLimitPerMinute))
	if err != nil {
		return err
	}

	cookies := cookie.NewFromConfig(cfg.Cookie)
	acct, err := account.New(svc, errs,
		account.Config{
			FrontendURL: cfg.FrontendURL,
			Transport:   account.SessionTransport(cfg.SessionTransport),
			CookieName:  cfg.SessionCookieName,
		},
		account.WithCookies(cookies),
		account.WithLinkRequestLimiter(modules.LinkRequestLimiter(limiter, errs)),
		account.WithLogger(log),
	)
	if err != nil {
		return err
	}
	if cfg.SessionTransport == string(account.TransportQuery) {
		log.WarnContext(ctx, "session tokens are delivered in redirect URLs; set SESSION_TRANSPORT=cookie to keep them out of browser history")
	}

	router := modules.Router(modules.RouterOptions{
		Logger:         log,
		Translator:     tr,
		Errors:         errs,
		Sessions:       sessions,
		Account:        acct,
		History:        history.NewModule(history.NewService(st.history, svc, history.WithLogger(log)), errs),
		AllowedOrigins: cfg.Origins(),
		TrustProxy:     cfg.TrustProxy,
		Readiness:      st.checks,
	})

	log.InfoContext(ctx, "starting",
		slog.String("storage", cfg.StorageDriver),
		slog.String("email", cfg.EmailDriver),
		slog.String("session_transport", cfg.SessionTransport),
		slog.Bool("single_use_links", cfg.SingleUseLinks),
	)

	return httpserver.New(cfg.HTTP, log).Run(ctx, environment.Middleware(env)(router))
}

func openStores(ctx context.Context, cfg Config, log *slog.Logger) (*stores, error) {
	switch cfg.StorageDriver {
	case StoragePostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := pg.Migrate(ctx, pool, migrations.FS, cfg.Postgres, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &stores{
			accounts: account.NewPostgresStorage(pool),
			history:  history.NewPostgresStorage(pool),
			checks:   map[string]httpserver.Check{"postgres": pg.Healthcheck(pool)},
			close:    pool.Close,
		}, nil

	case StorageMongo:
		db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		disconnect := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Client().Disconnect(ctx); err != nil {
				log.Error("failed to disconnect from mongodb", logger.Error(err))
			}
		}
		accounts, err := account.NewMongoStorage(ctx, db)
		if err != nil {
			disconnect()
			return nil, err
		}
		records, err := history.NewMongoStorage(ctx, db)
		if err != nil {
			disconnect()
			return nil, err
		}
		return &stores{
			accounts: accounts,
			history:  records,
			checks:   map[string]httpserver.Check{"mongodb": mongo.Healthcheck(db.Client())},
			close:    disconnect,
		}, nil

	default:
		log.WarnContext(ctx, "using in-memory storage; accounts are lost on restart")
		return &stores{
			accounts: auth.NewMemoryStorage(),
			history:  history.NewMemoryStorage(),
			checks:   map[string]httpserver.Check{},
			close:    func() {},
		}, nil
	}
}

func newSender(cfg Config) (email.EmailSender, error) {
	if cfg.EmailDriver == EmailPostmark {
		return email.NewPostmarkClient(cfg.Email)
	}
	return email.NewDevSender(cfg.EmailDevDir), nil
}

// newReplayGuard uses Redis when REDIS_URL is set so consumed links are
// shared across instances, and the in-process guard otherwise.
func newReplayGuard(ctx context.Context, cfg Config, log *slog.Logger, checks map[string]httpserver.Check) (auth.ReplayGuard, func(), error) {
	if cfg.Redis.ConnectionURL == "" {
		log.WarnContext(ctx, "REDIS_URL not set; consumed links are tracked per instance")
		return auth.NewMemoryReplayGuard(), func() {}, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("replay guard: %w", err)
	}
	checks["redis"] = redis.Healthcheck(client)

	closeClient := func() {
		if err := client.Close(); err != nil {
			log.Error("failed to close redis client", logger.Error(err))
		}
	}
	return redis.NewReplayGuard(client, redis.WithKeyPrefix(cfg.Redis.KeyPrefix)), closeClient, nil
}
