package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/itristenx/nova-notify/httpapi"
	"github.com/itristenx/nova-notify/pkg/channels"
	"github.com/itristenx/nova-notify/pkg/config"
	"github.com/itristenx/nova-notify/pkg/deliveries"
	"github.com/itristenx/nova-notify/pkg/engine"
	"github.com/itristenx/nova-notify/pkg/identity"
	"github.com/itristenx/nova-notify/pkg/mailer"
	"github.com/itristenx/nova-notify/pkg/prefs"
	"github.com/itristenx/nova-notify/pkg/recipients"
)

type daemonConfig struct {
	Addr          string `env:"NOTIFY_ADDR" envDefault:":8080"`
	LogFormat     string `env:"NOTIFY_LOG_FORMAT" envDefault:"json"`
	DirectoryFile string `env:"NOTIFY_DIRECTORY_FILE"`
	PGConnURL     string `env:"NOTIFY_PG_CONN_URL"`
	RedisURL      string `env:"NOTIFY_REDIS_URL"`
	WebhookURL    string `env:"NOTIFY_WEBHOOK_URL"`
	WebhookSecret string `env:"NOTIFY_WEBHOOK_SECRET"`
	MailDir       string `env:"NOTIFY_MAIL_DIR" envDefault:"./outbox"`
	PostmarkToken string `env:"POSTMARK_SERVER_TOKEN"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("notifyd exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	cfg, err := config.Load[daemonConfig]()
	if err != nil {
		return err
	}
	engCfg, err := config.Load[engine.Config]()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Identity directory: YAML fixture when provisioned, empty otherwise.
	var dir *identity.MemoryDirectory
	if cfg.DirectoryFile != "" {
		dir, err = identity.LoadDirectory(cfg.DirectoryFile)
		if err != nil {
			return err
		}
		logger.Info("loaded identity directory", slog.String("file", cfg.DirectoryFile))
	} else {
		dir = identity.NewMemoryDirectory()
	}

	var roleSource identity.RoleSource = dir
	if engCfg.RoleCacheTTL > 0 {
		roleSource = recipients.NewCachedRoleSource(dir, engCfg.RoleCacheTTL)
	}

	// Delivery storage: Postgres when configured, in-memory otherwise.
	var storage deliveries.Storage = deliveries.NewMemoryStorage()
	if cfg.PGConnURL != "" {
		pgCfg, err := config.Load[deliveries.PGConfig]()
		if err != nil {
			return err
		}
		pool, err := deliveries.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := deliveries.Migrate(ctx, pool); err != nil {
			return err
		}
		storage = deliveries.NewPostgresStorage(pool)
		logger.Info("using postgres delivery storage")
	}

	// Preference store: Redis when configured, in-memory otherwise.
	var prefStore prefs.Store = prefs.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		client := redis.NewClient(redisOpts)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		prefStore = prefs.NewRedisStore(client)
		logger.Info("using redis preference store")
	}

	// Mail: Postmark when a token is present, file outbox otherwise.
	var mail mailer.Sender
	if cfg.PostmarkToken != "" {
		mailCfg, err := config.Load[mailer.Config]()
		if err != nil {
			return err
		}
		mail, err = mailer.NewPostmarkSender(mailCfg)
		if err != nil {
			return err
		}
		logger.Info("using postmark mail sender")
	} else {
		mail = mailer.NewFileSender(cfg.MailDir)
		logger.Info("using file mail sender", slog.String("dir", cfg.MailDir))
	}

	registry := channels.NewMemoryRegistry(engCfg.SessionBufferSize)
	senders := []channels.Sender{
		channels.NewInAppSender(registry),
		channels.NewEmailSender(dir, mail),
		channels.NewStubSender(channels.ChannelPush),
		channels.NewStubSender(channels.ChannelSlack),
		channels.NewStubSender(channels.ChannelTeams),
	}
	if cfg.WebhookURL != "" {
		senders = append(senders, channels.NewWebhookSender(cfg.WebhookURL, cfg.WebhookSecret))
	} else {
		senders = append(senders, channels.NewStubSender(channels.ChannelWebhook))
	}

	eng := engine.New(
		storage,
		recipients.NewResolver(roleSource),
		prefs.NewEngine(prefStore),
		channels.NewDispatcher(senders, channels.WithDispatcherLogger(logger)),
		engine.WithLogger(logger),
		engine.WithMaxConcurrentSends(engCfg.MaxConcurrentSends),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.New(eng, httpapi.WithLogger(logger)).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("notifyd listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func newLogger(format string) *slog.Logger {
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stdout, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	return slog.New(handler)
}
