package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sourcegraph/conc"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"feed_player/internal/config"
	"feed_player/internal/keys"
	"feed_player/internal/player"
	"feed_player/internal/publisher"
	"feed_player/internal/scheduler"
	"feed_player/internal/server"
	"feed_player/internal/service"
	"feed_player/internal/source/reddit"
	"feed_player/internal/storage/filestore"
	"feed_player/internal/storage/s3store"
	"feed_player/internal/storage/sqlstore"
	"feed_player/internal/tui"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	feedFlag := flag.String("feed", "", "initial subreddit (overrides feed.default)")
	useTUI := flag.Bool("tui", false, "run the terminal UI")
	flag.Parse()

	logger := setupLogger("info", config.LogConfig{}, true)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// the terminal UI owns stdout
	logger = setupLogger(cfg.LogLevel, cfg.Log, !*useTUI)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open watch store", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	notices := tui.NewNoticeBoard()
	notifiers := service.Notifiers{notices}

	var sink player.CommandSink = player.NewLogSink(logger)
	var bus *publisher.RabbitMQ
	if cfg.RabbitMQ.Enabled {
		bus, err = publisher.NewRabbitMQ(publisher.Config{
			URL:               cfg.RabbitMQ.URL,
			Exchange:          cfg.RabbitMQ.Exchange,
			CommandRoutingKey: cfg.RabbitMQ.CommandRoutingKey,
			NoticeRoutingKey:  cfg.RabbitMQ.NoticeRoutingKey,
			EventRoutingKey:   cfg.RabbitMQ.EventRoutingKey,
			EventQueue:        cfg.RabbitMQ.EventQueue,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer bus.Close()

		sink = bus
		notifiers = append(notifiers, bus)
	}

	redditSource := reddit.New(reddit.Config{
		BaseURL:        cfg.Reddit.BaseURL,
		UserAgent:      cfg.Reddit.UserAgent,
		Limit:          cfg.Reddit.Limit,
		Timeout:        cfg.Reddit.Timeout,
		MaxAttempts:    cfg.Reddit.Retry.MaxAttempts,
		InitialBackoff: cfg.Reddit.Retry.InitialBackoff,
		MaxBackoff:     cfg.Reddit.Retry.MaxBackoff,
	}, logger)

	remote := player.NewRemote(sink, logger)
	controller := service.NewController(
		service.NewFetcher(redditSource, cfg.Feed.MaxBatches, logger),
		store,
		remote,
		notifiers,
		logger,
		cfg.Feed,
	)
	remote.SetListener(controller)
	keyHandler := keys.NewHandler(remote, controller)

	api := server.New(server.Config{
		Controller: controller,
		Player:     remote,
		Keys:       keyHandler,
		Feeds:      cfg.Feed.Subreddits,
		Logger:     logger,
	})
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
	}

	feed := cfg.Feed.Default
	if *feedFlag != "" {
		feed = *feedFlag
	}

	logger.Info("starting feed player",
		"source", redditSource.Name(),
		"feed", feed,
		"storage", cfg.Storage.Driver,
		"addr", cfg.Server.Addr,
		"bus", cfg.RabbitMQ.Enabled,
	)

	var wg conc.WaitGroup

	wg.Go(func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	})

	wg.Go(func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown error", "error", err)
		}
		api.Close()
	})

	sched := scheduler.NewScheduler(controller, cfg.Feed.AutosaveInterval, logger)
	wg.Go(func() {
		if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("autosave error", "error", err)
		}
	})

	if bus != nil {
		wg.Go(func() {
			if err := bus.ConsumeEvents(ctx, remote.Apply); err != nil {
				logger.Error("player event consumer stopped", "error", err)
			}
		})
	}

	wg.Go(func() {
		if _, err := controller.ChangeFeed(ctx, feed); err != nil && !errors.Is(err, service.ErrStaleSession) {
			logger.Error("initial feed session failed", "feed", feed, "error", err)
		}
	})

	if *useTUI {
		model := tui.NewModel(controller, keyHandler, remote, notices, cfg.Feed.Subreddits)
		if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil &&
			!errors.Is(err, tea.ErrProgramKilled) {
			logger.Error("terminal ui error", "error", err)
		}
		cancel()
	}

	wg.Wait()
	logger.Info("feed player stopped")
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.WatchStore, func(), error) {
	switch cfg.Storage.Driver {
	case "sql":
		db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to database", "driver", cfg.Database.Driver)
		return sqlstore.NewWatchRecordStore(db), func() { db.Close() }, nil
	case "s3":
		store, err := s3store.New(ctx, s3store.Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Key:       cfg.S3.Key,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "file":
		return filestore.New(afero.NewOsFs(), cfg.Storage.Path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func setupLogger(level string, logCfg config.LogConfig, console bool) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stdout)
	}
	if logCfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(logCfg.File), 0o755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   logCfg.File,
				MaxSize:    logCfg.MaxSize,
				MaxBackups: logCfg.MaxBackups,
				MaxAge:     logCfg.MaxAge,
				Compress:   logCfg.Compress,
			})
		}
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(out, opts)
	return slog.New(handler)
}
