package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kdudkov/geoconv/internal/config"
	"github.com/kdudkov/geoconv/pkg/coord"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

const shutdownTimeout = time.Second * 5

type App struct {
	cfg    *config.AppConfig
	logger *slog.Logger

	defaultFrom coord.Datum
	defaultTo   coord.Datum
	maxPoints   int
}

func NewApp(cfg *config.AppConfig) (*App, error) {
	from, to, err := cfg.DefaultDatums()
	if err != nil {
		return nil, fmt.Errorf("bad default datum: %w", err)
	}

	return &App{
		cfg:         cfg,
		logger:      slog.Default().With("logger", "app"),
		defaultFrom: from,
		defaultTo:   to,
		maxPoints:   cfg.MaxPoints(),
	}, nil
}

func getVersion() string {
	return fmt.Sprintf("%s:%s", gitBranch, gitRevision)
}

func main() {
	fmt.Printf("version %s\n", getVersion())

	conf := flag.String("config", "geoconv.yml", "name of config file")
	debug := flag.Bool("debug", false, "debug")
	flag.Parse()

	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	cfg := config.NewAppConfig()
	if *debug {
		cfg.Set("debug", true)
	}

	if cfg.Load(*conf) {
		cfg.Watch(func(c *config.AppConfig) {
			level.Set(c.LogLevel())
		})
	}

	level.Set(cfg.LogLevel())

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	srv := NewHttp(app)

	go func() {
		app.logger.Info("listening " + cfg.Addr())

		if err := srv.Listen(cfg.Addr()); err != nil {
			app.logger.Error("http server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	app.logger.Info("shutting down")

	if err := srv.ShutdownWithTimeout(shutdownTimeout); err != nil {
		app.logger.Error("shutdown error", slog.Any("error", err))
	}
}
