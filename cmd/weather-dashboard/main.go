package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"weather-dashboard/config"
	v1 "weather-dashboard/internal/controllers/http/v1"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/presentation"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/scheduler"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/httpserver"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/observe"
)

// @title Weather Dashboard API
// @version 1.0.0
// @description Current conditions and a 5 day forecast aggregated into hourly and daily views, backed by OpenWeatherMap.

// @contact.name Weather Dashboard Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Current conditions and aggregated forecast
// @tag.name Manage
// @tag.description Operational endpoints
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		hook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.Sentry.Debug, cnf.Sentry.DSN)
		writers = append(writers, hook)
	}

	l := logger.NewZapLoggerWithOptions(cnf.App.Name, logger.Options{
		AppEnv: cnf.App.Env,
		Level:  cnf.Log.Level,
		Format: cnf.Log.Format,
	}, writers...)

	loc, err := cnf.Location()
	if err != nil {
		l.Fatal("cannot resolve timezone", map[string]any{"timezone": cnf.Weather.Timezone, "err": err.Error()})
	}

	units, err := models.ParseUnits(cnf.Weather.Units)
	if err != nil {
		l.Fatal("cannot parse units", map[string]any{"err": err.Error()})
	}

	repo, err := repositories.InitWeatherRepository(cnf, l)
	if err != nil {
		l.Fatal("cannot init weather repository", map[string]any{"err": err.Error()})
	}

	service := weather.NewDashboardService(repo, l)

	presenter, err := presentation.NewLocalizedPresenter(cnf.Weather.Locale, cnf.Weather.IconURLTemplate)
	if err != nil {
		l.Fatal("cannot init presenter", map[string]any{"err": err.Error()})
	}

	probe, err := scheduler.NewProbe(service, cnf.Probe.City, units, cnf.Weather.Lang, cnf.Probe.Schedule, l)
	if err != nil {
		l.Fatal("cannot init provider probe", map[string]any{"err": err.Error()})
	}

	read, write, idle := cnf.Server.Timeouts()
	app := httpserver.InitFiberServer(cnf.App.Name, httpserver.Options{
		ReadTimeout:  read,
		WriteTimeout: write,
		IdleTimeout:  idle,
		AccessLog:    os.Stdout,
		Ready: func() bool {
			return service.BreakerState() != "open"
		},
	})

	v1.NewRouter(
		app,
		service,
		presenter,
		probe,
		v1.Defaults{
			Units:    units,
			Lang:     cnf.Weather.Lang,
			Location: loc,
		},
		l,
	)

	probe.Start()

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":     cnf.Server.Port,
		"provider": repo.Name(),
		"timezone": loc.String(),
		"version":  cnf.App.Version,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		probe.Stop(shutdownCtx)
		_ = app.ShutdownWithContext(shutdownCtx)
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
