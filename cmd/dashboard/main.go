package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MTN-Developers/mtn-academy-dashboard/authapi"
	"github.com/MTN-Developers/mtn-academy-dashboard/dashboard"
	"github.com/MTN-Developers/mtn-academy-dashboard/gateway"
	"github.com/MTN-Developers/mtn-academy-dashboard/internal/config"
	"github.com/MTN-Developers/mtn-academy-dashboard/server"
	"github.com/MTN-Developers/mtn-academy-dashboard/session"
	"github.com/MTN-Developers/mtn-academy-dashboard/tokenstore"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running dashboard")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Dashboard stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	initLogging(c)
	displayAppname(c.GetAppName())

	store := tokenstore.NewFileStore(c.GetTokenFile())
	api := authapi.New(c.GetAPIBaseURL(), nil)

	transport, err := gateway.NewTransport(store, api, c.GetRefreshTimeout())
	if err != nil {
		return fmt.Errorf("gateway.NewTransport: %w", err)
	}
	apiClient := &http.Client{Transport: transport, Timeout: 30 * time.Second}
	api.SetSessionClient(apiClient)

	sessions, err := session.NewManager(store, api, c)
	if err != nil {
		return fmt.Errorf("session.NewManager: %w", err)
	}
	transport.OnSessionExpired(sessions.HandleSessionExpired)

	collection, err := dashboard.NewCollection(c.GetAPIBaseURL(), apiClient)
	if err != nil {
		return fmt.Errorf("dashboard.NewCollection: %w", err)
	}

	// Silent login from the stored refresh token; an unauthenticated start
	// is not an error.
	if err := sessions.Bootstrap(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Bootstrap did not restore a session")
	}

	handler, err := server.New(sessions, collection)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("Dashboard listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func initLogging(c config.EnvConfig) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
