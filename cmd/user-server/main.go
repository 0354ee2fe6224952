package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"
	"uk.co.dudmesh.usermanager/internal/boot"
	"uk.co.dudmesh.usermanager/internal/handlers"
	"uk.co.dudmesh.usermanager/internal/service/auth"
	"uk.co.dudmesh.usermanager/internal/service/user"
	"uk.co.dudmesh.usermanager/internal/session"
	"uk.co.dudmesh.usermanager/internal/store"
	"uk.co.dudmesh.usermanager/internal/upload"
)

func main() {
	config, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	userStore, err := store.New(config)
	if err != nil {
		log.Fatalf("opening user store: %+v", err)
	}
	defer userStore.Close()

	uploader, err := upload.New(config)
	if err != nil {
		log.Fatalf("creating uploader: %+v", err)
	}

	sessionStore := session.NewMemoryStore()
	ctx, stopSessions := context.WithCancel(context.Background())
	defer stopSessions()
	go sessionStore.Run(ctx, time.Minute)

	server := echo.New()
	server.Use(middleware.BodyLimit(config.Server.BodyLimit))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("usermanager"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	server.Static("/static", config.StaticDir)
	server.Static(upload.PublicPrefix, uploader.Dir())

	t, err := NewTemplate(config.ViewsDir)
	if err != nil {
		log.Fatalf("templates: %+v", err)
	}
	defer t.Close()
	if config.IsDevelopment() {
		if err := t.Watch(); err != nil {
			log.Fatalf("watcher: %+v", err)
		}
	}
	server.Renderer = t

	handlers.Mount(server, &handlers.Services{
		Auth:     auth.New(config, userStore),
		Users:    user.New(userStore),
		Uploader: uploader,
		Store:    userStore,
		Sessions: handlers.NewSessions(sessionStore, session.NewCodec(config.SessionSecret(), config.Session.TTL, config.IsProduction())),
	})

	go func() {
		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":" + config.Server.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(":" + config.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		server.Logger.Fatal(err)
	}
}
