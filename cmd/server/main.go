package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"agrotrade/internal/config"
	"agrotrade/internal/delivery/http/route"
	csvrepo "agrotrade/internal/repository/csv"
	"agrotrade/internal/repository/memory"
	"agrotrade/internal/repository/userdir"
)

// @title        AgroTrade Negotiation API
// @version      1.0
// @description  Two-sided commodity trading: producers publish offers, buyers counter, accept or reject.
// @BasePath     /api
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	store, err := csvrepo.NewStore(cfg.Storage.DataDir)
	if err != nil {
		log.WithError(err).Fatal("open data dir")
	}

	offers, err := store.LoadOffers()
	if err != nil {
		log.WithError(err).Fatal("load offers")
	}
	history, err := store.LoadHistory()
	if err != nil {
		log.WithError(err).Fatal("load history")
	}
	notifications, err := store.LoadNotifications()
	if err != nil {
		log.WithError(err).Fatal("load notifications")
	}

	records, err := memory.NewRecordStore(offers)
	if err != nil {
		log.WithError(err).Fatal("build record store")
	}

	stores := route.Stores{
		Records:       records,
		History:       memory.NewHistoryLog(history),
		Notifications: memory.NewNotificationLog(notifications),
		Visibility:    memory.NewVisibilityFilter(),
	}
	users := userdir.NewStaticDirectory(cfg.DirectoryUsers())

	log.WithFields(logrus.Fields{
		"offers":        len(offers),
		"history":       len(history),
		"notifications": len(notifications),
		"users":         len(cfg.Users),
	}).Info("state loaded")

	app := gin.Default()
	route.SetupRoute(app, cfg, stores, users, store)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: app,
	}

	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
