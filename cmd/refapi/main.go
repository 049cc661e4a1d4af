// Command refapi runs the reference Users/Posts/Comments API locally, for trying out the
// contract tests without a remote service.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/crudcheck/rest-contract-tests/refapi"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	token := flag.String("token", os.Getenv("TOKEN"), "bearer token that requests must carry (default $TOKEN)")
	dsn := flag.String("dsn", "", "database DSN: empty for in-memory SQLite, a postgres:// URL, or a SQLite file")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	if lvl, err := logrus.ParseLevel(*level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.Warnf("Invalid log level '%s', defaulting to 'info'", *level)
	}

	if *token == "" {
		log.Warn("No token configured; requests will not be authenticated")
	}

	server, err := refapi.NewServer(refapi.Options{Token: *token, DSN: *dsn, Logger: log})
	if err != nil {
		log.WithError(err).Fatal("Failed to start reference API")
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		if err := server.Shutdown(); err != nil {
			log.WithError(err).Error("Shutdown failed")
		}
	}()

	addr := fmt.Sprintf(":%d", *port)
	log.Infof("Listening on %s", addr)
	if err := server.Listen(addr); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
