// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command voteguardd runs the election core's HTTP server: blind signing,
// ballot submission, tallying, and audit, all backed by a
// github.com/luxfi/database-compatible pebble database.
package main

import (
	"context"
	"flag"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/luxfi/log"

	"github.com/luxfi/voteguard/config"
	"github.com/luxfi/voteguard/internal/audit"
	"github.com/luxfi/voteguard/internal/ballotstore"
	"github.com/luxfi/voteguard/internal/blindsign"
	"github.com/luxfi/voteguard/internal/electionstore"
	"github.com/luxfi/voteguard/internal/health"
	"github.com/luxfi/voteguard/internal/httpapi"
	"github.com/luxfi/voteguard/internal/metrics"
	"github.com/luxfi/voteguard/internal/storage/pebble"
	"github.com/luxfi/voteguard/internal/submit"
	"github.com/luxfi/voteguard/internal/tally"
	"github.com/luxfi/voteguard/internal/voterstatus"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		localMode  = flag.Bool("local", false, "use single-process local development parameters")
	)
	flag.Parse()

	params := config.DefaultParams()
	if *localMode {
		params = config.LocalParams()
	}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.NewLogger("voteguardd").Fatal("failed loading config", log.Err(err))
		}
		params = loaded
	}
	if err := params.Valid(); err != nil {
		log.NewLogger("voteguardd").Fatal("invalid config", log.Err(err))
	}

	logger := log.NewLogger("voteguardd")

	var accessLog *stdlog.Logger
	if params.LogFile != "" {
		accessLog = stdlog.New(&lumberjack.Logger{
			Filename: params.LogFile,
			MaxSize:  params.LogMaxSize,
			Compress: true,
		}, "", stdlog.LstdFlags)
	}

	if err := os.MkdirAll(params.DataDir, 0o755); err != nil {
		logger.Fatal("failed creating data directory", log.Err(err))
	}

	db, err := pebble.Open(params.DataDir)
	if err != nil {
		logger.Fatal("failed opening database", log.Err(err))
	}
	defer db.Close()

	elections := electionstore.New(db)
	keys := electionstore.NewKeyStore(elections, params.RSAKeyBits)
	statuses := voterstatus.New(db)
	ballots := ballotstore.New(db)

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("failed registering metrics", log.Err(err))
	}

	checkers := health.New()
	checkers.Register("storage", health.NewStorageChecker(db))

	srv := httpapi.NewServer(httpapi.Deps{
		Elections: elections,
		Keys:      keys,
		Statuses:  statuses,
		Ballots:   ballots,
		Signer:    blindsign.New(elections, keys, statuses),
		Submitter: submit.New(elections, ballots),
		Tallier:   tally.New(elections, ballots),
		Auditor:   audit.New(ballots),
		Health:    checkers,
		Metrics:   m,
		Log:       logger,
	})

	mux := http.NewServeMux()
	srv.Routes(mux)

	var handler http.Handler = mux
	if accessLog != nil {
		handler = accessLogMiddleware(accessLog, mux)
	}

	httpServer := &http.Server{
		Addr:         params.ListenAddr,
		Handler:      handler,
		ReadTimeout:  params.ReadTimeout,
		WriteTimeout: params.WriteTimeout,
		IdleTimeout:  params.IdleTimeout,
	}

	go func() {
		logger.Info("listening", log.String("addr", params.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", log.Err(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", log.Err(err))
	}
}

// accessLogMiddleware writes one line per request to a rotating log file,
// independent of the structured application logger.
func accessLogMiddleware(accessLog *stdlog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		accessLog.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
