package main

import (
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arhyth/bankline"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg bankline.Config
	cfp := flag.String("config", "config.yml", "path to configuration file")
	flag.Parse()
	cfgfl, err := os.Open(*cfp)
	if err != nil {
		logger.Fatal().Err(err).Msg("error opening config file")
	}
	if err = yaml.NewDecoder(cfgfl).Decode(&cfg); err != nil {
		logger.Fatal().Err(err).Msg("error decoding config file")
	}
	cfgfl.Close()

	pgendpt, err := bankline.NewPostgresEndpoint(cfg.Database.ConnectionString, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error starting database")
	}
	defer pgendpt.Close()

	perOp := cfg.Limits.InFlightPerOp
	if perOp <= 0 {
		perOp = 64
	}
	acquireTimeout := time.Duration(cfg.Limits.AcquireTimeoutMS) * time.Millisecond
	if acquireTimeout <= 0 {
		acquireTimeout = 500 * time.Millisecond
	}
	limits := &bankline.ServiceLimits{
		Consult:     semaphore.NewWeighted(perOp),
		NewCustomer: semaphore.NewWeighted(perOp),
		Withdrawal:  semaphore.NewWeighted(perOp),
		Delete:      semaphore.NewWeighted(perOp),
	}
	brkrs := bankline.NewServiceBreaker(gobreaker.Settings{})

	var svc bankline.Service = bankline.NewService(pgendpt, &logger)
	for _, mw := range []bankline.Middleware{
		bankline.NewLimitMiddleware(limits, acquireTimeout),
		bankline.NewBreakerMiddleware(brkrs),
	} {
		svc = mw(svc)
	}

	disp := bankline.NewDispatcher(svc, bankline.NewJSONCodec(), &logger)
	srv, err := bankline.NewServer(disp, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error starting server")
	}

	adminAddr := cfg.Server.AdminAddr
	if adminAddr == "" {
		adminAddr = ":9090"
	}
	admin := &http.Server{
		Addr:    adminAddr,
		Handler: bankline.NewAdminHandler(pgendpt.Pool(), &logger),
	}
	go func() {
		if err := admin.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin server stopped")
		}
	}()

	listenAddr := cfg.Server.ListenAddr
	if listenAddr == "" {
		listenAddr = ":3000"
	}
	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		logger.Fatal().Err(err).Msg("error listening")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info().Msg("shutting down")
		srv.Close()
		admin.Close()
	}()

	logger.Info().Str("addr", listenAddr).Msg("listening")
	if err := srv.Serve(lis); err != nil {
		logger.Fatal().Err(err).Msg("serve failed")
	}
}
