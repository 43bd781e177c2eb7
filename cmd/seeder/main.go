package main

import (
	"flag"
	"os"

	"github.com/arhyth/bankline"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
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

	lh, err := bankline.NewLocalHelper(&cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("error starting local helper")
	}
	if _, err = lh.InitDB(); err != nil {
		logger.Fatal().Err(err).Msg("error initializing database")
	}
	seed := []bankline.SeedAccount{
		{AccountID: 1, Balance: decimal.NewFromInt(1000)},
		{AccountID: 2, Balance: decimal.NewFromInt(250)},
		{AccountID: 3, Balance: decimal.Zero},
	}
	if err = lh.SeedAccounts(seed); err != nil {
		logger.Fatal().Err(err).Msg("error seeding accounts")
	}
	logger.Info().Int("accounts", len(seed)).Msg("database ready")
}
