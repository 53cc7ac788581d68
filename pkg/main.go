package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	pkg "github.com/campus-connect/campusctl/pkg/internal"
	"github.com/campus-connect/campusctl/pkg/internal/cmd"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func main() {
	// Configure settings
	viper.AddConfigPath(".")
	if configDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(configDir + "/campusctl")
	}
	viper.SetConfigName("campusctl")
	viper.SetConfigType("toml")
	viper.SetDefault("server", "http://localhost:8000")

	// Load settings; running without a config file is fine
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal().Err(err).Msg("An error occurred when loading settings.")
		}
	}

	log.Debug().Msgf("Campusctl v%s is started...", pkg.AppVersion)

	cmd.Execute()
}
