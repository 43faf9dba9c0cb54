package main

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var prettyLogs bool

var rootCmd = &cobra.Command{
	Use:   "openapi-gen",
	Short: "Generate OpenAPI documents from an execution server's discovery description",
}

func newLogger() zerolog.Logger {
	var output io.Writer = os.Stdout
	if prettyLogs {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty", false, "Use pretty console logging instead of structured JSON")

	// Flags can also be supplied as OPENAPI_GEN_* environment variables.
	viper.SetEnvPrefix("OPENAPI_GEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		logger.Fatal().Err(err).Msg("Command failed")
	}
}
