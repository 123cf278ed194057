package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alumnet/alumni-network/internal/pkg/config"
	"github.com/alumnet/alumni-network/pkg/logger"
)

const programName = "alumnet"

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Alumni network API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(createAdminCommand())
	rootCmd.AddCommand(versionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}

// bootstrap loads .env (if any) and the environment config, then builds the
// process logger.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, zerolog.Nop(), fmt.Errorf("read .env: %w", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: programName,
	})

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, v ...any) {
		log.Debug().Msgf(format, v...)
	})); err != nil {
		log.Warn().Err(err).Msg("could not set GOMAXPROCS")
	}

	return cfg, log, nil
}
