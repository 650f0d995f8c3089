// The server binary serves the electricity tariff query tool over MCP
// stdio. Database coordinates come from the environment (optionally via
// a .env file); logs go to stderr or a file, never stdout.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tariffmcp/config"
	"tariffmcp/db"
	"tariffmcp/logger"
	"tariffmcp/mcpserver"
	"tariffmcp/tariff"
)

var rootCmd = &cobra.Command{
	Use:          "tariffmcp",
	Short:        "MCP stdio server exposing regional electricity tariff queries",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().String("log-output", "", "log destination: stderr, or a file path")
	rootCmd.Flags().String("env-file", "", "path to a .env file with database settings")

	for _, flag := range []string{"log-level", "log-output", "env-file"} {
		if err := viper.BindPFlag(flag, rootCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	if envFile := viper.GetString("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	} else {
		// A local .env is optional.
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if lvl := viper.GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if out := viper.GetString("log-output"); out != "" {
		cfg.Log.Output = out
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer log.Close()

	pool, err := db.New(db.Config{
		DSN:            cfg.DB.DSN(),
		MaxConns:       cfg.DB.MaxConns,
		MaxIdleConns:   cfg.DB.MaxIdleConns,
		ConnLifetime:   cfg.DB.ConnLifetime,
		AcquireTimeout: cfg.DB.AcquireTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("initialize connection pool: %w", err)
	}
	defer func() {
		log.Info("closing connection pool", logger.Int("open_conns", pool.Stats().OpenConnections))
		if err := pool.Close(); err != nil {
			log.Error("pool close failed", err)
		}
	}()

	log.Info("starting electricity price MCP server",
		logger.String("db_host", cfg.DB.Host),
		logger.Int("db_port", cfg.DB.Port),
		logger.String("db_name", cfg.DB.Database))

	store := tariff.NewStore(pool, log)
	srv := mcpserver.New(store, log)

	if err := srv.ServeStdio(); err != nil {
		log.Error("stdio server error", err)
		return err
	}

	log.Info("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
