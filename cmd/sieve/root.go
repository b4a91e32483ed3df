package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sievekit/sieve/internal/cli"
	"github.com/sievekit/sieve/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "sieve",
	Short: "Sieve validates structured documents against declarative schemas",
	Long: `Sieve compiles declarative schemas (YAML or JSON rule mappings) and
evaluates documents against them, collecting every violation into a
structured per-field report.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for schema storage (empty = in-memory)")
	rootCmd.PersistentFlags().String("redis-password", "", "Redis password")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	jsonOut, _ := cmd.Flags().GetBool("log-json")
	return logging.New(cli.ParseLevel(level), jsonOut)
}

func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	addr, _ := cmd.Flags().GetString("redis")
	password, _ := cmd.Flags().GetString("redis-password")
	db, _ := cmd.Flags().GetInt("redis-db")
	return cli.StoreOptions{
		RedisAddr:     addr,
		RedisPassword: password,
		RedisDB:       db,
	}
}
