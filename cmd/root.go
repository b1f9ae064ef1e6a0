package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/parley/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "German workplace conversation practice",
	Long:  "Parley: practise answering everyday German workplace questions and get instant tutor feedback.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; real env vars still apply.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command; SIGINT and SIGTERM cancel its context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", `Path to SQLite audit database, or "default" for the per-user data dir (overrides PARLEY_DB; in-memory when unset)`)
	rootCmd.PersistentFlags().String("lang", "", "Initial display language: de or en (overrides PARLEY_LANG)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(telegramCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// defaultDBKeyword selects store.DefaultDBPath for --db or PARLEY_DB.
const defaultDBKeyword = "default"

// resolveDBPath returns the --db flag, then PARLEY_DB, then the in-memory DSN.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = store.DBPathFromEnv()
	}
	switch p {
	case "":
		return store.MemoryDSN, nil
	case defaultDBKeyword:
		var err error
		if p, err = store.DefaultDBPath(); err != nil {
			return "", err
		}
	}
	return p, store.EnsureDir(p)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
