package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/parley/internal/server"
	"github.com/abhisek/parley/internal/telegram"
)

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Run the Telegram practice bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd, "")
		if err != nil {
			return err
		}
		defer d.Close()

		cfg := server.ConfigFromEnv()
		bot, err := telegram.Connect(cmd.Context(), telegram.TelegramConnectProps{
			Logger:      d.log,
			Token:       os.Getenv("PARLEY_TELEGRAM_TOKEN"),
			Debug:       os.Getenv("PARLEY_TELEGRAM_DEBUG") == "true",
			Catalog:     d.catalog,
			Sessions:    d.registry(),
			MaxInflight: cfg.MaxInflight,
			SessionTTL:  cfg.SessionTTL,
		})
		if err != nil {
			return err
		}

		bot.Listen(cmd.Context())
		return nil
	},
}
