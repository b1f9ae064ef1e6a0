package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/parley/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve practice sessions over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd, "")
		if err != nil {
			return err
		}
		defer d.Close()

		cfg := server.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		s := server.New(server.ServerConnectProps{
			Config:   cfg,
			Catalog:  d.catalog,
			Sessions: d.registry(),
			Logger:   d.log,
		})
		return s.ListenAndServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides PARLEY_ADDR, default :8080)")
}
