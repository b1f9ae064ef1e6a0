package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/parley/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Practise in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func runPlay(cmd *cobra.Command) error {
	// Logs would draw over the alt screen, so they go to a file or nowhere.
	d, err := newDeps(cmd, envOr("PARLEY_LOG_FILE", "-"))
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(cmd.Context(), app.Options{Controller: d.newController()})
}
