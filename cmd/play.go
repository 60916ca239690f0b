package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/venusquiz/internal/app"
	"github.com/abhisek/venusquiz/internal/screen"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take the quiz in the terminal (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay builds a session and launches the TUI over it.
func runPlay(cmd *cobra.Command) error {
	d, err := loadDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	ctrl := d.newSession()
	defer ctrl.Close()

	env := screen.Env{
		Session: ctrl,
		Brand:   d.profile.Brand,
		Copy:    d.profile.UI,
		Labels:  d.profile.Labels,
		History: d.repo(),
	}
	return app.Run(env, ctrl.Changes())
}
