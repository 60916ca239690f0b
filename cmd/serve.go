package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/venusquiz/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve quiz sessions over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = d.profile.Server.Addr
		}

		srv := server.New(server.Config{
			Addr:         addr,
			AllowOrigins: d.profile.Server.AllowOrigins,
			Labels:       d.profile.Labels,
			NewSession:   d.newSession,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stderr, "listening on %s\n", addr)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr from the profile)")
}
