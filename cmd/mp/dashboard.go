package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zulandar/motorpool/internal/dashboard"
	"github.com/zulandar/motorpool/internal/store"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the web dashboard without the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gdb, err := openStore(configPath)
			if err != nil {
				return err
			}
			if port == 0 {
				port = cfg.Dashboard.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return dashboard.Start(ctx, dashboard.StartOpts{
				Store: store.New(gdb),
				Port:  port,
				Out:   cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Motorpool config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (defaults to config)")
	return cmd
}
