package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zulandar/motorpool/internal/bot"
	"github.com/zulandar/motorpool/internal/dashboard"
	"github.com/zulandar/motorpool/internal/oracle"
	"github.com/zulandar/motorpool/internal/store"
)

func newStartCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the dispatch bot",
		Long:  "Connects to the Discord Gateway, watches for dispatch messages, and serves the optional web dashboard.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Motorpool config file")
	return cmd
}

func runStart(cmd *cobra.Command, configPath string) error {
	cfg, gdb, err := openStore(configPath)
	if err != nil {
		return err
	}
	st := store.New(gdb)

	var validator oracle.Validator
	if cfg.Oracle.Enabled {
		validator = oracle.NewClient(cfg.Oracle)
	}

	b, err := bot.New(bot.Opts{
		Store:  st,
		Config: cfg,
		Oracle: validator,
		Out:    cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Dashboard.Enabled {
		go func() {
			err := dashboard.Start(ctx, dashboard.StartOpts{
				Store: st,
				Port:  cfg.Dashboard.Port,
				Out:   cmd.OutOrStdout(),
			})
			if err != nil {
				cmd.PrintErrf("dashboard stopped: %v\n", err)
			}
		}()
	}

	return b.Run(ctx)
}
