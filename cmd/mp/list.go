package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zulandar/motorpool/internal/dispatch"
	"github.com/zulandar/motorpool/internal/models"
	"github.com/zulandar/motorpool/internal/store"
)

func newListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the active dispatch roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openStore(configPath)
			if err != nil {
				return err
			}
			recs, err := store.New(gdb).Active(time.Now().Format(models.DateLayout))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dispatch.FormatList(recs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Motorpool config file")
	return cmd
}
