package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zulandar/motorpool/internal/models"
	"github.com/zulandar/motorpool/internal/store"
)

func newClearCmd() *cobra.Command {
	var (
		configPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete expired dispatch records",
		Long:  "Removes records whose date has passed. With --all, removes every record.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openStore(configPath)
			if err != nil {
				return err
			}
			st := store.New(gdb)

			var deleted int64
			if all {
				deleted, err = st.ClearAll()
			} else {
				deleted, err = st.DeleteExpired(time.Now().Format(models.DateLayout))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d dispatch records\n", deleted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Motorpool config file")
	cmd.Flags().BoolVar(&all, "all", false, "delete every record, not just expired ones")
	return cmd
}
