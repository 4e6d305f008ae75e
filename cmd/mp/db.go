package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/zulandar/motorpool/internal/config"
	"github.com/zulandar/motorpool/internal/db"
)

// defaultConfigPath is where every command looks for the config file
// unless --config overrides it.
const defaultConfigPath = "motorpool.yaml"

// openStore loads the config and returns a migrated database handle.
func openStore(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return nil, nil, err
	}
	return cfg, gdb, nil
}

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the dispatch database",
	}
	cmd.AddCommand(newDBInitCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create or migrate the dispatch tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := openStore(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database ready (%s)\n", cfg.DB.Driver)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Motorpool config file")
	return cmd
}
