package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zulandar/motorpool/internal/models"
	"github.com/zulandar/motorpool/internal/store"
)

func newAddCmd() *cobra.Command {
	var (
		configPath string
		date       string
		vehicleID  string
		plate      string
		task       string
		status     string
		commander  string
		driver     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Manually add one dispatch record",
		Long:  "Inserts a record directly, skipped when the exact (date, vehicle) pair already exists. Use the bot's message parsing for merge semantics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := time.Parse(models.DateLayout, date); err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			if vehicleID == "" {
				vehicleID = plate
			}
			if vehicleID == "" {
				vehicleID = task
			}
			if vehicleID == "" {
				return fmt.Errorf("one of --vehicle, --plate or --task is required")
			}

			_, gdb, err := openStore(configPath)
			if err != nil {
				return err
			}
			st := store.New(gdb)

			exists, err := st.CheckDuplicate(date, vehicleID)
			if err != nil {
				return err
			}
			if exists {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped: %s %s already exists\n", date, vehicleID)
				return nil
			}

			id, err := st.Add(&models.DispatchRecord{
				DispatchDate:  date,
				VehicleID:     vehicleID,
				VehiclePlate:  plate,
				VehicleStatus: status,
				TaskName:      task,
				Commander:     commander,
				Driver:        driver,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added dispatch %d: %s %s\n", id, date, vehicleID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Motorpool config file")
	cmd.Flags().StringVar(&date, "date", "", "dispatch date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "vehicle ID (defaults to plate or task)")
	cmd.Flags().StringVar(&plate, "plate", "", "vehicle plate, e.g. 軍K-20539")
	cmd.Flags().StringVar(&task, "task", "", "task name")
	cmd.Flags().StringVar(&status, "status", "", "vehicle status, e.g. 待搶用車")
	cmd.Flags().StringVar(&commander, "commander", "", "commander (車長)")
	cmd.Flags().StringVar(&driver, "driver", "", "driver (駕駛)")
	cmd.MarkFlagRequired("date")
	return cmd
}
