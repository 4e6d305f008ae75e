package bot

import (
	"context"
	"fmt"

	"github.com/zulandar/motorpool/internal/dispatch"
	"github.com/zulandar/motorpool/internal/models"
	"github.com/zulandar/motorpool/internal/store"
)

// processDispatch runs the full pipeline on one message: cancellation
// handling, parsing, advisory task-name validation, and reconciliation.
// It reports whether the message changed the store and any advisory
// strings to surface to the poster.
func (b *Bot) processDispatch(ctx context.Context, content, messageID, channelID string) (bool, []string, error) {
	if !dispatch.IsDispatchMessage(content) {
		return false, nil, nil
	}

	cancelled := false
	if notice := dispatch.ExtractCancellation(content); notice != nil {
		date := notice.Date.Format(models.DateLayout)
		deleted, err := b.store.DeleteByDate(date, notice.TaskName)
		if err != nil {
			return false, nil, err
		}
		cancelled = true
		fmt.Fprintf(b.out, "bot: cancelled dispatch for %s (task %q): deleted %d records\n",
			date, notice.TaskName, deleted)
	}

	parsedList := dispatch.Parse(content)
	if parsedList == nil {
		// A pure cancellation message still counts as handled.
		return cancelled, nil, nil
	}

	var advisories []string
	written := 0
	for _, parsed := range parsedList {
		for _, vehicle := range parsed.Vehicles {
			advisories = append(advisories, b.validateTaskName(ctx, vehicle.TaskName, parsed.Commander, parsed.Driver)...)

			rec := models.DispatchRecord{
				DispatchDate:  parsed.Date.Format(models.DateLayout),
				DayOfWeek:     parsed.DayOfWeek,
				VehicleID:     vehicle.VehicleID,
				VehicleStatus: vehicle.Status,
				VehiclePlate:  vehicle.VehiclePlate,
				TaskName:      vehicle.TaskName,
				Commander:     parsed.Commander,
				Driver:        parsed.Driver,
				MessageID:     messageID,
				ChannelID:     channelID,
			}
			id, action, err := b.store.Upsert(&rec)
			if err != nil {
				return false, nil, err
			}
			fmt.Fprintf(b.out, "bot: %s dispatch %d: %s %s (plate %q, task %q)\n",
				action, id, rec.DispatchDate, rec.VehicleID, rec.VehiclePlate, rec.TaskName)
			if action != store.ActionSkipped {
				written++
			}
		}
	}

	return written > 0 || cancelled, advisories, nil
}

// validateTaskName runs the advisory oracle check. It only fires when task
// name, commander and driver are all present, and its outcome never
// changes what gets persisted — a failed or unavailable check merely adds
// an advisory for the poster.
func (b *Bot) validateTaskName(ctx context.Context, taskName, commander, driver string) []string {
	if b.oracle == nil || taskName == "" || commander == "" || driver == "" {
		return nil
	}
	valid, err := b.oracle.Validate(ctx, taskName)
	if err != nil {
		fmt.Fprintf(b.out, "bot: task validation unavailable for %q: %v\n", taskName, err)
		return []string{fmt.Sprintf("⚠️ AI 驗證不可用，任務名稱: %s", taskName)}
	}
	if !valid {
		fmt.Fprintf(b.out, "bot: task name %q failed validation, keeping it\n", taskName)
		return []string{fmt.Sprintf("⚠️ 任務驗證失敗: %s", taskName)}
	}
	return nil
}
