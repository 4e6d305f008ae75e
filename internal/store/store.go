// Package store persists dispatch records and implements the
// reconciliation rules that decide whether an incoming record matches a
// stored one and whether to insert, update or skip.
package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/zulandar/motorpool/internal/models"
)

// plateMarker opens every military plate and ID-shaped vehicle identifier.
const plateMarker = "軍"

// Action is the outcome of an Upsert.
type Action string

const (
	ActionInserted Action = "inserted"
	ActionUpdated  Action = "updated"
	ActionSkipped  Action = "skipped"
)

// MatchKind names the identifier tier that associated an incoming record
// with a stored one.
type MatchKind string

const (
	MatchPlate    MatchKind = "vehicle_plate"
	MatchID       MatchKind = "vehicle_id"
	MatchTaskOnly MatchKind = "task_only"
	MatchNone     MatchKind = "none"
)

// Store wraps the dispatch table.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an opened gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Add inserts a new record and returns its assigned ID.
func (s *Store) Add(rec *models.DispatchRecord) (uint, error) {
	if err := s.db.Create(rec).Error; err != nil {
		return 0, fmt.Errorf("store: add dispatch %s %s: %w", rec.DispatchDate, rec.VehicleID, err)
	}
	return rec.ID, nil
}

// isVehicleID reports whether id is ID-shaped (a plate-marker identifier)
// rather than a task name or bare number.
func isVehicleID(id string) bool {
	return id != "" && strings.HasPrefix(id, plateMarker)
}

// matcher is one tier of the reconciliation cascade.
type matcher struct {
	kind    MatchKind
	applies bool
	find    func() (*models.DispatchRecord, error)
}

// FindExisting looks for a stored record matching the incoming identifiers
// on the given date. Tiers are evaluated in strict priority order:
//
//  1. plate match — date + vehicle_plate, when a plate was supplied;
//  2. id match — date + vehicle_id, when the ID is plate-marker shaped;
//  3. task-only match — date + task_name, only when the incoming record
//     carries neither a plate nor an ID-shaped identifier, and only
//     against stored records that themselves lack a plate and whose
//     vehicle_id is empty, the task name, or not ID-shaped.
//
// Returns (nil, MatchNone, nil) when nothing matches.
func (s *Store) FindExisting(date, vehicleID, vehiclePlate, taskName string) (*models.DispatchRecord, MatchKind, error) {
	hasPlate := strings.TrimSpace(vehiclePlate) != ""
	idShaped := isVehicleID(vehicleID)

	matchers := []matcher{
		{
			kind:    MatchPlate,
			applies: hasPlate,
			find: func() (*models.DispatchRecord, error) {
				return s.first("dispatch_date = ? AND vehicle_plate = ?", date, vehiclePlate)
			},
		},
		{
			kind:    MatchID,
			applies: idShaped,
			find: func() (*models.DispatchRecord, error) {
				return s.first("dispatch_date = ? AND vehicle_id = ?", date, vehicleID)
			},
		},
		{
			kind:    MatchTaskOnly,
			applies: taskName != "" && !hasPlate && !idShaped,
			find: func() (*models.DispatchRecord, error) {
				return s.first(
					"dispatch_date = ? AND task_name = ? AND (vehicle_plate IS NULL OR vehicle_plate = '') AND (vehicle_id = '' OR vehicle_id = ? OR vehicle_id NOT LIKE ?)",
					date, taskName, taskName, plateMarker+"%")
			},
		},
	}

	for _, m := range matchers {
		if !m.applies {
			continue
		}
		rec, err := m.find()
		if err != nil {
			return nil, MatchNone, err
		}
		if rec != nil {
			return rec, m.kind, nil
		}
	}
	return nil, MatchNone, nil
}

// first returns the first record matching the condition, or nil when none.
func (s *Store) first(query string, args ...interface{}) (*models.DispatchRecord, error) {
	var rec models.DispatchRecord
	err := s.db.Where(query, args...).Order("id ASC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: find dispatch: %w", err)
	}
	return &rec, nil
}

// Upsert reconciles an incoming record against the store:
//
//   - no match → insert;
//   - task-only match with commander and driver both unchanged → skip,
//     so cosmetic reposts of vehicle-less dispatches stay idempotent;
//   - any other match → overwrite all mutable fields on the matched row.
//
// Returns the record's ID and the action taken.
func (s *Store) Upsert(rec *models.DispatchRecord) (uint, Action, error) {
	existing, kind, err := s.FindExisting(rec.DispatchDate, rec.VehicleID, rec.VehiclePlate, rec.TaskName)
	if err != nil {
		return 0, "", err
	}

	if existing == nil {
		id, err := s.Add(rec)
		if err != nil {
			return 0, "", err
		}
		return id, ActionInserted, nil
	}

	personnelChanged := rec.Commander != existing.Commander || rec.Driver != existing.Driver
	if kind == MatchTaskOnly && !personnelChanged {
		return existing.ID, ActionSkipped, nil
	}

	updates := map[string]interface{}{
		"day_of_week":    rec.DayOfWeek,
		"vehicle_id":     rec.VehicleID,
		"vehicle_status": rec.VehicleStatus,
		"vehicle_plate":  rec.VehiclePlate,
		"task_name":      rec.TaskName,
		"commander":      rec.Commander,
		"driver":         rec.Driver,
		"message_id":     rec.MessageID,
		"channel_id":     rec.ChannelID,
	}
	err = s.db.Model(&models.DispatchRecord{}).Where("id = ?", existing.ID).Updates(updates).Error
	if err != nil {
		return 0, "", fmt.Errorf("store: update dispatch %d: %w", existing.ID, err)
	}
	return existing.ID, ActionUpdated, nil
}

// CheckDuplicate reports whether any record exists for the exact
// (date, vehicle_id) pair. It gates straight inserts at call sites that do
// not want Upsert's finer-grained merge.
func (s *Store) CheckDuplicate(date, vehicleID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.DispatchRecord{}).
		Where("dispatch_date = ? AND vehicle_id = ?", date, vehicleID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("store: check duplicate: %w", err)
	}
	return count > 0, nil
}

// Active returns all records on or after today, ordered by date then
// vehicle ID. ISO dates make the string comparison chronological.
func (s *Store) Active(today string) ([]models.DispatchRecord, error) {
	var recs []models.DispatchRecord
	err := s.db.Where("dispatch_date >= ?", today).
		Order("dispatch_date ASC, vehicle_id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("store: active dispatches: %w", err)
	}
	return recs, nil
}

// CountActive returns the number of records on or after today.
func (s *Store) CountActive(today string) (int64, error) {
	var count int64
	err := s.db.Model(&models.DispatchRecord{}).
		Where("dispatch_date >= ?", today).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("store: count active: %w", err)
	}
	return count, nil
}

// ByDate returns all records for one date ordered by vehicle ID.
func (s *Store) ByDate(date string) ([]models.DispatchRecord, error) {
	var recs []models.DispatchRecord
	err := s.db.Where("dispatch_date = ?", date).
		Order("vehicle_id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("store: dispatches for %s: %w", date, err)
	}
	return recs, nil
}

// DeleteExpired removes every record dated before today and returns the
// number deleted.
func (s *Store) DeleteExpired(today string) (int64, error) {
	res := s.db.Where("dispatch_date < ?", today).Delete(&models.DispatchRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("store: delete expired: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByDate removes records for a date. With a non-empty taskName only
// records whose vehicle_id or vehicle_status contains it are removed; the
// task name is typically stored in vehicle_id for task-only records.
func (s *Store) DeleteByDate(date, taskName string) (int64, error) {
	q := s.db.Where("dispatch_date = ?", date)
	if taskName != "" {
		like := "%" + taskName + "%"
		q = q.Where("vehicle_id LIKE ? OR vehicle_status LIKE ?", like, like)
	}
	res := q.Delete(&models.DispatchRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("store: delete dispatches for %s: %w", date, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes one record by ID, reporting whether it existed.
func (s *Store) Delete(id uint) (bool, error) {
	res := s.db.Delete(&models.DispatchRecord{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("store: delete dispatch %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UpdatePersonnel updates the commander and/or driver of one record. Nil
// pointers leave the corresponding field untouched.
func (s *Store) UpdatePersonnel(id uint, commander, driver *string) (bool, error) {
	updates := map[string]interface{}{}
	if commander != nil {
		updates["commander"] = *commander
	}
	if driver != nil {
		updates["driver"] = *driver
	}
	if len(updates) == 0 {
		return false, nil
	}
	res := s.db.Model(&models.DispatchRecord{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("store: update personnel for %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ClearAll deletes every record and returns the number removed.
func (s *Store) ClearAll() (int64, error) {
	res := s.db.Where("1 = 1").Delete(&models.DispatchRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("store: clear all: %w", res.Error)
	}
	return res.RowsAffected, nil
}
