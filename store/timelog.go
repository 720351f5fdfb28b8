package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/utils"
)

// TimeLogsForDay returns one user's logs for a DTR day, ordered by time-in.
func (s *Store) TimeLogsForDay(userID uint, date string) ([]model.TimeLog, error) {
	var logs []model.TimeLog
	err := s.db.Where("user_id = ? AND date = ?", userID, date).
		Order("time_in ASC").
		Find(&logs).Error
	return logs, err
}

// TimeLogsForRange returns logs between two DTR dates inclusive.
func (s *Store) TimeLogsForRange(userID uint, from, to string) ([]model.TimeLog, error) {
	var logs []model.TimeLog
	err := s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC, time_in ASC").
		Find(&logs).Error
	return logs, err
}

// AllTimeLogs returns every log a user has, for progress computation.
func (s *Store) AllTimeLogs(userID uint) ([]model.TimeLog, error) {
	var logs []model.TimeLog
	err := s.db.Where("user_id = ?", userID).
		Order("date ASC, time_in ASC").
		Find(&logs).Error
	return logs, err
}

// FindTimeLog loads one log by id.
func (s *Store) FindTimeLog(id string) (*model.TimeLog, error) {
	var log model.TimeLog
	err := s.db.Where("id = ?", id).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// TimeLogsByIDs resolves a set of logs; missing ids are simply absent from
// the result.
func (s *Store) TimeLogsByIDs(ids []string) ([]model.TimeLog, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var logs []model.TimeLog
	err := s.db.Where("id IN ?", ids).Find(&logs).Error
	return logs, err
}

// OpenLog returns the user's running log, or nil when everything is closed.
func (s *Store) OpenLog(userID uint) (*model.TimeLog, error) {
	var log model.TimeLog
	err := s.db.Where("user_id = ? AND time_in IS NOT NULL AND time_out IS NULL", userID).
		Order("time_in DESC").
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// ClockIn opens a new log at now. Overtime-tagged logs start pending;
// regular logs carry no overtime status. Fails when a log is already open.
func (s *Store) ClockIn(userID uint, logType model.LogType, now time.Time, deviceID string) (*model.TimeLog, error) {
	open, err := s.OpenLog(userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrOpenLogExists
	}

	status := model.StatusNone
	if logType != model.LogTypeRegular {
		status = model.StatusPending
	}

	log := model.TimeLog{
		UserID:         userID,
		Date:           utils.DTRDate(now),
		TimeIn:         &now,
		LogType:        logType,
		OvertimeStatus: status,
		Source:         model.SourceWeb,
		DeviceID:       deviceID,
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// ClockOut closes the user's open log at now.
func (s *Store) ClockOut(userID uint, now time.Time) (*model.TimeLog, error) {
	open, err := s.OpenLog(userID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenLog
	}

	if err := s.db.Model(&model.TimeLog{}).
		Where("id = ?", open.ID).
		Update("time_out", now).Error; err != nil {
		return nil, err
	}
	open.TimeOut = &now
	return open, nil
}

// UpdateTimeLog rewrites a log's times and break directly (admin path, no
// edit-request workflow).
func (s *Store) UpdateTimeLog(id string, timeIn, timeOut *time.Time, breakMinutes *int) error {
	updates := map[string]interface{}{}
	if timeIn != nil {
		updates["time_in"] = timeIn
	}
	if timeOut != nil {
		updates["time_out"] = timeOut
	}
	if breakMinutes != nil {
		updates["break_minutes"] = *breakMinutes
	}
	if len(updates) == 0 {
		return nil
	}

	result := s.db.Model(&model.TimeLog{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTimeLog removes a log and any edit requests that target it.
func (s *Store) DeleteTimeLog(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("log_id = ?", id).Delete(&model.EditRequest{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.TimeLog{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// UpdateLogStatus moves an overtime-tagged log to a new overtime status.
func (s *Store) UpdateLogStatus(logID string, status model.OvertimeStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidAction, status)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var log model.TimeLog
		if err := tx.Where("id = ?", logID).First(&log).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if log.LogType == model.LogTypeRegular {
			return ErrNotOvertime
		}
		return tx.Model(&model.TimeLog{}).Where("id = ?", logID).
			Update("overtime_status", status).Error
	})
}

// DecideOvertime applies one admin decision to an overtime log. Revert puts
// the log back to pending; no decision ever touches the recorded times.
func (s *Store) DecideOvertime(logID string, action string) error {
	status, err := statusForAction(action)
	if err != nil {
		return err
	}
	return s.UpdateLogStatus(logID, status)
}

// DecideOvertimeBatch runs DecideOvertime over ids sequentially. A failed
// item is recorded and the loop continues; applied items stay applied.
func (s *Store) DecideOvertimeBatch(ids []string, action string) BatchResult {
	result := BatchResult{Succeeded: []string{}, Failed: []string{}}
	for _, id := range ids {
		if err := s.DecideOvertime(id, action); err != nil {
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result
}

func statusForAction(action string) (model.OvertimeStatus, error) {
	switch action {
	case ActionApprove:
		return model.StatusApproved, nil
	case ActionReject:
		return model.StatusRejected, nil
	case ActionRevert:
		return model.StatusPending, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidAction, action)
}

// OvertimeLogsByStatus lists overtime-tagged logs for the admin review
// queue, newest day first.
func (s *Store) OvertimeLogsByStatus(status model.OvertimeStatus) ([]model.TimeLog, error) {
	var logs []model.TimeLog
	err := s.db.Where("log_type <> ? AND overtime_status = ?", model.LogTypeRegular, status).
		Order("date DESC, time_in ASC").
		Preload("User").
		Find(&logs).Error
	return logs, err
}

// BulkUpsertTimeLogs writes imported logs, updating rows re-sent by the
// badge reader pipeline.
func (s *Store) BulkUpsertTimeLogs(logs []model.TimeLog) error {
	if len(logs) == 0 {
		return nil
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&logs).Error
}
