package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jayelcee/internhq/model"
)

// CreateEditRequests stores one request per targeted log, capturing the
// current persisted times as originals. A log with a pending request
// cannot take a second one.
func (s *Store) CreateEditRequests(reqs []model.EditRequest) ([]model.EditRequest, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range reqs {
			var log model.TimeLog
			if err := tx.Where("id = ?", reqs[i].LogID).First(&log).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("log %s: %w", reqs[i].LogID, ErrNotFound)
				}
				return err
			}

			var pending int64
			if err := tx.Model(&model.EditRequest{}).
				Where("log_id = ? AND status = ?", reqs[i].LogID, model.RequestPending).
				Count(&pending).Error; err != nil {
				return err
			}
			if pending > 0 {
				return fmt.Errorf("log %s: %w", reqs[i].LogID, ErrPendingEditExists)
			}

			reqs[i].UserID = log.UserID
			reqs[i].OriginalTimeIn = log.TimeIn
			reqs[i].OriginalTimeOut = log.TimeOut
			reqs[i].Status = model.RequestPending

			if err := tx.Create(&reqs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// PendingEditRequestsForUser returns the user's pending requests, optionally
// narrowed to one DTR day via the targeted log.
func (s *Store) PendingEditRequestsForUser(userID uint, date string) ([]model.EditRequest, error) {
	q := s.db.Where("user_id = ? AND status = ?", userID, model.RequestPending)
	if date != "" {
		q = q.Joins("JOIN time_logs ON time_logs.id = edit_requests.log_id").
			Where("time_logs.date = ?", date)
	}

	var reqs []model.EditRequest
	err := q.Order("edit_requests.created_at ASC").Find(&reqs).Error
	return reqs, err
}

// EditRequestsByStatus lists requests for the admin queue.
func (s *Store) EditRequestsByStatus(status model.RequestStatus) ([]model.EditRequest, error) {
	var reqs []model.EditRequest
	err := s.db.Where("status = ?", status).
		Order("created_at ASC").
		Preload("User").
		Find(&reqs).Error
	return reqs, err
}

// FindEditRequest loads one request by id.
func (s *Store) FindEditRequest(id string) (*model.EditRequest, error) {
	var req model.EditRequest
	err := s.db.Where("id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// DecideEditRequest applies one admin decision. Approval writes the
// requested times into the log; rejection leaves the log alone; revert
// moves the request back to pending without restoring anything.
func (s *Store) DecideEditRequest(id string, action string, decidedBy uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var req model.EditRequest
		if err := tx.Where("id = ?", id).First(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		switch action {
		case ActionApprove:
			if req.Status != model.RequestPending {
				return ErrAlreadyDecided
			}
			updates := map[string]interface{}{}
			if req.RequestedTimeIn != nil {
				updates["time_in"] = req.RequestedTimeIn
			}
			if req.RequestedTimeOut != nil {
				updates["time_out"] = req.RequestedTimeOut
			}
			if len(updates) > 0 {
				if err := tx.Model(&model.TimeLog{}).
					Where("id = ?", req.LogID).
					Updates(updates).Error; err != nil {
					return err
				}
			}
			return tx.Model(&req).Updates(map[string]interface{}{
				"status":     model.RequestApproved,
				"decided_by": decidedBy,
				"decided_at": now,
			}).Error

		case ActionReject:
			if req.Status != model.RequestPending {
				return ErrAlreadyDecided
			}
			return tx.Model(&req).Updates(map[string]interface{}{
				"status":     model.RequestRejected,
				"decided_by": decidedBy,
				"decided_at": now,
			}).Error

		case ActionRevert:
			if req.Status == model.RequestPending {
				return nil
			}
			return tx.Model(&req).Updates(map[string]interface{}{
				"status":     model.RequestPending,
				"decided_by": nil,
				"decided_at": nil,
			}).Error
		}

		return fmt.Errorf("%w: %s", ErrInvalidAction, action)
	})
}

// DecideEditRequestBatch runs DecideEditRequest over ids sequentially with
// per-item isolation.
func (s *Store) DecideEditRequestBatch(ids []string, action string, decidedBy uint) BatchResult {
	result := BatchResult{Succeeded: []string{}, Failed: []string{}}
	for _, id := range ids {
		if err := s.DecideEditRequest(id, action, decidedBy); err != nil {
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result
}
