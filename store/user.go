package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jayelcee/internhq/model"
)

func (s *Store) CreateUser(u *model.User) error {
	return s.db.Create(u).Error
}

func (s *Store) FindUserByID(id uint) (*model.User, error) {
	var u model.User
	err := s.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := s.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByBadgeTag(tag string) (*model.User, error) {
	var u model.User
	err := s.db.Where("badge_tag = ?", tag).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListInterns returns intern accounts, optionally narrowed by status.
func (s *Store) ListInterns(status string) ([]model.User, error) {
	q := s.db.Where("role = ?", model.RoleIntern)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var users []model.User
	err := q.Order("last_name ASC, first_name ASC").Find(&users).Error
	return users, err
}

// UpdateUser applies a partial update built by the handler.
func (s *Store) UpdateUser(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := s.db.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ArchiveUser soft-retires an account; history stays queryable.
func (s *Store) ArchiveUser(id uint) error {
	return s.UpdateUser(id, map[string]interface{}{"status": model.UserArchived})
}
