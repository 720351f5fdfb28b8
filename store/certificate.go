package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jayelcee/internhq/model"
)

func (s *Store) CreateCertificate(cert *model.Certificate) error {
	return s.db.Create(cert).Error
}

func (s *Store) FindCertificate(id string) (*model.Certificate, error) {
	var cert model.Certificate
	err := s.db.Preload("User").Where("id = ?", id).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (s *Store) ListCertificates() ([]model.Certificate, error) {
	var certs []model.Certificate
	err := s.db.Order("issued_at DESC").Preload("User").Find(&certs).Error
	return certs, err
}

func (s *Store) CertificateForUser(userID uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := s.db.Where("user_id = ?", userID).Order("issued_at DESC").First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (s *Store) CreateImportBatch(batch *model.ImportBatch) error {
	return s.db.Create(batch).Error
}
