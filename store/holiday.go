package store

import "github.com/jayelcee/internhq/model"

// HolidaysBetween returns holidays in a date range inclusive.
func (s *Store) HolidaysBetween(from, to string) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := s.db.Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

// HolidaySet returns the range keyed by date for quick day lookups.
func (s *Store) HolidaySet(from, to string) (map[string]model.Holiday, error) {
	holidays, err := s.HolidaysBetween(from, to)
	if err != nil {
		return nil, err
	}
	set := make(map[string]model.Holiday, len(holidays))
	for _, h := range holidays {
		set[h.Date] = h
	}
	return set, nil
}
