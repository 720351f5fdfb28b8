package utils

import (
	"encoding/csv"
	"io"
)

// ParseCSV reads all rows. Rows may have differing field counts; badge
// readers omit the trailing device column on some firmware versions.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return records, nil
}
