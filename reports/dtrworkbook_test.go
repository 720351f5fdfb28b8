package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayelcee/internhq/dtr"
	"github.com/jayelcee/internhq/model"
)

func tsAt(hour int) *time.Time {
	t := time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
	return &t
}

func TestBuildDTRWorkbook(t *testing.T) {
	user := &model.User{FirstName: "Jasmine", LastName: "Camasura", School: "TIP"}

	logs := []model.TimeLog{
		{ID: "a", TimeIn: tsAt(9), TimeOut: tsAt(18), LogType: model.LogTypeRegular},
	}
	day := dtr.BuildDay("2026-03-02", logs, nil, dtr.Policy{DailyRequiredHours: 9, MaxStandardOvertimeHours: 3})

	holidays := map[string]model.Holiday{
		"2026-03-02": {Date: "2026-03-02", Name: "Special Day"},
	}

	f, err := BuildDTRWorkbook(user, []dtr.DaySummary{day}, holidays)
	require.NoError(t, err)

	sheets := f.GetSheetList()
	require.Equal(t, []string{"2026-03"}, sheets)

	name, err := f.GetCellValue("2026-03", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Jasmine Camasura", name)

	date, _ := f.GetCellValue("2026-03", "A4")
	assert.Equal(t, "2026-03-02", date)
	in, _ := f.GetCellValue("2026-03", "B4")
	assert.Equal(t, "09:00", in)
	regular, _ := f.GetCellValue("2026-03", "D4")
	assert.Equal(t, "9", regular)
	remarks, _ := f.GetCellValue("2026-03", "G4")
	assert.Equal(t, "Special Day", remarks)

	// Totals row follows the single data row.
	total, _ := f.GetCellValue("2026-03", "D5")
	assert.Equal(t, "9", total)
}

func TestBuildCertificateWorkbook(t *testing.T) {
	user := &model.User{FirstName: "Jasmine", LastName: "Camasura", School: "TIP", Supervisor: "J. Cruz"}
	cert := &model.Certificate{
		SerialNo:      "IHQ-2026-0001",
		RegularHours:  486,
		OvertimeHours: 14,
		TotalHours:    500,
		IssuedAt:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	f, err := BuildCertificateWorkbook(cert, user)
	require.NoError(t, err)

	serial, _ := f.GetCellValue("Certificate", "B3")
	assert.Equal(t, "IHQ-2026-0001", serial)
	name, _ := f.GetCellValue("Certificate", "B6")
	assert.Equal(t, "Jasmine Camasura", name)
	total, _ := f.GetCellValue("Certificate", "C12")
	assert.Equal(t, "500", total)

	data, err := WorkbookBytes(f)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
