// Package reports renders DTR and certificate workbooks with excelize.
package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jayelcee/internhq/dtr"
	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/utils"
)

const timeLayout = "15:04"

// BuildDTRWorkbook renders one sheet per month covered by days, one row
// per DTR day with session times and the three hour buckets. Holidays are
// labelled in the remarks column.
func BuildDTRWorkbook(user *model.User, days []dtr.DaySummary, holidays map[string]model.Holiday) (*excelize.File, error) {
	f := excelize.NewFile()

	byMonth := map[string][]dtr.DaySummary{}
	var monthOrder []string
	for _, day := range days {
		month := monthOf(day.Date)
		if _, seen := byMonth[month]; !seen {
			monthOrder = append(monthOrder, month)
		}
		byMonth[month] = append(byMonth[month], day)
	}

	if len(monthOrder) == 0 {
		sheet := f.GetSheetName(0)
		writeDTRHeader(f, sheet, user)
		return f, nil
	}

	for i, month := range monthOrder {
		sheet := month
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("new sheet %s: %w", sheet, err)
			}
		}

		writeDTRHeader(f, sheet, user)

		row := 4
		var regular, overtime, extended float64
		for _, day := range byMonth[month] {
			remarks := ""
			if h, ok := holidays[day.Date]; ok {
				remarks = h.Name
			}

			if len(day.Sessions) == 0 {
				writeRow(f, sheet, row, day.Date, "", "", 0, 0, 0, remarks)
				row++
				continue
			}

			for _, session := range day.Sessions {
				in := utils.FormatTime(session.TimeIn, timeLayout)
				out := utils.FormatTime(session.TimeOut, timeLayout)
				if out == "" && session.Session.IsActive {
					out = "active"
				}
				if session.HasPendingEdit {
					remarks = appendRemark(remarks, "edit pending")
				}

				a := session.Allocation
				writeRow(f, sheet, row, day.Date, in, out, a.RegularHours, a.OvertimeHours, a.ExtendedOvertimeHours, remarks)
				row++
			}

			regular += day.RegularHours
			overtime += day.OvertimeHours
			extended += day.ExtendedOvertimeHours
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), regular)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), overtime)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), extended)
	}

	return f, nil
}

func writeDTRHeader(f *excelize.File, sheet string, user *model.User) {
	f.SetCellValue(sheet, "A1", "Daily Time Record")
	f.SetCellValue(sheet, "A2", user.FullName())
	f.SetCellValue(sheet, "C2", user.School)

	headers := []string{"Date", "Time In", "Time Out", "Regular", "Overtime", "Extended OT", "Remarks"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, h)
	}
}

func writeRow(f *excelize.File, sheet string, row int, date, in, out string, regular, overtime, extended float64, remarks string) {
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), date)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), in)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), out)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), regular)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), overtime)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), extended)
	f.SetCellValue(sheet, fmt.Sprintf("G%d", row), remarks)
}

func monthOf(date string) string {
	if len(date) >= 7 {
		return date[:7]
	}
	return date
}

func appendRemark(existing, add string) string {
	if existing == "" {
		return add
	}
	return existing + "; " + add
}
