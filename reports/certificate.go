package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jayelcee/internhq/model"
)

// BuildCertificateWorkbook renders the completion certificate sheet.
func BuildCertificateWorkbook(cert *model.Certificate, user *model.User) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Certificate"
	f.SetSheetName(f.GetSheetName(0), sheet)

	f.SetCellValue(sheet, "B2", "Certificate of Completion")
	f.SetCellValue(sheet, "B3", cert.SerialNo)

	f.SetCellValue(sheet, "B5", "This certifies that")
	f.SetCellValue(sheet, "B6", user.FullName())
	f.SetCellValue(sheet, "B7", user.School)
	f.SetCellValue(sheet, "B8", fmt.Sprintf("has completed the internship program under %s", user.Supervisor))

	f.SetCellValue(sheet, "B10", "Regular hours")
	f.SetCellValue(sheet, "C10", cert.RegularHours)
	f.SetCellValue(sheet, "B11", "Overtime hours")
	f.SetCellValue(sheet, "C11", cert.OvertimeHours)
	f.SetCellValue(sheet, "B12", "Total hours")
	f.SetCellValue(sheet, "C12", cert.TotalHours)

	f.SetCellValue(sheet, "B14", "Issued")
	f.SetCellValue(sheet, "C14", cert.IssuedAt.Format("2006-01-02"))

	return f, nil
}

// WorkbookBytes flattens a workbook for mailing or archiving.
func WorkbookBytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
