package httpapi

import (
	"bytes"
	"fmt"

	"ower-data/internal/domain"

	"github.com/xuri/excelize/v2"
)

// DebtorExportHeader are the columns of the debtor listing export.
var DebtorExportHeader = []string{
	"ID",
	"Name",
	"Identification",
	"Non-Residential Debt",
	"Residential Debt",
	"Land Debt",
	"Orenda Debt",
	"MPZ",
	"Total Debt",
	"Phone Status",
}

// RosterExportHeader are the columns of the children roster export.
var RosterExportHeader = []string{
	"Child Name",
	"Parent Name",
	"Phone Number",
	"Group",
	"Kindergarten",
}

// AttendanceExportHeader are the columns of the attendance export.
var AttendanceExportHeader = []string{
	"Date",
	"Child Name",
	"Kindergarten",
	"Group",
	"Group Type",
	"Status",
}

// GenerateDebtorExport renders the filtered debtor listing to an .xlsx file.
func GenerateDebtorExport(items []domain.DebtorListItem) ([]byte, error) {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{
			it.ID,
			it.Name,
			it.Identification,
			floatOrZero(it.NonResidentialDebt),
			floatOrZero(it.ResidentialDebt),
			floatOrZero(it.LandDebt),
			floatOrZero(it.OrendaDebt),
			floatOrZero(it.MPZ),
			it.TotalDebt,
			it.PhoneStatus,
		})
	}
	widths := []float64{10, 30, 16, 18, 18, 14, 14, 12, 14, 14}
	return generateExcel("Debtors", DebtorExportHeader, widths, rows)
}

// GenerateRosterExport renders the full children roster to an .xlsx file.
func GenerateRosterExport(items []domain.ChildRosterItem) ([]byte, error) {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{
			it.ChildName,
			it.ParentName,
			it.PhoneNumber,
			it.GroupName,
			it.KindergartenName,
		})
	}
	widths := []float64{30, 30, 18, 18, 24}
	return generateExcel("Children Roster", RosterExportHeader, widths, rows)
}

// GenerateAttendanceExport renders the filtered attendance listing to an
// .xlsx file.
func GenerateAttendanceExport(items []domain.AttendanceItem) ([]byte, error) {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{
			it.Date.Format("2006-01-02"),
			it.ChildName,
			it.KindergartenName,
			it.GroupName,
			it.GroupType,
			it.Status,
		})
	}
	widths := []float64{14, 30, 24, 18, 12, 14}
	return generateExcel("Attendance", AttendanceExportHeader, widths, rows)
}

func generateExcel(sheetName string, headers []string, widths []float64, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	// Note: no deferred Close here, WriteTo needs the file open

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheetName, name, name, width)
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	_ = f.Close()
	return buf.Bytes(), nil
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
