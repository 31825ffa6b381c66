package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/applicant-selector/internal/types"
)

// Sheet names in exported workbooks
const (
	ApplicantsSheet = "Applicants"
	SummarySheet    = "Summary"
)

// numericColumns are written as numbers rather than text (zero-based, Headers order)
var numericColumns = map[int]bool{6: true, 7: true, 8: true, 9: true, 10: true, 11: true, 12: true}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// statusFills color-codes rows by recommendation
var statusFills = map[types.Status]string{
	types.StatusHighlyRecommended: "C6EFCE",
	types.StatusRecommended:       "DDEBF7",
	types.StatusConsider:          "FFEB9C",
	types.StatusUnderReview:       "FFC7CE",
}

// WriteXLSX writes a workbook with an applicant sheet and a summary sheet
func WriteXLSX(w io.Writer, applicants []types.ScoredApplicant) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ApplicantsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := writeApplicantsSheet(f, applicants); err != nil {
		return fmt.Errorf("failed to create applicants sheet: %w", err)
	}
	if err := writeSummarySheet(f, Summarize(applicants)); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func writeApplicantsSheet(f *excelize.File, applicants []types.ScoredApplicant) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}

	rowStyles := make(map[types.Status]int, len(statusFills))
	for status, color := range statusFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder,
		})
		if err != nil {
			return err
		}
		rowStyles[status] = style
	}

	for col, header := range Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ApplicantsSheet, cell, header); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(Headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ApplicantsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, a := range applicants {
		row := i + 2
		for col, value := range Row(a) {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(ApplicantsSheet, cell, cellValue(col, value)); err != nil {
				return err
			}
		}
		if style, ok := rowStyles[a.Status]; ok {
			if err := f.SetCellStyle(ApplicantsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), style); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(ApplicantsSheet, "A", "A", 38)
	_ = f.SetColWidth(ApplicantsSheet, "B", "C", 28)
	_ = f.SetColWidth(ApplicantsSheet, "D", "E", 22)
	_ = f.SetColWidth(ApplicantsSheet, "F", "P", 16)
	_ = f.SetColWidth(ApplicantsSheet, "Q", "Q", 40)
	_ = f.SetColWidth(ApplicantsSheet, "R", "R", 14)
	return f.SetPanes(ApplicantsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeSummarySheet(f *excelize.File, s Summary) error {
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Total Applicants", s.Total},
	}
	for i := len(types.Statuses) - 1; i >= 0; i-- {
		status := types.Statuses[i]
		rows = append(rows, []any{string(status), s.ByStatus[status]})
	}
	rows = append(rows, []any{"Average Score", s.AvgScore})

	for i, values := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(SummarySheet, cell, cell, labelStyle); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 24)
	return nil
}

// cellValue converts numeric columns so spreadsheets can sort them
func cellValue(col int, value string) any {
	if !numericColumns[col] {
		return value
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	return value
}
