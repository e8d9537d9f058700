package roster

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Roster"

var exportHeader = []string{
	"Name",
	"Email",
	"Phone",
	"Vehicle Type",
	"Status",
	"Invitation Code",
	"Invited At",
	"Accepted At",
}

var exportColumnWidths = []float64{25, 32, 18, 16, 12, 16, 20, 20}

// ExportXLSX writes entries, in order, to a single-sheet workbook.
func ExportXLSX(entries []Entry) ([]byte, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeader {
		if err := setCell(f, col+1, 1, header); err != nil {
			f.Close()
			return nil, err
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(exportSheet, name, name, exportColumnWidths[col]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetCellStyle(exportSheet, "A1", fmt.Sprintf("%s1", lastColumn()), headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i := range entries {
		row := i + 2
		for col, value := range exportRow(&entries[i]) {
			if value == "" {
				continue
			}
			if err := setCell(f, col+1, row, value); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRow(e *Entry) []string {
	row := []string{e.Name, e.Email, e.Phone, e.VehicleType, e.StatusLabel(), "", "", ""}
	if inv := e.Invitation; inv != nil {
		row[5] = inv.Code
		row[6] = formatTime(&inv.CreatedAt)
		row[7] = formatTime(inv.AcceptedAt)
	}
	return row
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellValue(exportSheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}

func lastColumn() string {
	name, _ := excelize.ColumnNumberToName(len(exportHeader))
	return name
}
