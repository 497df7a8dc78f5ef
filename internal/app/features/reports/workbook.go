// internal/app/features/reports/workbook.go
package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook lays out data as a four-sheet workbook. The caller closes
// the returned file.
func buildWorkbook(data exportData) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name   string
		header []string
		widths []float64
		rows   [][]any
	}{
		{sheetDonations, donationsHeader, []float64{8, 18, 28, 18, 28, 36, 18, 6, 12, 14, 14, 12}, donationRows(data)},
		{sheetLines, linesHeader, []float64{10, 36, 12, 10}, lineRows(data)},
		{sheetProgress, progressHeader, []float64{36, 12, 10, 10, 14, 8, 26}, progressRows(data)},
		{sheetFinancial, financialHeader, []float64{8, 18, 28, 28, 18, 12, 10, 12, 40}, financialRows(data)},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s.name, s.header, s.widths, s.rows, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, widths []float64, rows [][]any, headerStyle int) error {
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("set header cell %s!%s: %w", sheet, cell, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style on %s: %w", sheet, err)
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set column width on %s: %w", sheet, err)
		}
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %s: %w", r+2, sheet, err)
		}
	}
	return nil
}

const dateTimeLayout = "2006-01-02 15:04"

func donationRows(data exportData) [][]any {
	rows := make([][]any, 0, len(data.Donations))
	for _, d := range data.Donations {
		rows = append(rows, []any{
			d.ID, d.CreatedAt.UTC().Format(dateTimeLayout), d.DonorName, d.DonorPhone, d.DonorEmail,
			d.Address, d.City, d.State, d.ZipCode, d.PickupDate, d.PickupTime, string(d.Status),
		})
	}
	return rows
}

func lineRows(data exportData) [][]any {
	var rows [][]any
	for _, d := range data.Donations {
		for _, ln := range data.Lines[d.ID] {
			name, unit := "(item removido)", ""
			if it, ok := data.Items[ln.NeededItemID]; ok {
				name, unit = it.Name, it.Unit
			}
			rows = append(rows, []any{d.ID, name, ln.Quantity, unit})
		}
	}
	return rows
}

func progressRows(data exportData) [][]any {
	rows := make([][]any, 0, len(data.Progress.Items)+1)
	for _, ip := range data.Progress.Items {
		rows = append(rows, []any{ip.Name, ip.Priority, ip.Target, ip.Donated, ip.Counted, ip.Percent, data.Pledged[ip.NeededItemID]})
	}
	var pledged int64
	for _, n := range data.Pledged {
		pledged += n
	}
	rows = append(rows, []any{"Total", "", data.Progress.TotalTarget, "", data.Progress.TotalCounted, data.Progress.Percent, pledged})
	return rows
}

func financialRows(data exportData) [][]any {
	rows := make([][]any, 0, len(data.Financial))
	for _, fd := range data.Financial {
		rows = append(rows, []any{
			fd.ID, fd.CreatedAt.UTC().Format(dateTimeLayout), fd.DonorName, fd.DonorEmail, fd.DonorPhone,
			float64(fd.Amount) / 100, string(fd.PaymentMethod), string(fd.Status), fd.Message,
		})
	}
	return rows
}
