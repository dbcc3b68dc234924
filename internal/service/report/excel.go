package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"team-portal/internal/service/aggregate"
)

// GenerateExcel renders the monthly recap as an XLSX workbook: one sheet for
// the raw rows and one leaderboard sheet per category.
func (s *Service) GenerateExcel(ctx context.Context, month string) ([]byte, string, error) {
	recap, err := s.Recap(ctx, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Rekap " + month
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	headers := []string{"Tanggal", "Nama", "Role", "Unit", "Produk", "Nilai"}
	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle)

	for rowIdx, row := range recap.Rows {
		rowNum := rowIdx + 2
		f.SetCellValue(sheet, cellName(1, rowNum), row.Date)
		f.SetCellValue(sheet, cellName(2, rowNum), row.Name)
		f.SetCellValue(sheet, cellName(3, rowNum), row.Role)
		f.SetCellValue(sheet, cellName(4, rowNum), row.Unit)
		f.SetCellValue(sheet, cellName(5, rowNum), row.Product)
		f.SetCellValue(sheet, cellName(6, rowNum), row.Amount)
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(sheet, "A", "F", 18)

	writeBoard := func(name string, entries []aggregate.Entry) error {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		cols := []string{"Rank", "Nama", "Role", "Score", "Total"}
		for i, c := range cols {
			f.SetCellValue(name, cellName(i+1, 1), c)
		}
		f.SetCellStyle(name, "A1", cellName(len(cols), 1), headerStyle)
		for i, e := range entries {
			rowNum := i + 2
			f.SetCellValue(name, cellName(1, rowNum), e.Rank)
			f.SetCellValue(name, cellName(2, rowNum), e.Name)
			f.SetCellValue(name, cellName(3, rowNum), e.Role)
			f.SetCellValue(name, cellName(4, rowNum), e.Score)
			f.SetCellValue(name, cellName(5, rowNum), e.Total)
		}
		f.SetColWidth(name, "A", "E", 18)
		return nil
	}

	if err := writeBoard("Leaderboard MIKRO", recap.Mikro); err != nil {
		return nil, "", fmt.Errorf("leaderboard sheet: %w", err)
	}
	if err := writeBoard("Leaderboard OPERASIONAL", recap.Operasional); err != nil {
		return nil, "", fmt.Errorf("leaderboard sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), fmt.Sprintf("rekap_%s.xlsx", month), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
