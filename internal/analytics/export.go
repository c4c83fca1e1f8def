package analytics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const gradebookSheet = "Gradebook"

// ExportGradebook writes rows to path. A .xlsx extension produces a
// spreadsheet; anything else produces CSV. Parent directories are created.
func ExportGradebook(path string, rows []GradebookRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return exportXLSX(path, rows)
	}
	return exportCSV(path, rows)
}

func exportCSV(path string, rows []GradebookRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(GradebookHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

func exportXLSX(path string, rows []GradebookRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", gradebookSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	write := func(rowIdx int, values []string) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(gradebookSheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(1, GradebookHeader); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, r := range rows {
		if err := write(i+2, r.Values()); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
