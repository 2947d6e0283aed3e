package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"premalloc/internal/model"
)

// WriteWorkbook renders a report set as one XLSX workbook, one sheet
// per report in declared order.
func WriteWorkbook(path string, set *model.ReportSet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, name := range set.Names() {
		sheet := sheetName(name)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet, err)
			}
		}

		table, _ := set.Get(name)
		if err := writeSheet(f, sheet, table); err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, table model.ReportTable) error {
	if err := f.SetSheetRow(sheet, "A1", &table.Headers); err != nil {
		return err
	}
	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// sheetName truncates to the 31-character sheet name limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
