package sheets

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookReader reads ranges from a local .xlsx export of the spreadsheet.
// The spreadsheet ID is ignored; Path names the file.
type WorkbookReader struct {
	Path string
}

// ReadRange opens the workbook and returns the cropped rows of the named sheet
func (w *WorkbookReader) ReadRange(ctx context.Context, _ string, a1 string) ([][]string, error) {
	r, err := ParseRange(a1)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s", sheet, w.Path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return r.Crop(rows), nil
}
