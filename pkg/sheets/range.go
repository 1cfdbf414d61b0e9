package sheets

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Range is a parsed A1 reference such as 'Teacher Contact'!A1:F100.
// Coordinates are 1-based and inclusive; zero bounds mean "open".
type Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// A1 builds an A1 reference with the sheet name quoted, e.g. 'Signup'!A1:Z50
func A1(sheet, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(sheet, "'", "''"), cells)
}

// ParseRange parses "Sheet!A1:Z50", "'My Sheet'!B2:D" or a bare "A1:F100"
func ParseRange(ref string) (Range, error) {
	var r Range

	cells := ref
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		sheet := ref[:i]
		if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
		r.Sheet = sheet
		cells = ref[i+1:]
	}
	if cells == "" {
		return r, nil
	}

	parts := strings.SplitN(cells, ":", 2)
	var err error
	r.StartCol, r.StartRow, err = parseCorner(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	if len(parts) == 2 {
		r.EndCol, r.EndRow, err = parseCorner(parts[1])
		if err != nil {
			return Range{}, fmt.Errorf("invalid range %q: %w", ref, err)
		}
	} else {
		r.EndCol, r.EndRow = r.StartCol, r.StartRow
	}

	return r, nil
}

// parseCorner accepts a full cell ("Z50") or a bare column ("Z")
func parseCorner(s string) (int, int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if strings.IndexAny(s, "0123456789") < 0 {
		col, err := excelize.ColumnNameToNumber(s)
		return col, 0, err
	}
	return excelize.CellNameToCoordinates(s)
}

// Cells renders the cell part of the range again, e.g. "A1:Z50"
func (r Range) Cells() string {
	start, _ := excelize.CoordinatesToCellName(max(r.StartCol, 1), max(r.StartRow, 1))
	if r.EndCol == 0 {
		return start
	}
	if r.EndRow == 0 {
		col, _ := excelize.ColumnNumberToName(r.EndCol)
		return start + ":" + col
	}
	end, _ := excelize.CoordinatesToCellName(r.EndCol, r.EndRow)
	return start + ":" + end
}

// Crop cuts a full sheet (row 1 at index 0) down to the range and drops trailing empty cells
// and rows, which is how the Sheets API returns values
func (r Range) Crop(rows [][]string) [][]string {
	startRow := max(r.StartRow, 1) - 1
	startCol := max(r.StartCol, 1) - 1
	endRow := len(rows)
	if r.EndRow > 0 && r.EndRow < endRow {
		endRow = r.EndRow
	}

	var out [][]string
	for i := startRow; i < endRow; i++ {
		row := rows[i]
		endCol := len(row)
		if r.EndCol > 0 && r.EndCol < endCol {
			endCol = r.EndCol
		}

		var cropped []string
		if startCol < endCol {
			cropped = append([]string(nil), row[startCol:endCol]...)
		}
		out = append(out, trimRow(cropped))
	}

	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

func trimRow(row []string) []string {
	for len(row) > 0 && strings.TrimSpace(row[len(row)-1]) == "" {
		row = row[:len(row)-1]
	}
	if row == nil {
		return []string{}
	}
	return row
}
