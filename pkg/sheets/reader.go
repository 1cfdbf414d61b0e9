package sheets

import "context"

// Reader returns the cells of an A1 range as rows of strings
type Reader interface {
	ReadRange(ctx context.Context, spreadsheetID, a1 string) ([][]string, error)
}
