package sheets

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleReader reads ranges through the Sheets v4 values.get endpoint
type GoogleReader struct {
	svc *sheets.Service
}

// NewGoogleReader creates a reader from an authorized HTTP client
func NewGoogleReader(ctx context.Context, httpClient *http.Client) (*GoogleReader, error) {
	return NewGoogleReaderWithOptions(ctx, option.WithHTTPClient(httpClient))
}

// NewGoogleReaderWithOptions creates a reader from raw API client options
func NewGoogleReaderWithOptions(ctx context.Context, opts ...option.ClientOption) (*GoogleReader, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleReader{svc: svc}, nil
}

// ReadRange returns the formatted cell values of the range
func (g *GoogleReader) ReadRange(ctx context.Context, spreadsheetID, a1 string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a1, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			if cell == nil {
				continue
			}
			rows[i][j] = fmt.Sprint(cell)
		}
	}
	return rows, nil
}
