package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var publishedBaseURL = "https://docs.google.com/spreadsheets/d/e"

// HTMLReader reads a spreadsheet that was "published to the web". No credentials are needed,
// so it suits dry runs on machines without a token.
type HTMLReader struct {
	httpClient *http.Client
	useCache   bool
}

// NewHTMLReader creates a reader for published sheets. Fetched sheets are cached on disk for a
// few minutes when useCache is set.
func NewHTMLReader(useCache bool) *HTMLReader {
	return &HTMLReader{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		useCache: useCache,
	}
}

// ReadRange fetches the published sheet and crops it to the range.
// spreadsheetID is the publish ID (the part after /d/e/ in the published URL).
func (h *HTMLReader) ReadRange(ctx context.Context, spreadsheetID, a1 string) ([][]string, error) {
	r, err := ParseRange(a1)
	if err != nil {
		return nil, err
	}

	key := spreadsheetID + "_" + r.Sheet
	if h.useCache {
		if rows, ok := readCache(key); ok {
			return r.Crop(rows), nil
		}
	}

	reqURL := fmt.Sprintf("%s/%s/pubhtml/sheet?headers=false&sheet=%s",
		publishedBaseURL, url.PathEscape(spreadsheetID), url.QueryEscape(r.Sheet))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "30-day-scheduler/1.0")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch published sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, reqURL)
	}

	rows, err := ParseHTMLGrid(resp.Body)
	if err != nil {
		return nil, err
	}
	if h.useCache {
		writeCache(key, rows)
	}

	return r.Crop(rows), nil
}

// ParseHTMLGrid extracts the cell text of the first waffle table in a published sheet.
// Row-number header cells and freezebar spacers are skipped and colspans are expanded with
// empty cells so that column positions match the sheet.
func ParseHTMLGrid(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse published sheet: %w", err)
	}

	table := doc.Find("table.waffle").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no sheet table found in published page")
	}

	var rows [][]string
	table.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("td")
		// Frozen rows and columns are drawn with freezebar spacer cells
		data := cells.Not(".freezebar-cell")
		if cells.Length() > 0 && data.Length() == 0 {
			return
		}

		var row []string
		data.Each(func(j int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))

			span, _ := strconv.Atoi(td.AttrOr("colspan", "1"))
			for k := 1; k < span; k++ {
				row = append(row, "")
			}
		})
		rows = append(rows, row)
	})

	return rows, nil
}
