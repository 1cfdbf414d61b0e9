package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

const publishedPage = `<html><body>
<div id="sheets-viewport"><table class="waffle" cellspacing="0" cellpadding="0">
<thead><tr><th class="row-header freezebar-origin-ltr"></th><th>A</th><th>B</th><th>C</th><th>D</th></tr></thead>
<tbody>
<tr><th class="row-headers-background">1</th><td colspan="4">Sign up for a slot below</td></tr>
<tr><th class="row-headers-background">2</th><td></td><td></td><td></td><td></td></tr>
<tr><th class="row-headers-background">3</th><td></td><td>Date</td><td>7 am EST | 6 am CST</td><td>8 am EST</td></tr>
<tr><th class="row-headers-background">4</th><td></td><td>Monday, 2026-01-05</td><td> Jane Doe </td><td></td></tr>
</tbody></table></div>
</body></html>`

func TestParseHTMLGrid(t *testing.T) {
	rows, err := ParseHTMLGrid(strings.NewReader(publishedPage))
	if err != nil {
		t.Fatalf("ParseHTMLGrid failed: %v", err)
	}

	want := [][]string{
		{"Sign up for a slot below", "", "", ""},
		{"", "", "", ""},
		{"", "Date", "7 am EST | 6 am CST", "8 am EST"},
		{"", "Monday, 2026-01-05", "Jane Doe", ""},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("unexpected grid:\nGot: %q\nExpected: %q", rows, want)
	}
}

const frozenPage = `<html><body>
<table class="waffle">
<tbody>
<tr><th class="row-headers-background">1</th><td class="freezebar-cell"></td><td>Sign up</td><td></td><td></td></tr>
<tr><th class="row-headers-background">2</th><td class="freezebar-cell"></td><td></td><td></td><td></td></tr>
<tr><th class="freezebar-cell"></th><td class="freezebar-cell"></td><td class="freezebar-cell"></td><td class="freezebar-cell"></td></tr>
<tr><th class="row-headers-background">3</th><td class="freezebar-cell"></td><td></td><td></td><td>7 am EST</td></tr>
<tr><th class="row-headers-background">4</th><td class="freezebar-cell"></td><td></td><td>Monday, 2026-01-05</td><td>Jane Doe</td></tr>
</tbody></table>
</body></html>`

func TestParseHTMLGrid_FrozenSheet(t *testing.T) {
	rows, err := ParseHTMLGrid(strings.NewReader(frozenPage))
	if err != nil {
		t.Fatalf("ParseHTMLGrid failed: %v", err)
	}

	want := [][]string{
		{"Sign up", "", ""},
		{"", "", ""},
		{"", "", "7 am EST"},
		{"", "Monday, 2026-01-05", "Jane Doe"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("unexpected grid:\nGot: %q\nExpected: %q", rows, want)
	}
}

func TestParseHTMLGrid_NoTable(t *testing.T) {
	if _, err := ParseHTMLGrid(strings.NewReader("<html><body>Not published</body></html>")); err == nil {
		t.Errorf("expected an error when the page has no sheet table")
	}
}

func TestHTMLReader_ReadRange(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/pub-123/pubhtml/sheet" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("sheet") != "Signup" {
			t.Errorf("expected sheet=Signup, got %s", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(publishedPage))
	}))
	defer server.Close()

	originalBaseURL := publishedBaseURL
	publishedBaseURL = server.URL
	defer func() { publishedBaseURL = originalBaseURL }()

	reader := NewHTMLReader(true)

	for i := 0; i < 2; i++ {
		rows, err := reader.ReadRange(context.Background(), "pub-123", A1("Signup", "A3:D4"))
		if err != nil {
			t.Fatalf("ReadRange failed: %v", err)
		}
		if len(rows) != 2 || rows[1][2] != "Jane Doe" {
			t.Errorf("unexpected cropped rows %q", rows)
		}
	}

	// The second read is served from the disk cache
	if requests != 1 {
		t.Errorf("expected 1 request, got %d", requests)
	}
}

func TestHTMLReader_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	originalBaseURL := publishedBaseURL
	publishedBaseURL = server.URL
	defer func() { publishedBaseURL = originalBaseURL }()

	if _, err := NewHTMLReader(false).ReadRange(context.Background(), "pub-404", "A1:B2"); err == nil {
		t.Errorf("expected an error for a 404")
	}
}
