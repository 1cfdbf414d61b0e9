package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoIDColumn is returned when the CSV has neither an "ID" nor an "id" column
var ErrNoIDColumn = errors.New("no 'ID' or 'id' column found in CSV")

// DefaultHeader is written when a new ledger file is created
var DefaultHeader = []string{"Summary", "ID", "Begin"}

// Record is one created calendar event
type Record struct {
	Summary string
	ID      string
	Begin   string
}

// Ledger is the CSV log of events this tool created, consumed later by the delete command
type Ledger struct {
	Path string
}

// New returns a ledger stored at path
func New(path string) *Ledger {
	return &Ledger{Path: path}
}

// Exists reports whether the ledger file is present
func (l *Ledger) Exists() bool {
	_, err := os.Stat(l.Path)
	return err == nil
}

// Append adds records to the ledger, creating it with a header row if needed.
// Columns follow the existing header so older two-column files stay readable.
func (l *Ledger) Append(records []Record) error {
	if len(records) == 0 {
		return nil
	}

	header := DefaultHeader
	exists := l.Exists()
	if exists {
		existing, err := l.readHeader()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			header = existing
		}
	} else if err := os.MkdirAll(filepath.Dir(l.Path), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !exists {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write ledger header: %w", err)
		}
	}
	for _, r := range records {
		if err := w.Write(r.row(header)); err != nil {
			return fmt.Errorf("failed to write ledger row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Replace overwrites the ledger with exactly these records
func (l *Ledger) Replace(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(l.Path), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	f, err := os.Create(l.Path)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(DefaultHeader); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.row(DefaultHeader)); err != nil {
			return fmt.Errorf("failed to write ledger row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Read loads every record. The id column may be named "ID" or "id".
func (l *Ledger) Read() ([]Record, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads ledger records from CSV
func Parse(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoIDColumn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger header: %w", err)
	}

	cols := indexColumns(header)
	idCol, ok := cols["ID"]
	if !ok {
		if idCol, ok = cols["id"]; !ok {
			return nil, ErrNoIDColumn
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger row: %w", err)
		}

		id := cell(row, idCol)
		if id == "" {
			continue
		}
		records = append(records, Record{
			ID:      id,
			Summary: cell(row, lookup(cols, "Summary", "summary")),
			Begin:   cell(row, lookup(cols, "Begin", "begin")),
		})
	}

	return records, nil
}

// Remove deletes the ledger file
func (l *Ledger) Remove() error {
	if err := os.Remove(l.Path); err != nil {
		return fmt.Errorf("failed to remove ledger: %w", err)
	}
	return nil
}

func (l *Ledger) readHeader() ([]string, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger header: %w", err)
	}
	return header, nil
}

func (r Record) row(header []string) []string {
	row := make([]string, len(header))
	for i, h := range header {
		switch strings.ToLower(h) {
		case "summary":
			row[i] = r.Summary
		case "id":
			row[i] = r.ID
		case "begin":
			row[i] = r.Begin
		}
	}
	return row
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}

func lookup(cols map[string]int, names ...string) int {
	for _, n := range names {
		if i, ok := cols[n]; ok {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
