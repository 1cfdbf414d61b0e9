package signup

import (
	"regexp"
	"strings"

	"github.com/yogat3ch/30-day-scheduler/pkg/timeslot"
)

// Layout of the signup sheet, 0-based
const (
	HeaderRow    = 2
	FirstDataRow = 3
	DateCol      = 1
	FirstSlotCol = 2
)

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Extraction is the result of walking a signup grid
type Extraction struct {
	Sessions []Session
	Problems []MatchError
}

// Option customises Extract
type Option func(*extractOptions)

type extractOptions struct {
	teacher string
}

// WithTeacher restricts extraction to cells naming exactly this teacher
func WithTeacher(name string) Option {
	return func(o *extractOptions) {
		o.teacher = strings.TrimSpace(name)
	}
}

// SlotWindows parses every header cell at or after FirstSlotCol.
// Columns whose header holds no clock time are left out.
func SlotWindows(header []string) map[int]timeslot.Window {
	slots := make(map[int]timeslot.Window)
	for col, label := range header {
		if col < FirstSlotCol {
			continue
		}
		w, err := timeslot.Parse(label)
		if err != nil {
			continue
		}
		slots[col] = w
	}
	return slots
}

// Extract walks the signup grid and emits one Session per filled time-slot cell, in row-major
// order. Names that are not in contacts are reported as MatchErrors instead.
func Extract(grid [][]string, contacts Contacts, opts ...Option) Extraction {
	var o extractOptions
	for _, opt := range opts {
		opt(&o)
	}

	var out Extraction
	if len(grid) <= HeaderRow {
		return out
	}
	slots := SlotWindows(grid[HeaderRow])

	for rowIdx := FirstDataRow; rowIdx < len(grid); rowIdx++ {
		row := grid[rowIdx]
		if len(row) <= DateCol {
			continue
		}

		dateRaw := row[DateCol]
		date := datePattern.FindString(dateRaw)
		if date == "" {
			continue
		}
		day := strings.TrimSpace(strings.SplitN(dateRaw, ",", 2)[0])

		for colIdx, cell := range row {
			window, ok := slots[colIdx]
			if !ok {
				continue
			}
			name := strings.TrimSpace(cell)
			if name == "" {
				continue
			}
			if o.teacher != "" && name != o.teacher {
				continue
			}

			contact, ok := contacts.Lookup(name)
			if !ok {
				out.Problems = append(out.Problems, MatchError{Name: name, Row: rowIdx + 1, Col: colIdx + 1})
				continue
			}

			out.Sessions = append(out.Sessions, Session{
				Summary:     SummaryPrefix + name,
				TeacherName: name,
				Date:        date,
				DayOfWeek:   day,
				Window:      window,
				Contact:     contact,
				Row:         rowIdx + 1,
				Col:         colIdx + 1,
			})
		}
	}

	return out
}
