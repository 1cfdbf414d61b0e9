package signup

import (
	"errors"
	"testing"

	"github.com/yogat3ch/30-day-scheduler/pkg/timeslot"
)

func contactTable() [][]string {
	return [][]string{
		{"First Name", "Last Name", "Email", "Phone"},
		{"Jane", "Doe", "jane@x.com", "555-0100"},
		{"Ravi", "Patel", "ravi@x.com"},
	}
}

func TestResolveContacts(t *testing.T) {
	contacts := ResolveContacts(contactTable())

	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}

	jane, ok := contacts.Lookup("Jane Doe")
	if !ok {
		t.Fatalf("expected to find Jane Doe")
	}
	if jane.Get("Email") != "jane@x.com" {
		t.Errorf("expected email jane@x.com, got %s", jane.Get("Email"))
	}

	// Short rows are padded so every header is present
	ravi, _ := contacts.Lookup("Ravi Patel")
	if len(ravi.Fields) != 4 || ravi.Get("Phone") != "" {
		t.Errorf("expected padded contact row, got %+v", ravi.Fields)
	}
	if ravi.Fields[0].Name != "First Name" || ravi.Fields[3].Name != "Phone" {
		t.Errorf("expected fields to keep header order, got %+v", ravi.Fields)
	}
}

func TestResolveContacts_LastRowWins(t *testing.T) {
	table := [][]string{
		{"First Name", "Last Name", "Email"},
		{"Jane", "Doe", "old@x.com"},
		{"Jane", "Doe", "new@x.com"},
	}
	contacts := ResolveContacts(table)
	jane, _ := contacts.Lookup("Jane Doe")
	if jane.Get("Email") != "new@x.com" {
		t.Errorf("expected the last duplicate row to win, got %s", jane.Get("Email"))
	}
}

func TestResolveContacts_TrimsMissingLastName(t *testing.T) {
	table := [][]string{
		{"First Name", "Last Name", "Email"},
		{"Cher", "", "cher@x.com"},
	}
	if _, ok := ResolveContacts(table).Lookup("Cher"); !ok {
		t.Errorf("expected a trimmed key for a contact without a last name")
	}
}

func TestResolveContacts_Empty(t *testing.T) {
	if got := ResolveContacts(nil); len(got) != 0 {
		t.Errorf("expected no contacts, got %d", len(got))
	}
}

func TestExtract_SingleSession(t *testing.T) {
	grid := [][]string{
		{"Instructions"},
		{},
		{"", "", "7 am EST"},
		{"", "Monday, 2026-01-05", "Jane Doe"},
	}

	ext := Extract(grid, ResolveContacts(contactTable()))

	if len(ext.Problems) != 0 {
		t.Fatalf("unexpected problems: %v", ext.Problems)
	}
	if len(ext.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(ext.Sessions))
	}

	s := ext.Sessions[0]
	if s.Summary != "10-Minute Guided Session: Jane Doe" {
		t.Errorf("unexpected summary %q", s.Summary)
	}
	if s.Date != "2026-01-05" || s.DayOfWeek != "Monday" {
		t.Errorf("unexpected date/day %s/%s", s.Date, s.DayOfWeek)
	}
	if s.Window != (timeslot.Window{Start: "07:00", End: "07:10", DurationMinutes: 10}) {
		t.Errorf("unexpected window %+v", s.Window)
	}
	if s.Contact.Get("Email") != "jane@x.com" {
		t.Errorf("expected contact to be attached, got %+v", s.Contact)
	}
	if s.Begin() != "2026-01-05T07:00:00" || s.Finish() != "2026-01-05T07:10:00" {
		t.Errorf("unexpected timestamps %s / %s", s.Begin(), s.Finish())
	}
	if s.Cell() != "R4C3" {
		t.Errorf("expected R4C3, got %s", s.Cell())
	}
}

func TestExtract_OrderAndSkips(t *testing.T) {
	grid := [][]string{
		{"Signup sheet"},
		{"Please add your name"},
		{"", "Date", "7 am EST", "Decoration", "11:30 pm - 12:15 am EST"},
		{"", "Monday, 2026-01-05", "Jane Doe", "Jane Doe", "Ravi Patel"},
		{"", "no date here", "Jane Doe"},
		{"only one cell"},
		{"", "Tuesday, 2026-01-06", "  Ravi Patel  ", "", "Jane Doe"},
	}

	ext := Extract(grid, ResolveContacts(contactTable()))

	want := []struct {
		name  string
		date  string
		start string
	}{
		{"Jane Doe", "2026-01-05", "07:00"},
		{"Ravi Patel", "2026-01-05", "23:30"},
		{"Ravi Patel", "2026-01-06", "07:00"},
		{"Jane Doe", "2026-01-06", "23:30"},
	}

	if len(ext.Sessions) != len(want) {
		t.Fatalf("expected %d sessions, got %d: %+v", len(want), len(ext.Sessions), ext.Sessions)
	}
	for i, w := range want {
		s := ext.Sessions[i]
		if s.TeacherName != w.name || s.Date != w.date || s.Window.Start != w.start {
			t.Errorf("session %d: got %s %s %s, expected %s %s %s",
				i, s.TeacherName, s.Date, s.Window.Start, w.name, w.date, w.start)
		}
	}

	wrap := ext.Sessions[1]
	if wrap.Finish() != "2026-01-06T00:15:00" {
		t.Errorf("expected the midnight wrap to roll the end date, got %s", wrap.Finish())
	}
}

func TestExtract_UnknownTeacher(t *testing.T) {
	grid := [][]string{
		{}, {},
		{"", "", "7 am EST", "8 am EST"},
		{"", "Monday, 2026-01-05", "Nobody Known", "Jane Doe"},
	}

	ext := Extract(grid, ResolveContacts(contactTable()))

	if len(ext.Sessions) != 1 {
		t.Fatalf("expected processing to continue past the unknown name, got %d sessions", len(ext.Sessions))
	}
	if len(ext.Problems) != 1 {
		t.Fatalf("expected 1 problem, got %d", len(ext.Problems))
	}

	want := "No email found for 'Nobody Known' at R4C3"
	if ext.Problems[0].Error() != want {
		t.Errorf("expected %q, got %q", want, ext.Problems[0].Error())
	}

	var matchErr MatchError
	var err error = ext.Problems[0]
	if !errors.As(err, &matchErr) || matchErr.Name != "Nobody Known" {
		t.Errorf("expected a MatchError, got %v", err)
	}
}

func TestExtract_WithTeacher(t *testing.T) {
	grid := [][]string{
		{}, {},
		{"", "", "7 am EST", "8 am EST"},
		{"", "Monday, 2026-01-05", "Ravi Patel", "Jane Doe"},
		{"", "Tuesday, 2026-01-06", "Someone Else", "Jane Doe"},
	}

	ext := Extract(grid, ResolveContacts(contactTable()), WithTeacher("Jane Doe"))

	if len(ext.Sessions) != 2 {
		t.Fatalf("expected 2 sessions for Jane Doe, got %d", len(ext.Sessions))
	}
	// Filtered names are not lookup failures
	if len(ext.Problems) != 0 {
		t.Errorf("expected no problems, got %v", ext.Problems)
	}
}

func TestExtract_MissingHeaderRow(t *testing.T) {
	ext := Extract([][]string{{"only"}, {"two rows"}}, ResolveContacts(contactTable()))
	if len(ext.Sessions) != 0 || len(ext.Problems) != 0 {
		t.Errorf("expected an empty extraction, got %+v", ext)
	}
}

func TestSessionDisplayDay(t *testing.T) {
	s := Session{DayOfWeek: "MONDAY"}
	if s.DisplayDay() != "Monday" {
		t.Errorf("expected Monday, got %s", s.DisplayDay())
	}
}
