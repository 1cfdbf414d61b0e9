package syncer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// printSection writes a labelled block of lines, e.g. "--- Matching Errors ---"
func printSection(w io.Writer, label string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("\n--- %s ---", label)))
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("\n--- %s ---", title)))
}

func previewTable(events []Planned) string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.Payload.Summary,
			e.Payload.Start.DateTime,
			e.Payload.End.DateTime,
			strings.Join(e.Payload.AttendeeEmails(), ", "),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Event Name", "Event Start Time", "Event End Time", "Event Guest Name(s)").
		Rows(rows...)

	return t.Render()
}
