package tui

import (
	"io"

	"github.com/yogat3ch/30-day-scheduler/pkg/syncer"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Confirm asks a yes/no question with a huh confirm field
func Confirm(question string) (bool, error) {
	var ok bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// Spin runs action behind a spinner
func Spin(title string, action func()) {
	_ = spinner.New().
		Title(title).
		Action(action).
		Run()
}

// NewConsole returns the interactive console used by the commands and menus
func NewConsole(out io.Writer) syncer.Console {
	return syncer.Console{
		Out:      out,
		Confirm:  Confirm,
		Progress: Spin,
	}
}
