package tui

import (
	"context"

	"github.com/yogat3ch/30-day-scheduler/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const defaultAccent = "99"

var (
	// accentStyle follows the saved accent once Theme has run
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// ConfigPath is the config file used by the forms; empty means the default location
var ConfigPath string

// accent returns the saved accent color, falling back to the default when none is saved
func accent() string {
	cfg, err := config.Load(ConfigPath)
	if err != nil || cfg.AccentColor == "" {
		return defaultAccent
	}
	return cfg.AccentColor
}

// Theme returns the form theme in the saved accent color. Plain console output picks up the
// same color through accentStyle.
func Theme() *huh.Theme {
	color := accent()
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	return themeFor(color)
}

// themeFor builds a theme around one accent color, so a choice can be previewed before saving
func themeFor(color string) *huh.Theme {
	t := huh.ThemeBase()
	p := lipgloss.Color(color)

	bar := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		PaddingLeft(1)
	t.Focused.Base = bar.BorderForeground(p)
	t.Blurred.Base = bar.BorderForeground(lipgloss.Color("238"))

	for _, s := range []*lipgloss.Style{
		&t.Focused.Title,
		&t.Focused.SelectSelector,
		&t.Focused.SelectedOption,
		&t.Focused.SelectedPrefix,
		&t.Focused.TextInput.Prompt,
		&t.Focused.TextInput.Cursor,
	} {
		*s = s.Foreground(p)
	}
	t.Focused.Title = t.Focused.Title.Bold(true)
	t.Focused.ErrorMessage = errorStyle
	t.Focused.ErrorIndicator = errorStyle
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p).Bold(true)

	return t
}

// RunTUI launches the main menu
func RunTUI(ctx context.Context) error {
	var action string

	initialForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("👀 Preview Sessions (dry run)", "preview"),
					huh.NewOption("📅 Create Calendar Events", "sync"),
					huh.NewOption("🗑️ Delete Created Events", "delete"),
					huh.NewOption("🔄 Rebuild Event Log From Calendar", "resync"),
					huh.NewOption("⚙️ Settings", "config"),
				).
				Value(&action),
		),
	).WithTheme(Theme())

	if err := initialForm.Run(); err != nil {
		return err
	}

	switch action {
	case "sync":
		return RunSyncTUI(ctx)
	case "delete":
		return RunDeleteTUI(ctx)
	case "resync":
		return RunResyncTUI(ctx)
	case "config":
		return RunConfigTUI()
	}

	return RunPreviewTUI(ctx)
}
