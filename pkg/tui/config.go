package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yogat3ch/30-day-scheduler/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load(ConfigPath)
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Signup Spreadsheet", "spreadsheet"),
						huh.NewOption("Set Target Calendar", "calendar"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(Theme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "spreadsheet":
			err = runSetSpreadsheetTUI(cfg)
		case "calendar":
			err = runSetCalendarTUI(cfg)
		case "view":
			err = printConfig(cfg)
		}

		if err != nil {
			return err
		}
	}
}

func printConfig(cfg *config.AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	fmt.Println(accentStyle.Render("\n--- Current Configuration ---"))
	fmt.Println(string(data))

	if err := cfg.Validate(); err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
	}
	return nil
}

func runSetSpreadsheetTUI(cfg *config.AppConfig) error {
	source := cfg.Spreadsheet.Source

	sourceForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where does the signup sheet come from?").
				Options(
					huh.NewOption("Google Sheets API", config.SourceGoogle),
					huh.NewOption("Local .xlsx export", config.SourceXLSX),
					huh.NewOption("Published to the web (no login)", config.SourceHTML),
				).
				Value(&source),
		),
	).WithTheme(Theme())

	if err := sourceForm.Run(); err != nil {
		return err
	}

	id := cfg.Spreadsheet.ID
	path := cfg.Spreadsheet.WorkbookPath

	var field huh.Field
	if source == config.SourceXLSX {
		field = huh.NewInput().
			Title("Path to the workbook").
			Placeholder("signup.xlsx").
			Value(&path).
			Validate(required)
	} else {
		field = huh.NewInput().
			Title("Spreadsheet ID").
			Description("For published sheets use the ID after /d/e/ in the published link.").
			Value(&id).
			Validate(required)
	}

	if err := huh.NewForm(huh.NewGroup(field)).WithTheme(Theme()).Run(); err != nil {
		return err
	}

	cfg.Spreadsheet.Source = source
	cfg.Spreadsheet.ID = strings.TrimSpace(id)
	cfg.Spreadsheet.WorkbookPath = strings.TrimSpace(path)

	if err := config.Save(ConfigPath, cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Signup sheet source saved: %s\n", source)))
	return nil
}

func runSetCalendarTUI(cfg *config.AppConfig) error {
	id := cfg.Calendar.ID
	tz := cfg.Calendar.TimeZone
	lookback := strconv.Itoa(cfg.Calendar.LookbackDays)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Calendar ID").
				Description("Use 'primary' for your own calendar.").
				Value(&id).
				Validate(required),
			huh.NewInput().
				Title("Time zone of the signup sheet").
				Value(&tz).
				Validate(func(str string) error {
					if _, err := time.LoadLocation(str); err != nil {
						return fmt.Errorf("unknown time zone")
					}
					return nil
				}),
			huh.NewInput().
				Title("Days to look back for existing events").
				Value(&lookback).
				Validate(func(str string) error {
					if n, err := strconv.Atoi(str); err != nil || n < 0 {
						return fmt.Errorf("must be a positive whole number")
					}
					return nil
				}),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Calendar.ID = strings.TrimSpace(id)
	cfg.Calendar.TimeZone = tz
	cfg.Calendar.LookbackDays, _ = strconv.Atoi(lookback)

	if err := config.Save(ConfigPath, cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Events will be created on: %s\n", cfg.Calendar.ID)))
	return nil
}

func required(str string) error {
	if strings.TrimSpace(str) == "" {
		return fmt.Errorf("a value is required")
	}
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Dusk Purple", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(Theme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(ValidateHexColor),
			),
		).WithTheme(Theme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		input = hexInput
	}

	keep := true
	previewForm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Keep this color?").
				Description("This form is drawn in the new accent.").
				Value(&keep),
		),
	).WithTheme(themeFor(input))

	if err := previewForm.Run(); err != nil {
		return err
	}
	if !keep {
		fmt.Println("Theme unchanged.")
		return nil
	}

	cfg.AccentColor = input
	if err := config.Save(ConfigPath, cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}

// ValidateHexColor accepts "#RRGGBB"
func ValidateHexColor(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	if _, err := strconv.ParseUint(str[1:], 16, 32); err != nil {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	return nil
}
