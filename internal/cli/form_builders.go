package cli

import (
	"errors"
	"math"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func maptyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validatePositive(s string) error {
	v := domain.ParseNumber(s)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("must be a number")
	}
	if v <= 0 {
		return errors.New("must be a positive number")
	}
	return nil
}

func validateNonNegative(s string) error {
	v := domain.ParseNumber(s)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("must be a number")
	}
	if v < 0 {
		return errors.New("cannot be negative")
	}
	return nil
}

func validateDegrees(limit float64) func(string) error {
	return func(s string) error {
		v := domain.ParseNumber(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("must be a number")
		}
		if math.Abs(v) > limit {
			return errors.New("out of range")
		}
		return nil
	}
}

func numberInput(title, placeholder string, value *string, validate func(string) error) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validate)
}

// addForm collects a workout. The cadence field shows only for running and
// the elevation field only for cycling.
func addForm(in *addInput) *huh.Form {
	if in.Kind == "" {
		in.Kind = string(domain.KindRunning)
	}
	isCycling := func() bool { return in.Kind == string(domain.KindCycling) }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption(domain.KindRunning.Emoji()+" Running", string(domain.KindRunning)),
					huh.NewOption(domain.KindCycling.Emoji()+" Cycling", string(domain.KindCycling)),
				).
				Value(&in.Kind),
			numberInput("Latitude", "39.3999", &in.Lat, validateDegrees(90)),
			numberInput("Longitude", "-8.2245", &in.Lng, validateDegrees(180)),
		),
		huh.NewGroup(
			numberInput("Distance", "km", &in.Distance, validatePositive),
			numberInput("Duration", "min", &in.Duration, validatePositive),
		),
		huh.NewGroup(
			numberInput("Cadence", "step/min", &in.Cadence, validatePositive),
		).WithHideFunc(isCycling),
		huh.NewGroup(
			numberInput("Elev Gain", "meters", &in.Elevation, validateNonNegative),
		).WithHideFunc(func() bool { return !isCycling() }),
	).WithTheme(maptyHuhTheme()).WithShowHelp(false)
}
