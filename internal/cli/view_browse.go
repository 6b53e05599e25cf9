package cli

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/alexanderramin/mapty/internal/contract"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type browseKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Filter key.Binding
	Quit   key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Filter, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultBrowseKeys = browseKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show on map")),
	Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// browseModel is a navigable workout list. Choosing a row records its id
// and quits; the caller resolves the id back to a workout.
type browseModel struct {
	records []contract.RenderRecord
	cursor  int
	keys    browseKeyMap
	help    help.Model

	filtering bool
	filter    string

	selected string
	quitting bool
}

// newBrowseModel takes records in insertion order and shows them newest first.
func newBrowseModel(records []contract.RenderRecord) *browseModel {
	reversed := make([]contract.RenderRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}
	return &browseModel{records: reversed, keys: defaultBrowseKeys, help: help.New()}
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *browseModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(visible) {
			m.selected = visible[m.cursor].ID
			m.quitting = true
			return m, tea.Quit
		}
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter = ""
	}
	return m, nil
}

func (m *browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
		m.cursor = 0
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyBackspace:
		if len(m.filter) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.filter)
			m.filter = m.filter[:len(m.filter)-size]
			m.cursor = 0
		}
	case tea.KeySpace:
		m.filter += " "
		m.cursor = 0
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	default:
		if msg.Type == tea.KeyRunes {
			m.filter += string(msg.Runes)
			m.cursor = 0
		}
	}
	return m, nil
}

func (m *browseModel) visible() []contract.RenderRecord {
	if m.filter == "" {
		return m.records
	}
	lf := strings.ToLower(m.filter)
	var filtered []contract.RenderRecord
	for _, r := range m.records {
		if strings.Contains(strings.ToLower(r.Description), lf) ||
			strings.HasPrefix(strings.ToLower(r.ID), lf) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (m *browseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Workouts") + "\n\n")

	if m.filtering || m.filter != "" {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + m.filter)
		if m.filtering {
			b.WriteString("█")
		}
		b.WriteString("\n\n")
	}

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No workouts found.") + "\n")
	}
	for i, r := range visible {
		cursor := "  "
		nameStyle := formatter.KindColor(r.Kind)
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = nameStyle.Bold(true)
		}
		metrics := formatter.Metrics(r)
		fmt.Fprintf(&b, "%s%s %s  %s\n",
			cursor,
			r.Emoji,
			nameStyle.Render(padRight(r.Description, 24)),
			formatter.Dim(strings.Join(metrics, "  ")),
		)
	}

	b.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return b.String()
}

// padRight pads a string to a minimum width, truncating if needed.
func padRight(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Pick a workout from an interactive list and show it on the map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("browse needs an interactive terminal; use 'mapty list' and 'mapty show ID'")
			}
			ctx := context.Background()
			model := newBrowseModel(renderRecords(app.Workouts.List(ctx)))

			p := tea.NewProgram(model,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}

			id := final.(*browseModel).selected
			if id == "" {
				return nil
			}
			w, err := app.Workouts.GetByID(ctx, id)
			if err != nil {
				return err
			}
			showWorkout(app, cmd.OutOrStdout(), w)
			return nil
		},
	}
}
