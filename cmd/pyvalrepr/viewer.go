package main

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/pyvalrepr/colorize"
	"go.jacobcolvin.com/pyvalrepr/markup"
)

const (
	widthStep = 5
	minWidth  = 10
)

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
)

// viewer is the bubbletea model of the interactive viewer. It re-renders
// its input whenever the layout budget changes.
type viewer struct {
	result      *colorize.Result
	err         error
	logger      *slog.Logger
	theme       markup.Theme
	input       input
	cfg         colorize.Config
	windowWidth int
}

func newViewer(in input, cfg *colorize.Config, logger *slog.Logger) *viewer {
	v := &viewer{
		input:  in,
		cfg:    *cfg,
		logger: logger,
		theme:  markup.DefaultTheme(),
	}

	// Width and breaks are adjusted interactively.
	v.cfg.Inline = false
	v.render()

	return v
}

func runViewer(v *viewer) error {
	_, err := tea.NewProgram(v).Run()
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}

	return nil
}

func (v *viewer) render() {
	col, err := v.cfg.NewColorizer(v.logger)
	if err != nil {
		v.result, v.err = nil, err

		return
	}

	v.result, v.err = v.cfg.Colorize(col, v.input.value)
}

// Init implements [tea.Model].
func (v *viewer) Init() tea.Cmd {
	return nil
}

// Update handles key presses and resizes.
func (v *viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return v, v.key(msg.String())
	case tea.WindowSizeMsg:
		v.windowWidth = msg.Width
	}

	return v, nil
}

func (v *viewer) key(k string) tea.Cmd {
	switch k {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "left", "h":
		v.cfg.LineWidth = max(v.cfg.LineWidth-widthStep, minWidth)
	case "right", "l":
		v.cfg.LineWidth = max(v.cfg.LineWidth+widthStep, minWidth)
	case "up", "k":
		v.cfg.MaxLines++
	case "down", "j":
		v.cfg.MaxLines = max(v.cfg.MaxLines-1, 1)
	case "b":
		v.cfg.NoLineBreaks = !v.cfg.NoLineBreaks
	case "f":
		if v.windowWidth == 0 {
			return nil
		}

		v.cfg.LineWidth = v.windowWidth
	default:
		return nil
	}

	v.logger.Debug("layout changed",
		slog.Int("width", v.cfg.LineWidth),
		slog.Int("lines", v.cfg.MaxLines),
		slog.Bool("breaks", !v.cfg.NoLineBreaks),
	)

	v.render()

	return nil
}

// View implements [tea.Model].
func (v *viewer) View() tea.View {
	view := tea.NewView(v.content())
	view.AltScreen = true

	return view
}

func (v *viewer) content() string {
	var body string
	if v.err != nil {
		body = errorStyle.Render(v.err.Error())
	} else {
		body = markup.ANSI(v.result.Document, v.theme)
	}

	lines := strings.Split(body, "\n")
	if v.windowWidth > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, v.windowWidth, "…")
		}
	}

	return strings.Join(lines, "\n") + "\n\n" + v.status()
}

func (v *viewer) status() string {
	breaks := "on"
	if v.cfg.NoLineBreaks {
		breaks = "off"
	}

	s := fmt.Sprintf("%s | width %d | lines %d | breaks %s",
		v.input.name, v.cfg.LineWidth, v.cfg.MaxLines, breaks)

	if v.result != nil {
		s += fmt.Sprintf(" | score %d", v.result.Score)
		if !v.result.Complete {
			s += " | truncated"
		}
	}

	s += " | ←/→ width ↑/↓ lines b breaks f fit q quit"

	if v.windowWidth > 0 {
		s = ansi.Truncate(s, v.windowWidth, "…")
	}

	return statusStyle.Render(s)
}
