package main

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/pyvalrepr/colorize"
	"go.jacobcolvin.com/pyvalrepr/pyval"
)

func newTestViewer(t *testing.T) *viewer {
	t.Helper()

	cfg := colorize.NewConfig()
	cfg.LineWidth = 20
	cfg.MaxLines = 3

	list := make(pyval.List, 0, 10)
	for i := range 10 {
		list = append(list, pyval.NewInt(int64(1000+i)))
	}

	v := newViewer(input{name: "numbers", value: list}, cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, v.err)
	require.NotNil(t, v.result)

	return v
}

func TestViewerKeys(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		keys       []string
		wantWidth  int
		wantLines  int
		wantBreaks bool
	}{
		"initial": {
			wantWidth: 20, wantLines: 3, wantBreaks: true,
		},
		"wider": {
			keys:      []string{"right", "l"},
			wantWidth: 30, wantLines: 3, wantBreaks: true,
		},
		"narrower stops at minimum": {
			keys:      []string{"left", "left", "h"},
			wantWidth: minWidth, wantLines: 3, wantBreaks: true,
		},
		"more lines": {
			keys:      []string{"up", "k"},
			wantWidth: 20, wantLines: 5, wantBreaks: true,
		},
		"fewer lines stops at one": {
			keys:      []string{"down", "down", "down", "j"},
			wantWidth: 20, wantLines: 1, wantBreaks: true,
		},
		"toggle breaks": {
			keys:      []string{"b"},
			wantWidth: 20, wantLines: 3, wantBreaks: false,
		},
		"fit without window size": {
			keys:      []string{"f"},
			wantWidth: 20, wantLines: 3, wantBreaks: true,
		},
		"unknown key": {
			keys:      []string{"x"},
			wantWidth: 20, wantLines: 3, wantBreaks: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v := newTestViewer(t)

			for _, k := range tc.keys {
				assert.Nil(t, v.key(k))
			}

			assert.Equal(t, tc.wantWidth, v.cfg.LineWidth)
			assert.Equal(t, tc.wantLines, v.cfg.MaxLines)
			assert.Equal(t, tc.wantBreaks, !v.cfg.NoLineBreaks)
		})
	}
}

func TestViewerRerenders(t *testing.T) {
	t.Parallel()

	v := newTestViewer(t)
	assert.False(t, v.result.Complete)

	before := v.result.String()

	for range 7 {
		v.key("up")
	}

	assert.NotEqual(t, before, v.result.String())
	assert.True(t, v.result.Complete)
	assert.Len(t, strings.Split(v.result.String(), "\n"), 10)
}

func TestViewerQuit(t *testing.T) {
	t.Parallel()

	for _, k := range []string{"q", "esc", "ctrl+c"} {
		v := newTestViewer(t)

		cmd := v.key(k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestViewerWindowSize(t *testing.T) {
	t.Parallel()

	v := newTestViewer(t)

	_, cmd := v.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Nil(t, cmd)
	assert.Equal(t, 40, v.windowWidth)

	v.key("f")
	assert.Equal(t, 40, v.cfg.LineWidth)

	for line := range strings.SplitSeq(ansi.Strip(v.content()), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40)
	}
}

func TestViewerStatus(t *testing.T) {
	t.Parallel()

	v := newTestViewer(t)

	status := ansi.Strip(v.status())
	assert.Contains(t, status, "numbers | width 20 | lines 3 | breaks on")
	assert.Contains(t, status, "truncated")

	v.key("b")

	assert.Contains(t, ansi.Strip(v.status()), "breaks off")
}

func TestViewerError(t *testing.T) {
	t.Parallel()

	v := newTestViewer(t)
	v.cfg.MaxLines = 0
	v.render()

	require.ErrorIs(t, v.err, colorize.ErrInvalidOption)
	assert.Contains(t, ansi.Strip(v.content()), "max lines must be at least 1")
}
