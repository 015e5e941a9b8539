package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/pyvalrepr/stringtest"
)

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty": {
			input: "",
			want:  "",
		},
		"single line": {
			input: "\n[1, 2]\n",
			want:  "[1, 2]",
		},
		"common indent": {
			input: `
				[1111,
				 2222,
				 3333]
			`,
			want: "[1111,\n 2222,\n 3333]\n",
		},
		"tab indent": {
			input: "\n\tb: 2\n\tc: 3",
			want:  "b: 2\nc: 3",
		},
		"nested yaml": {
			input: `
    a: 1
    b:
      - x
      - true`,
			want: "a: 1\nb:\n  - x\n  - true",
		},
		"blank lines": {
			input: "\n    1\n    \n    ---\n\n    2",
			want:  "1\n\n---\n\n2",
		},
		"extra leading newline kept": {
			input: "\n\n'a'",
			want:  "\n'a'",
		},
		"already dedented": {
			input: "{'a': 1,\n 'b': 2}",
			want:  "{'a': 1,\n 'b': 2}",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}

func TestJoinLF(t *testing.T) {
	t.Parallel()

	assert.Empty(t, stringtest.JoinLF())
	assert.Equal(t, "[1]", stringtest.JoinLF("[1]"))
	assert.Equal(t, "[1,\n 2]", stringtest.JoinLF("[1,", " 2]"))
	assert.Equal(t, "a\n\nb", stringtest.JoinLF("a", "", "b"))
}

func TestLineWidths(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		markers []string
		want    []int
	}{
		"empty": {
			input: "",
			want:  []int{0},
		},
		"lines": {
			input: "[1111,\n 2222]",
			want:  []int{6, 6},
		},
		"counts runes": {
			input: "'café'",
			want:  []int{6},
		},
		"markers removed": {
			input:   "'abcdefg↵\nhijkl'",
			markers: []string{"↵"},
			want:    []int{8, 6},
		},
		"markers kept": {
			input: "'abcdefg↵\nhijkl'",
			want:  []int{9, 6},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.LineWidths(tc.input, tc.markers...))
		})
	}
}
