package sre

import "strings"

// Flag is a set of pattern flags, with the bit values Python uses.
type Flag int

// Pattern flags.
const (
	FlagTemplate   Flag = 1
	FlagIgnoreCase Flag = 2
	FlagLocale     Flag = 4
	FlagMultiline  Flag = 8
	FlagDotAll     Flag = 16
	FlagUnicode    Flag = 32
	FlagVerbose    Flag = 64
	FlagASCII      Flag = 256
)

// flagLetters is sorted by letter, which is the order letters are rendered in.
var flagLetters = []struct {
	letter byte
	flag   Flag
}{
	{'L', FlagLocale},
	{'a', FlagASCII},
	{'i', FlagIgnoreCase},
	{'m', FlagMultiline},
	{'s', FlagDotAll},
	{'t', FlagTemplate},
	{'u', FlagUnicode},
	{'x', FlagVerbose},
}

var flagNames = []struct {
	name string
	flag Flag
}{
	{"re.TEMPLATE", FlagTemplate},
	{"re.IGNORECASE", FlagIgnoreCase},
	{"re.LOCALE", FlagLocale},
	{"re.MULTILINE", FlagMultiline},
	{"re.DOTALL", FlagDotAll},
	{"re.UNICODE", FlagUnicode},
	{"re.VERBOSE", FlagVerbose},
	{"re.ASCII", FlagASCII},
}

// Letters returns the inline flag letters set in f, e.g. "im".
func (f Flag) Letters() string {
	var sb strings.Builder

	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			sb.WriteByte(fl.letter)
		}
	}

	return sb.String()
}

// String returns f as Python flag names joined with `|`, or "0".
func (f Flag) String() string {
	var names []string

	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}

	if len(names) == 0 {
		return "0"
	}

	return strings.Join(names, "|")
}

func flagForLetter(c rune) (Flag, bool) {
	for _, fl := range flagLetters {
		if rune(fl.letter) == c {
			return fl.flag, true
		}
	}

	return 0, false
}
