// Package seq recognizes the terminal control sequences the surface model
// treats as zero-width units.
package seq

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// ESC introduces every recognized sequence.
const ESC = '\x1b'

// Kind identifies the family of a recognized control sequence.
type Kind int

const (
	KindNone Kind = iota
	KindCursorMove
	KindCursorVisibility
	KindCursorSaveRestore
	KindColor
	KindErase
	KindScroll
	KindQuery
	KindMode
	KindPalette
	KindCharset
	KindSimple
)

var kindNames = map[Kind]string{
	KindNone:              "none",
	KindCursorMove:        "cursor-move",
	KindCursorVisibility:  "cursor-visibility",
	KindCursorSaveRestore: "cursor-save-restore",
	KindColor:             "color",
	KindErase:             "erase",
	KindScroll:            "scroll",
	KindQuery:             "query",
	KindMode:              "mode",
	KindPalette:           "palette",
	KindCharset:           "charset",
	KindSimple:            "simple",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Match describes a recognized sequence. Len counts runes, ESC included.
type Match struct {
	Kind Kind
	Len  int
}

// maxSequence bounds how much of the text is handed to the decoder. The
// longest shape (an rgb palette assignment) is well below it.
const maxSequence = 48

// Parsers are sized so that no candidate can overflow the parameter buffer.
var parsers = sync.Pool{
	New: func() any {
		p := new(ansi.Parser)
		p.SetParamsSize(maxSequence)
		p.SetDataSize(maxSequence)
		return p
	},
}

// Classify reports whether text[pos] starts a recognized control sequence.
// Anything else, including malformed sequences, is not a match and the
// escape is to be treated as a literal character.
func Classify(text []rune, pos int) (Match, bool) {
	if pos < 0 || pos >= len(text) || text[pos] != ESC {
		return Match{}, false
	}
	end := min(pos+maxSequence, len(text))
	candidate := string(text[pos:end])

	p := parsers.Get().(*ansi.Parser)
	defer parsers.Put(p)
	raw, _, _, state := ansi.DecodeSequence(candidate, ansi.NormalState, p)
	if state != ansi.NormalState || len(raw) < 2 {
		return Match{}, false
	}
	kind := classify(raw, ansi.Cmd(p.Command()))
	if kind == KindNone {
		return Match{}, false
	}
	return Match{Kind: kind, Len: utf8.RuneCountInString(raw)}, true
}

// ClassifyString is Classify over a string, with pos as a rune offset.
func ClassifyString(text string, pos int) (Match, bool) {
	return Classify([]rune(text), pos)
}

func classify(raw string, cmd ansi.Cmd) Kind {
	switch raw[1] {
	case '[':
		return classifyCSI(raw, cmd)
	case ']':
		if isPalette(raw) {
			return KindPalette
		}
		return KindNone
	}
	return classifyESC(raw, cmd)
}

func classifyESC(raw string, cmd ansi.Cmd) Kind {
	final := cmd.Final()
	if final == 0 || raw[len(raw)-1] != final {
		return KindNone
	}
	switch cmd.Intermediate() {
	case 0:
		if len(raw) != 2 {
			return KindNone
		}
	case '(':
		if len(raw) == 3 && (final == '0' || final == 'B') {
			return KindCharset
		}
		return KindNone
	default:
		return KindNone
	}
	switch final {
	case '7', '8':
		return KindCursorSaveRestore
	case '=', '>', 'M', 'c', 'D', 'E':
		return KindSimple
	}
	return KindNone
}

func classifyCSI(raw string, cmd ansi.Cmd) Kind {
	final := cmd.Final()
	if final == 0 || raw[len(raw)-1] != final {
		return KindNone
	}
	params := raw[2 : len(raw)-1]
	prefix, intermediate := cmd.Prefix(), cmd.Intermediate()
	if prefix != 0 {
		if !strings.HasPrefix(params, string(prefix)) {
			return KindNone
		}
		params = params[1:]
	}
	if intermediate != 0 {
		if !strings.HasSuffix(params, string(intermediate)) {
			return KindNone
		}
		params = params[:len(params)-1]
	}

	switch {
	case prefix == '?' && intermediate == 0:
		if final != 'h' && final != 'l' {
			return KindNone
		}
		if params == "25" {
			return KindCursorVisibility
		}
		if isNumber(params, 1, 4) {
			return KindMode
		}
		return KindNone
	case prefix != 0:
		return KindNone
	case intermediate == '!':
		if final == 'p' && params == "" {
			return KindQuery
		}
		return KindNone
	case intermediate != 0:
		return KindNone
	}

	switch final {
	case 'H', 'f':
		row, col, found := strings.Cut(params, ";")
		if isNumber(row, 0, 4) && (!found || isNumber(col, 0, 4)) {
			return KindCursorMove
		}
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G':
		if isNumber(params, 0, 4) {
			return KindCursorMove
		}
	case 's', 'u':
		if params == "" {
			return KindCursorSaveRestore
		}
	case 'm':
		if len(params) <= 32 && strings.Trim(params, "0123456789;:") == "" {
			return KindColor
		}
	case 'J', 'K':
		if params == "" || (len(params) == 1 && params[0] >= '0' && params[0] <= '3') {
			return KindErase
		}
	case 'S', 'T':
		if isNumber(params, 0, 4) {
			return KindScroll
		}
	case 'n':
		if params == "6" {
			return KindQuery
		}
	}
	return KindNone
}

// isPalette accepts OSC 4 rgb assignments, either as three decimal
// components or in the rgb:hex/hex/hex form, terminated by BEL or ST.
func isPalette(raw string) bool {
	var body string
	switch {
	case strings.HasSuffix(raw, "\a"):
		body = raw[2 : len(raw)-1]
	case strings.HasSuffix(raw, "\x1b\\"):
		body = raw[2 : len(raw)-2]
	default:
		return false
	}
	body, ok := strings.CutPrefix(body, "4;")
	if !ok {
		return false
	}
	index, spec, ok := strings.Cut(body, ";")
	if !ok || !isNumber(index, 1, 3) {
		return false
	}
	spec, ok = strings.CutPrefix(spec, "rgb")
	if !ok || spec == "" {
		return false
	}
	var parts []string
	switch spec[0] {
	case ';':
		parts = strings.Split(spec[1:], ";")
		if len(parts) != 3 {
			return false
		}
		for _, part := range parts {
			if !isNumber(part, 1, 3) {
				return false
			}
		}
	case ':':
		parts = strings.Split(spec[1:], "/")
		if len(parts) != 3 {
			return false
		}
		for _, part := range parts {
			if !isHex(part, 1, 4) {
				return false
			}
		}
	default:
		return false
	}
	return true
}

func isNumber(s string, minDigits, maxDigits int) bool {
	if len(s) < minDigits || len(s) > maxDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isHex(s string, minDigits, maxDigits int) bool {
	if len(s) < minDigits || len(s) > maxDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'f') && !(c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
