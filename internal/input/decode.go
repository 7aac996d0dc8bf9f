package input

import "unicode/utf8"

const esc = 0x1b

// decode parses as many complete key presses from data as possible and
// reports how many bytes were consumed. An incomplete escape or UTF-8
// sequence at the end is left for the next read.
func decode(data []byte) ([]Event, int) {
	var out []Event
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b == esc:
			n, ev := decodeEscape(data[i:])
			if n == 0 {
				return out, i
			}
			if ev.Key != KeyNone {
				out = append(out, ev)
			}
			i += n
		case b < 0x20:
			if ev := decodeControl(b); ev.Key != KeyNone {
				out = append(out, ev)
			}
			i++
		case b == 0x7f:
			out = append(out, Event{Key: KeyBackspace})
			i++
		case b < 0x80:
			out = append(out, Event{Key: KeyRune, Rune: rune(b)})
			i++
		default:
			if !utf8.FullRune(data[i:]) {
				return out, i
			}
			r, size := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError {
				out = append(out, Event{Key: KeyRune, Rune: r})
			}
			i += size
		}
	}
	return out, i
}

// decodeStale handles bytes still buffered once no continuation arrived in
// time: a leading ESC is a key of its own and the rest decodes normally,
// with any unfinished tail dropped.
func decodeStale(data []byte) []Event {
	if len(data) == 0 {
		return nil
	}
	if data[0] != esc {
		out, _ := decode(data)
		return out
	}
	rest, _ := decode(data[1:])
	return append([]Event{{Key: KeyEscape}}, rest...)
}

// decodeEscape returns 0 when more bytes are needed.
func decodeEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}
	switch next := data[1]; {
	case next == esc:
		// A double tap: the first ESC is a key of its own.
		return 1, Event{Key: KeyEscape}
	case next == '[':
		return decodeCSI(data)
	case next == 'O':
		if len(data) < 3 {
			return 0, Event{}
		}
		return 3, Event{Key: ss3Keys[data[2]]}
	case next < 0x20:
		ev := decodeControl(next)
		ev.Mod |= ModAlt
		return 2, ev
	case next < 0x7f:
		return 2, Event{Key: KeyRune, Rune: rune(next), Mod: ModAlt}
	}
	// ESC followed by something unexpected: report the escape on its own.
	return 1, Event{Key: KeyEscape}
}

var ss3Keys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var csiFinalKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var csiTildeKeys = map[int]Key{
	1: KeyHome,
	2: KeyInsert,
	3: KeyDelete,
	4: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
	7: KeyHome,
	8: KeyEnd,
}

const maxCSI = 16

func decodeCSI(data []byte) (int, Event) {
	end := 2
	for ; end < len(data) && end < maxCSI; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			break
		}
		if b < 0x20 || b > 0x7e {
			// Not a CSI after all; treat the ESC as a key.
			return 1, Event{Key: KeyEscape}
		}
	}
	if end >= len(data) {
		if end >= maxCSI {
			return len(data), Event{}
		}
		return 0, Event{}
	}
	if end >= maxCSI {
		return end, Event{}
	}
	params := parseParams(data[2:end])
	final := data[end]
	n := end + 1

	var ev Event
	switch {
	case final == '~' && len(params) > 0:
		ev.Key = csiTildeKeys[params[0]]
	case final == 'Z':
		ev = Event{Key: KeyTab, Mod: ModShift}
	default:
		ev.Key = csiFinalKeys[final]
	}
	if ev.Key == KeyNone {
		return n, Event{}
	}
	if len(params) > 1 && params[1] > 1 {
		ev.Mod |= modifierParam(params[1])
	}
	return n, ev
}

func parseParams(raw []byte) []int {
	var params []int
	cur, seen := 0, false
	for _, b := range raw {
		switch {
		case b >= '0' && b <= '9':
			cur = cur*10 + int(b-'0')
			seen = true
		case b == ';':
			params = append(params, cur)
			cur, seen = 0, false
		}
	}
	if seen || len(params) > 0 {
		params = append(params, cur)
	}
	return params
}

// modifierParam maps the xterm "1 + bits" modifier parameter.
func modifierParam(p int) Mod {
	bits := p - 1
	var m Mod
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

func decodeControl(b byte) Event {
	switch b {
	case '\r', '\n':
		return Event{Key: KeyEnter}
	case '\t':
		return Event{Key: KeyTab}
	case 0x08:
		return Event{Key: KeyBackspace}
	case esc:
		return Event{Key: KeyEscape}
	case 0x00:
		return Event{Key: KeyRune, Rune: ' ', Mod: ModCtrl}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Key: KeyRune, Rune: rune('a' + b - 1), Mod: ModCtrl}
	}
	return Event{}
}
