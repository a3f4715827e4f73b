// Package event implements stage three of the parsing pipeline: decoding the parameter
// slice of a raw event into a typed payload, dispatched by event-type tag.
package event

import (
	"bytes"
	"strconv"

	"github.com/tf2stats/logparser/rawevent"
)

// Error is returned by a payload decoder when the parameter slice does not match the
// shape expected for its event-type tag.
type Error struct {
	Tag rawevent.EventType
	Msg string
}

func (e *Error) Error() string {
	return "malformed event (" + e.Msg + ")"
}

func decodeErr(tag rawevent.EventType, msg string) error {
	return &Error{Tag: tag, Msg: msg}
}

// ParamIter scans a parameter blob for `key "value"` pairs, each optionally wrapped in
// parentheses, separated by a single space. It is used to walk the full blob for
// optional named fields.
type ParamIter struct {
	b []byte
}

// NewParamIter returns a scanner over b.
func NewParamIter(b []byte) *ParamIter {
	return &ParamIter{b: b}
}

// Next returns the next (key, value) pair and true, or (nil, nil, false) once the blob
// is exhausted or malformed.
func (p *ParamIter) Next() (key, value []byte, ok bool) {
	key, value, rest, ok := parsePair(p.b)
	if !ok {
		return nil, nil, false
	}
	p.b = rest
	return key, value, true
}

// Rest returns the unconsumed remainder of the blob.
func (p *ParamIter) Rest() []byte {
	return p.b
}

// parsePair parses one optionally-parenthesised `key "value"` pair from the front of b.
func parsePair(b []byte) (key, value, rest []byte, ok bool) {
	b = skipSpaces(b)
	if len(b) == 0 {
		return nil, nil, nil, false
	}
	parenthesised := b[0] == '('
	if parenthesised {
		b = b[1:]
	}
	keyEnd := 0
	for keyEnd < len(b) && isAlpha(b[keyEnd]) {
		keyEnd++
	}
	if keyEnd == 0 {
		return nil, nil, nil, false
	}
	key = b[:keyEnd]
	b = b[keyEnd:]
	if len(b) < 2 || b[0] != ' ' || b[1] != '"' {
		return nil, nil, nil, false
	}
	b = b[2:]
	end := bytes.IndexByte(b, '"')
	if end < 0 {
		return nil, nil, nil, false
	}
	value = b[:end]
	b = b[end+1:]
	if parenthesised {
		if len(b) == 0 || b[0] != ')' {
			return nil, nil, nil, false
		}
		b = b[1:]
	}
	return key, value, b, true
}

// namedField parses the `key "value"` pair at the front of b and succeeds only if its key
// is name, returning the value and the remainder after the pair. It is used for required
// named fields, which are expected immediately at the current position (never searched
// ahead across other fields).
func namedField(b []byte, name string) (value, rest []byte, ok bool) {
	key, value, rest, ok := parsePair(b)
	if !ok || string(key) != name {
		return nil, nil, false
	}
	return value, rest, true
}

// positionalField reads a quoted or bare token from the front of b: if the next byte is
// a quote, the value is the quoted substring; else it is everything up to the next
// space or the end of b.
func positionalField(b []byte) (value, rest []byte, ok bool) {
	b = skipSpaces(b)
	if len(b) == 0 {
		return nil, nil, false
	}
	if b[0] == '"' {
		end := bytes.IndexByte(b[1:], '"')
		if end < 0 {
			return nil, nil, false
		}
		return b[1 : 1+end], b[2+end:], true
	}
	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return b, nil, true
	}
	return b[:end], b[end+1:], true
}

func skipSpaces(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == ' ' {
		i++
	}
	return b[i:]
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func parseInt(s []byte) (int64, bool) {
	v, err := strconv.ParseInt(string(s), 10, 64)
	return v, err == nil
}

func parseUint(s []byte) (uint64, bool) {
	v, err := strconv.ParseUint(string(s), 10, 64)
	return v, err == nil
}

func parseFloat(s []byte) (float64, bool) {
	v, err := strconv.ParseFloat(string(s), 64)
	return v, err == nil
}

// Position is a 3-tuple of whitespace-separated integers, used for attacker/victim
// coordinates.
type Position struct {
	X, Y, Z int64
}

func parsePosition(s []byte) (Position, bool) {
	parts := bytes.Fields(s)
	if len(parts) != 3 {
		return Position{}, false
	}
	x, ok := parseInt(parts[0])
	if !ok {
		return Position{}, false
	}
	y, ok := parseInt(parts[1])
	if !ok {
		return Position{}, false
	}
	z, ok := parseInt(parts[2])
	if !ok {
		return Position{}, false
	}
	return Position{X: x, Y: y, Z: z}, true
}

// namedSubjectField scans a `name "descriptor"` field from the front of b, using the
// permissive `>"`-terminator splitter (rather than the first `"`) because a player name
// may itself contain a quote.
func namedSubjectField(b []byte, name string) (d rawevent.Descriptor, rest []byte, ok bool) {
	b = skipSpaces(b)
	parenthesised := false
	if len(b) > 0 && b[0] == '(' {
		parenthesised = true
		b = b[1:]
	}
	if len(b) < len(name) || string(b[:len(name)]) != name {
		return rawevent.Descriptor{}, b, false
	}
	b = b[len(name):]
	if len(b) < 2 || b[0] != ' ' || b[1] != '"' {
		return rawevent.Descriptor{}, b, false
	}
	b = b[1:]
	d, rest, ok = rawevent.ParseSubjectField(b)
	if !ok {
		return rawevent.Descriptor{}, b, false
	}
	if parenthesised {
		if len(rest) == 0 || rest[0] != ')' {
			return rawevent.Descriptor{}, rest, false
		}
		rest = rest[1:]
	}
	return d, rest, true
}

// positionalSubjectField reads a quoted subject descriptor from the front of b using the
// same permissive terminator.
func positionalSubjectField(b []byte) (d rawevent.Descriptor, rest []byte, ok bool) {
	b = skipSpaces(b)
	return rawevent.ParseSubjectField(b)
}

// scanSubjectField finds an optional, subject-valued named field anywhere in b: fields
// ahead of it are skipped generically until name is found at the front, then it is
// parsed permissively. Used for optional subject fields like KilledObjectEvent's
// objectowner, which may follow other optional fields in any order.
func scanSubjectField(b []byte, name string) (rawevent.Descriptor, bool) {
	for len(b) > 0 {
		if d, _, ok := namedSubjectField(b, name); ok {
			return d, true
		}
		_, _, rest, ok := parsePair(b)
		if !ok || len(rest) >= len(b) {
			return rawevent.Descriptor{}, false
		}
		b = rest
	}
	return rawevent.Descriptor{}, false
}
