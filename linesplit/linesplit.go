// Package linesplit implements stage one of the parsing pipeline: splitting a raw log
// buffer into individual event lines along the "\nL " delimiter.
package linesplit

import "bytes"

// delimiter is the exact 3-byte sequence separating log lines.
var delimiter = []byte("\nL ")

// Lines is a lazy sequence of line slices borrowed from buf. It never allocates; each
// call to Next returns a subslice of the original buffer.
type Lines struct {
	buf     []byte
	started bool
	done    bool
}

// New returns a lazy line sequence over buf. Splitting is infallible over any byte
// sequence, including malformed UTF-8 — downstream stages assume valid UTF-8 text, but
// the splitter itself makes no such assumption.
func New(buf []byte) *Lines {
	return &Lines{buf: buf}
}

// Next returns the next line slice and true, or (nil, false) once the sequence is
// exhausted. Empty slices are not filtered here; downstream stages treat them as
// ignorable.
func (l *Lines) Next() ([]byte, bool) {
	if l.done {
		return nil, false
	}
	if !l.started {
		l.started = true
		l.buf = trimPrefix(l.buf)
	}
	idx := bytes.Index(l.buf, delimiter)
	if idx < 0 {
		line := trimTrailingNewline(l.buf)
		l.buf = nil
		l.done = true
		return line, true
	}
	line := l.buf[:idx]
	l.buf = l.buf[idx+len(delimiter):]
	return line, true
}

// trimPrefix implements the first-invocation contract: if the buffer begins with a
// byte-order mark or a non-"L " prefix, advance past the first "L " (if any) and discard
// everything before it; else discard the first two bytes ("L ").
func trimPrefix(buf []byte) []byte {
	if hasBOM(buf) || !bytes.HasPrefix(buf, []byte("L ")) {
		if idx := bytes.Index(buf, []byte("L ")); idx >= 0 {
			return buf[idx+2:]
		}
		return buf
	}
	return buf[2:]
}

func hasBOM(buf []byte) bool {
	bom := []byte{0xEF, 0xBB, 0xBF}
	return bytes.HasPrefix(buf, bom)
}

func trimTrailingNewline(buf []byte) []byte {
	if len(buf) > 0 && buf[len(buf)-1] == '\n' {
		return buf[:len(buf)-1]
	}
	return buf
}
