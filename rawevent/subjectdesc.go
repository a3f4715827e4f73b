package rawevent

import "bytes"

// DescriptorKind distinguishes the five shapes a subject descriptor can take in the raw
// log text, before any identity resolution has happened.
type DescriptorKind uint8

const (
	DescPlayer DescriptorKind = iota
	DescTeam
	DescSystem
	DescConsole
	DescWorld
)

// Team is the closed set of teams a Team-kind subject (or a player's team field) can
// name.
type Team uint8

const (
	Red Team = iota
	Blue
	Spectator
)

// Descriptor is the raw, unresolved "who triggered this event" view borrowed from the
// input line. Raw holds the descriptor text with enclosing quotes stripped for Player
// and Console subjects, and the bracket/bare name for System subjects; it is empty for
// Team and World. TeamOf is only meaningful when Kind is DescTeam.
type Descriptor struct {
	Kind   DescriptorKind
	Raw    string
	TeamOf Team
}

// subjectTerminator is the 2-byte sequence that ends a quoted subject. Splitting on this
// rather than the first '"' is required because player names themselves may contain
// quotes.
var subjectTerminator = []byte(`>"`)

// parseSubject extracts the subject descriptor starting at b[0] and returns it along
// with the remainder of the line following the subject and its single trailing space.
// Subject extraction is permissive and never fails: unrecognised shapes fall back to a
// best-effort System/Console reading.
func parseSubject(b []byte) (Descriptor, []byte) {
	if len(b) == 0 {
		return Descriptor{Kind: DescConsole}, b
	}
	if b[0] == '"' {
		return parseQuotedSubject(b)
	}
	if bytes.HasPrefix(b, []byte("Te")) {
		if d, rest, ok := parseTeamSubject(b); ok {
			return d, rest
		}
	}
	return parseSystemSubject(b)
}

// ParseSubjectField parses a subject-valued event parameter (e.g. the value of an
// `against "Name<id><steam><team>"` field). It uses the same permissive `>"`-terminator
// splitter as the line-level quoted subject, since player names may themselves contain
// `"`. b must start with the opening quote. It returns the descriptor and the remainder
// of b following the closing quote (with no space consumed, unlike parseQuotedSubject).
func ParseSubjectField(b []byte) (Descriptor, []byte, bool) {
	if len(b) == 0 || b[0] != '"' {
		return Descriptor{}, b, false
	}
	idx := bytes.Index(b[1:], subjectTerminator)
	if idx < 0 {
		return Descriptor{}, b, false
	}
	end := 1 + idx + len(subjectTerminator)
	inner := string(b[1 : end-1])
	kind := DescPlayer
	if len(inner) >= 3 && inner[len(inner)-3:] == "le>" {
		kind = DescConsole
	}
	return Descriptor{Kind: kind, Raw: inner}, b[end:], true
}

func parseQuotedSubject(b []byte) (Descriptor, []byte) {
	idx := bytes.Index(b[1:], subjectTerminator)
	if idx < 0 {
		// Unterminated quoted subject: permissive fallback to Console, consuming the
		// rest of the line.
		return Descriptor{Kind: DescConsole}, nil
	}
	end := 1 + idx + len(subjectTerminator)
	inner := string(b[1 : end-1]) // drop the leading and trailing quote
	rest := skipOneSpace(b[end:])

	kind := DescPlayer
	if len(inner) >= 3 && inner[len(inner)-3:] == "le>" {
		kind = DescConsole
	}
	return Descriptor{Kind: kind, Raw: inner}, rest
}

func parseTeamSubject(b []byte) (Descriptor, []byte, bool) {
	const prefix = `Team "`
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return Descriptor{}, nil, false
	}
	tail := b[len(prefix):]
	idx := bytes.IndexByte(tail, '"')
	if idx < 0 {
		return Descriptor{}, nil, false
	}
	name := tail[:idx]
	rest := skipOneSpace(tail[idx+1:])
	team := Spectator
	if len(name) > 0 {
		switch name[0] | 0x20 {
		case 'r':
			team = Red
		case 'b':
			team = Blue
		}
	}
	return Descriptor{Kind: DescTeam, TeamOf: team}, rest, true
}

func parseSystemSubject(b []byte) (Descriptor, []byte) {
	idx := bytes.IndexByte(b, ' ')
	var name []byte
	var rest []byte
	if idx < 0 {
		name = b
		rest = nil
	} else {
		name = b[:idx]
		rest = b[idx+1:]
	}
	if string(name) == "World" {
		return Descriptor{Kind: DescWorld}, rest
	}
	return Descriptor{Kind: DescSystem, Raw: string(name)}, rest
}

func skipOneSpace(b []byte) []byte {
	if len(b) > 0 && b[0] == ' ' {
		return b[1:]
	}
	return b
}
