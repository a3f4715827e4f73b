package rawevent

// Status classifies the outcome of parsing a single line into a RawEvent.
type Status uint8

const (
	// OK means a RawEvent was produced. Type may still be Unknown if the line's verb
	// did not match any entry in the keyword table; that is not an error at this
	// stage, it is left for the typed-event decoder to reject or ignore.
	OK Status = iota
	// Skip means the line is too short to possibly carry a timestamp and subject and
	// should be silently discarded.
	Skip
	// Malformed means the line has enough bytes but the fixed-width timestamp or the
	// ": " separator that must follow it did not match the expected shape.
	Malformed
)

// minLineLength is the shortest a line can be and still carry a full timestamp, the
// ": " separator, and at least one byte of subject.
const minLineLength = 24

var emptyParams = []byte{}

// RawEvent is the minimally-parsed view of a single log line: a timestamp, a subject
// descriptor, an event-type tag, and the unparsed parameter bytes following the verb.
// Params is empty rather than nil when the verb consumed the entire line.
type RawEvent struct {
	Timestamp Timestamp
	Subject   Descriptor
	Type      EventType
	Params    []byte
}

// ParseRaw extracts a RawEvent from a single line (with the leading "L " delimiter
// already stripped by the line splitter). It borrows from line throughout; it never
// allocates except for the short descriptor string that Descriptor.Raw holds.
func ParseRaw(line []byte) (RawEvent, Status) {
	if len(line) < minLineLength {
		return RawEvent{}, Skip
	}
	if line[21] != ':' || line[22] != ' ' {
		return RawEvent{}, Malformed
	}
	ts, ok := parseTimestamp(line[:21])
	if !ok {
		return RawEvent{}, Malformed
	}

	rest := line[23:]
	subject, rest := parseSubject(rest)
	tag, params := matchEventType(rest)
	if params == nil {
		params = emptyParams
	}
	return RawEvent{
		Timestamp: ts,
		Subject:   subject,
		Type:      tag,
		Params:    params,
	}, OK
}
