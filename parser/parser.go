// Package parser implements the top-level driver: it consumes a raw log buffer through
// linesplit, rawevent, and event in turn, dispatches decoded events to a handler
// pipeline, and renders the finished per-match and per-subject output.
package parser

import (
	"bytes"
	"fmt"
	"time"

	"github.com/tf2stats/logparser/event"
	"github.com/tf2stats/logparser/handler"
	"github.com/tf2stats/logparser/linesplit"
	"github.com/tf2stats/logparser/rawevent"
	"github.com/tf2stats/logparser/subject"
)

// ErrorKind classifies why Parse gave up on a line it could not recover from.
type ErrorKind uint8

const (
	// ErrMalformedLine means a line's fixed-width timestamp or subject shape did not
	// parse, and the line was not the last in the buffer (the one case truncation
	// tolerance accepts without error).
	ErrMalformedLine ErrorKind = iota
	// ErrDecodeFailed means a line's event-type tag and timestamp parsed, but its typed
	// payload did not match the shape expected for its tag, and neither corruption
	// recovery heuristic applied.
	ErrDecodeFailed
)

// ParseError is returned by Parse when a line could not be recovered from by either of
// the two corruption heuristics. Offset is the index, in lines consumed so far, of the
// line that failed; it is not a byte offset into the original buffer.
type ParseError struct {
	Kind    ErrorKind
	Tag     rawevent.EventType
	Raw     []byte
	Offset  int
	Wrapped error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrMalformedLine:
		return fmt.Sprintf("parser: malformed line at line %d", e.Offset)
	default:
		return fmt.Sprintf("parser: failed to decode %v at line %d: %v", e.Tag, e.Offset, e.Wrapped)
	}
}

func (e *ParseError) Unwrap() error { return e.Wrapped }

// Result is the finished output of a parsed match: one GlobalOutput, and one
// PerSubjectOutput for every player subject with a resolvable steam id, keyed by its
// steam3 string.
type Result struct {
	// StartedAt is the wall-clock timestamp of the first event seen, or the zero
	// time if the buffer contained no OK event at all.
	StartedAt  time.Time
	Global     handler.GlobalOutput
	PerSubject map[string]handler.PerSubjectOutput
}

// maxRecoverableGap is the corruption-recovery threshold (b): a gap this large between
// consecutive event timestamps is assumed to be combiner truncation rather than a
// genuine decode failure worth surfacing.
const maxRecoverableGap = 60

// Parse runs the full pipeline over buf and returns the finished result, or the first
// unrecoverable ParseError.
func Parse(buf []byte) (Result, error) {
	lines := linesplit.New(buf)
	h := handler.New()
	subjects := subject.NewMap()

	var (
		started    bool
		matchStart rawevent.Timestamp
		lineNo     int
	)

	cur, hasCur := lines.Next()
	next, hasNext := lines.Next()

	for hasCur {
		re, status := rawevent.ParseRaw(cur)

		switch status {
		case rawevent.Skip:
			// too short to be anything; silently discarded.

		case rawevent.Malformed:
			if !hasNext {
				// Truncation tolerance: the last line in the buffer is allowed to be
				// cut off mid-write. Terminate normally instead of erroring.
				hasCur = false
				continue
			}
			return Result{}, &ParseError{Kind: ErrMalformedLine, Raw: cur, Offset: lineNo}

		case rawevent.OK:
			// Decoding proceeds if DoesHandle says so, or if start time is not yet
			// established (the very first OK event always gets a full decode).
			decodeRequired := !started || h.DoesHandle(re.Type)
			if !started {
				started = true
				matchStart = re.Timestamp
			}

			id, entry := subjects.Resolve(re.Subject, handler.NewPerSubjectState)

			if decodeRequired {
				payload, err := event.Decode(re.Type, re.Params)
				if err != nil {
					if recoverableDecodeFailure(re, cur, next, hasNext) {
						break
					}
					return Result{}, &ParseError{Kind: ErrDecodeFailed, Tag: re.Type, Raw: re.Params, Offset: lineNo, Wrapped: err}
				}
				meta := handler.Meta{Time: elapsedSeconds(matchStart, re.Timestamp)}
				h.OnEvent(meta, re.Type, id, entry.State.(*handler.PerSubjectState), payload)
			}
		}

		lineNo++
		cur, hasCur = next, hasNext
		if hasCur {
			next, hasNext = lines.Next()
		}
	}

	result := finish(h, subjects)
	if started {
		result.StartedAt = matchStart.Time()
	}
	return result, nil
}

// recoverableDecodeFailure applies the two corruption-recovery heuristics to a line
// whose typed-event decode failed: (a) the malformed event's own parameter bytes
// contain an embedded "L MM/DD/YYYY" matching its own date, a sign two log lines were
// concatenated by a broken combiner; (b) the next event's timestamp is more than
// maxRecoverableGap seconds after this one's, a sign of combiner truncation. Either
// condition means the line should be silently skipped rather than surfaced as an error.
func recoverableDecodeFailure(re rawevent.RawEvent, cur, next []byte, hasNext bool) bool {
	if bytes.Contains(re.Params, []byte("L "+ownDate(re.Timestamp))) {
		return true
	}
	if !hasNext {
		return false
	}
	nextRE, status := rawevent.ParseRaw(next)
	if status != rawevent.OK {
		return false
	}
	gap := nextRE.Timestamp.Time().Sub(re.Timestamp.Time()).Seconds()
	return gap > maxRecoverableGap
}

// ownDate renders the "MM/DD/YYYY" portion of ts, matching the fixed-width date prefix
// every log line carries.
func ownDate(ts rawevent.Timestamp) string {
	return fmt.Sprintf("%02d/%02d/%04d", ts.Month, ts.Day, ts.Year)
}

// elapsedSeconds computes the whole-second offset of t from start, the match's first
// observed event. Log lines are expected to be non-decreasing in time; a negative
// difference (clock skew, or a truncated-and-recovered line) clamps to zero rather than
// wrapping.
func elapsedSeconds(start, t rawevent.Timestamp) uint32 {
	d := t.Time().Sub(start.Time()).Seconds()
	if d < 0 {
		return 0
	}
	return uint32(d)
}

// finish renders the finished Result once every line has been consumed: the global
// output exactly once, and a per-subject output for every player subject with a real
// steam id. Bots, teams, and malformed subjects never appear in the output map.
func finish(h *handler.Handlers, subjects *subject.Map) Result {
	result := Result{
		Global:     h.FinishGlobal(subjects),
		PerSubject: make(map[string]handler.PerSubjectOutput),
	}
	for _, id := range subjects.Order() {
		if id.Kind != subject.KindPlayer {
			continue
		}
		entry, ok := subjects.Get(id)
		if !ok {
			continue
		}
		result.PerSubject[handler.Steam3(id)] = h.FinishPerSubject(id, entry.State.(*handler.PerSubjectState))
	}
	return result
}
