// Package rawevent implements stage two of the parsing pipeline: extracting the
// minimally-parsed raw event (timestamp, subject descriptor, event-type tag, parameter
// slice) from each line produced by package linesplit.
package rawevent

import "time"

// Timestamp is a calendar date plus time of day with second resolution, parsed from the
// fixed-width "MM/DD/YYYY - HH:MM:SS" prefix every log line carries.
type Timestamp struct {
	Year, Month, Day       int
	Hour, Minute, Second int
}

// Time renders the timestamp as a time.Time in UTC. The log format carries no timezone
// information, so UTC is used as a fixed, deterministic reference frame.
func (t Timestamp) Time() time.Time {
	return time.Date(t.Year, time.Month(t.Month), t.Day, t.Hour, t.Minute, t.Second, 0, time.UTC)
}

// timestampWidth is the exact byte width of the "MM/DD/YYYY - HH:MM:SS" prefix.
const timestampWidth = 21

// parseTimestamp parses the fixed-width date positions directly rather than through a
// generic date parser, per the spec's hot-path design note: digit positions are known in
// advance, so no backtracking or format-string interpretation is needed.
func parseTimestamp(b []byte) (Timestamp, bool) {
	if len(b) < timestampWidth {
		return Timestamp{}, false
	}
	// 01/02/2006 - 15:04:05
	month, ok := digits2(b[0:2])
	if !ok {
		return Timestamp{}, false
	}
	if b[2] != '/' {
		return Timestamp{}, false
	}
	day, ok := digits2(b[3:5])
	if !ok {
		return Timestamp{}, false
	}
	if b[5] != '/' {
		return Timestamp{}, false
	}
	year, ok := digits4(b[6:10])
	if !ok {
		return Timestamp{}, false
	}
	if b[10] != ' ' || b[11] != '-' || b[12] != ' ' {
		return Timestamp{}, false
	}
	hour, ok := digits2(b[13:15])
	if !ok {
		return Timestamp{}, false
	}
	if b[15] != ':' {
		return Timestamp{}, false
	}
	minute, ok := digits2(b[16:18])
	if !ok {
		return Timestamp{}, false
	}
	if b[18] != ':' {
		return Timestamp{}, false
	}
	second, ok := digits2(b[19:21])
	if !ok {
		return Timestamp{}, false
	}
	return Timestamp{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}, true
}

func digits2(b []byte) (int, bool) {
	if b[0] < '0' || b[0] > '9' || b[1] < '0' || b[1] > '9' {
		return 0, false
	}
	return int(b[0]-'0')*10 + int(b[1]-'0'), true
}

func digits4(b []byte) (int, bool) {
	v := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}
