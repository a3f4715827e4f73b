package event

// decodeOptional scans every `key "value"` pair in params and, for each key present in
// setters, calls the matching setter with the value. Keys with no setter are ignored;
// this is how optional fields are resolved: one pass over the whole blob rather than a
// fixed positional read.
func decodeOptional(params []byte, setters map[string]func(value []byte)) {
	it := NewParamIter(params)
	for {
		key, value, ok := it.Next()
		if !ok {
			return
		}
		if set, found := setters[string(key)]; found {
			set(value)
		}
	}
}

// RoundStartEvent marks the start of a live round. It carries no fields; its tag alone
// drives the class-stats round state machine.
type RoundStartEvent struct{}

func decodeRoundStart(params []byte) (any, error) {
	return RoundStartEvent{}, nil
}

// RoundWinEvent records the winning team of a round, if the log names one.
type RoundWinEvent struct {
	Winner string
}

func decodeRoundWin(params []byte) (any, error) {
	ev := RoundWinEvent{}
	decodeOptional(params, map[string]func([]byte){
		"winner": func(v []byte) { ev.Winner = string(v) },
	})
	return ev, nil
}

// RoundLengthEvent records how long the round that just ended took.
type RoundLengthEvent struct {
	Seconds float64
}

func decodeRoundLength(params []byte) (any, error) {
	ev := RoundLengthEvent{}
	decodeOptional(params, map[string]func([]byte){
		"seconds": func(v []byte) { ev.Seconds, _ = parseFloat(v) },
	})
	return ev, nil
}

// LogFileStartedEvent records the metadata the server stamps at the start of a log
// file: the file name, game directory, and server version.
type LogFileStartedEvent struct {
	File    string
	Game    string
	Version string
}

func decodeLogFileStarted(params []byte) (any, error) {
	ev := LogFileStartedEvent{}
	decodeOptional(params, map[string]func([]byte){
		"file":    func(v []byte) { ev.File = string(v) },
		"game":    func(v []byte) { ev.Game = string(v) },
		"version": func(v []byte) { ev.Version = string(v) },
	})
	return ev, nil
}

// CurrentScoreEvent and FinalScoreEvent both describe a team's score as of some point
// in the match: `current score "3" with "12" players` / `final score "3" with "12" players`.
type CurrentScoreEvent struct {
	Score   int64
	Players int64
}

func decodeCurrentScore(params []byte) (any, error) {
	score, rest, ok := namedField(params, "score")
	if !ok {
		return nil, decodeErr(0, "missing score")
	}
	ev := CurrentScoreEvent{}
	ev.Score, _ = parseInt(score)
	if players, _, ok := namedField(rest, "with"); ok {
		ev.Players, _ = parseInt(players)
	}
	return ev, nil
}

type FinalScoreEvent struct {
	Score   int64
	Players int64
}

func decodeFinalScore(params []byte) (any, error) {
	score, rest, ok := namedField(params, "score")
	if !ok {
		return nil, decodeErr(0, "missing score")
	}
	ev := FinalScoreEvent{}
	ev.Score, _ = parseInt(score)
	if players, _, ok := namedField(rest, "with"); ok {
		ev.Players, _ = parseInt(players)
	}
	return ev, nil
}

// GameOverEvent records why the match ended (e.g. "Reached Win Limit").
type GameOverEvent struct {
	Reason string
}

func decodeGameOver(params []byte) (any, error) {
	value, _, ok := positionalField(params)
	if !ok {
		return GameOverEvent{}, nil
	}
	return GameOverEvent{Reason: string(value)}, nil
}

// CaptureBlockedEvent records a capture attempt being blocked at control point CP.
type CaptureBlockedEvent struct {
	CP     int64
	CPName string
}

func decodeCaptureBlocked(params []byte) (any, error) {
	ev := CaptureBlockedEvent{}
	decodeOptional(params, map[string]func([]byte){
		"cp":     func(v []byte) { ev.CP, _ = parseInt(v) },
		"cpname": func(v []byte) { ev.CPName = string(v) },
	})
	return ev, nil
}

// PointCapturedEvent records a control point capture.
type PointCapturedEvent struct {
	CP         int64
	CPName     string
	NumCappers int64
}

func decodePointCaptured(params []byte) (any, error) {
	ev := PointCapturedEvent{}
	decodeOptional(params, map[string]func([]byte){
		"cp":         func(v []byte) { ev.CP, _ = parseInt(v) },
		"cpname":     func(v []byte) { ev.CPName = string(v) },
		"numcappers": func(v []byte) { ev.NumCappers, _ = parseInt(v) },
	})
	return ev, nil
}

// GenericEvent is the fallback payload for recognised event-type tags that no handler
// in this build consumes: it keeps the dispatch table closed without hand-writing a
// dedicated struct for every keyword in the table, most of which no handler inspects.
type GenericEvent struct {
	Params []byte
}

func decodeGeneric(params []byte) (any, error) {
	return GenericEvent{Params: params}, nil
}
