package rawevent

import "testing"

func TestParseRawSkipShortLine(t *testing.T) {
	_, status := ParseRaw([]byte("short"))
	if status != Skip {
		t.Fatalf("status = %v, want Skip", status)
	}
}

func TestParseRawMalformedSeparator(t *testing.T) {
	line := []byte(`04/11/2021 - 20:01:22X"Alice<1><[U:1:100]><Red>" joined team "Red"`)
	_, status := ParseRaw(line)
	if status != Malformed {
		t.Fatalf("status = %v, want Malformed", status)
	}
}

func TestParseRawPlayerJoined(t *testing.T) {
	line := []byte(`04/11/2021 - 20:01:22: "Alice<1><[U:1:100]><Red>" joined team "Red"`)
	ev, status := ParseRaw(line)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if ev.Timestamp != (Timestamp{Year: 2021, Month: 4, Day: 11, Hour: 20, Minute: 1, Second: 22}) {
		t.Errorf("timestamp = %+v", ev.Timestamp)
	}
	if ev.Subject.Kind != DescPlayer {
		t.Fatalf("subject kind = %v, want DescPlayer", ev.Subject.Kind)
	}
	if ev.Subject.Raw != "Alice<1><[U:1:100]><Red>" {
		t.Errorf("subject raw = %q", ev.Subject.Raw)
	}
	if ev.Type != Joined {
		t.Errorf("type = %v, want Joined", ev.Type)
	}
	if string(ev.Params) != `team "Red"` {
		t.Errorf("params = %q", ev.Params)
	}
}

func TestParseRawWorldTriggeredRoundStart(t *testing.T) {
	line := []byte(`04/11/2021 - 20:01:22: World triggered "Round_Start"`)
	ev, status := ParseRaw(line)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if ev.Subject.Kind != DescWorld {
		t.Fatalf("subject kind = %v, want DescWorld", ev.Subject.Kind)
	}
	if ev.Type != RoundStart {
		t.Errorf("type = %v, want RoundStart", ev.Type)
	}
	if len(ev.Params) != 0 {
		t.Errorf("params = %q, want empty", ev.Params)
	}
}

func TestParseRawConsoleCommand(t *testing.T) {
	line := []byte(`04/11/2021 - 20:01:22: "Console<0><><Console>" say "hello"`)
	ev, status := ParseRaw(line)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if ev.Subject.Kind != DescConsole {
		t.Fatalf("subject kind = %v, want DescConsole", ev.Subject.Kind)
	}
	if ev.Type != Say {
		t.Errorf("type = %v, want Say", ev.Type)
	}
}

func TestParseRawTeamSubject(t *testing.T) {
	line := []byte(`04/11/2021 - 20:01:22: Team "Red" current score "3" with "2" players`)
	ev, status := ParseRaw(line)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if ev.Subject.Kind != DescTeam {
		t.Fatalf("subject kind = %v, want DescTeam", ev.Subject.Kind)
	}
	if ev.Subject.TeamOf != Red {
		t.Errorf("team = %v, want Red", ev.Subject.TeamOf)
	}
	if ev.Type != CurrentScore {
		t.Errorf("type = %v, want CurrentScore", ev.Type)
	}
}

func TestParseRawUnknownVerbFallsThroughAsUnknown(t *testing.T) {
	line := []byte(`04/11/2021 - 20:01:22: "Alice<1><[U:1:100]><Red>" did something nobody recognises`)
	ev, status := ParseRaw(line)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if ev.Type != Unknown {
		t.Errorf("type = %v, want Unknown", ev.Type)
	}
}
