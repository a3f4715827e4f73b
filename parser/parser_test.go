package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tf2stats/logparser/handler"
)

// buildLog joins event bodies (the text following "L ") with the "\nL " delimiter the
// line splitter expects, producing a buffer parseable by Parse.
func buildLog(lines ...string) []byte {
	return []byte("L " + strings.Join(lines, "\nL "))
}

func TestParseChatLine(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:13:57: "Alice<1><[U:1:100]><Red>" say "hello"`,
	)
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Global.Chat) != 1 {
		t.Fatalf("chat = %+v, want 1 entry", result.Global.Chat)
	}
	msg := result.Global.Chat[0]
	if msg.Name != "Alice" || msg.SteamID != "[U:1:100]" || msg.Text != "hello" || msg.Type != 0 {
		t.Errorf("chat message = %+v", msg)
	}
	alice, ok := result.PerSubject["[U:1:100]"]
	if !ok {
		t.Fatal("expected Alice to appear in per-subject output")
	}
	if alice.MedicStats != nil {
		t.Errorf("expected no medic stats, got %+v", alice.MedicStats)
	}
	if !reflect.DeepEqual(alice.ClassStats, handler.ClassStats{}) {
		t.Errorf("class stats = %+v, want zero-valued", alice.ClassStats)
	}
}

func TestParseRoleChange(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:13:57: "makxbi<27><[U:1:40364391]><Red>" changed role to "sniper"`,
		`08/06/2018 - 21:13:58: "makxbi<27><[U:1:40364391]><Red>" triggered "Round_Start"`,
		`08/06/2018 - 21:13:59: World triggered "Round_Start"`,
	)
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.PerSubject["[U:1:40364391]"]; !ok {
		t.Fatal("expected makxbi to appear in per-subject output")
	}
}

func TestParseDamageAccountingAcrossRoundBoundary(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:13:50: "Alice<1><[U:1:100]><Red>" spawned as "soldier"`,
		`08/06/2018 - 21:13:51: "Bob<2><[U:1:200]><Blue>" spawned as "medic"`,
		`08/06/2018 - 21:13:52: World triggered "Round_Start"`,
		`08/06/2018 - 21:13:53: "Alice<1><[U:1:100]><Red>" triggered "damage" against "Bob<2><[U:1:200]><Blue>" (damage "80")`,
		`08/06/2018 - 21:13:54: World triggered "Round_Win" (winner "Red")`,
		`08/06/2018 - 21:13:55: "Alice<1><[U:1:100]><Red>" triggered "damage" against "Bob<2><[U:1:200]><Blue>" (damage "50")`,
	)
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alice, ok := result.PerSubject["[U:1:100]"]
	if !ok {
		t.Fatal("expected Alice in per-subject output")
	}
	if alice.ClassStats.Damage[handler.ClassMedic] != 80 {
		t.Errorf("damage against medic = %d, want 80 (only the in-round hit counts)", alice.ClassStats.Damage[handler.ClassMedic])
	}
}

func TestParseTruncationToleranceOnGapHeuristic(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:13:57: "Alice<1><[U:1:100]><Red>" killed "Bob<2><[U:1:200]><Blue>"`,
		`08/06/2018 - 21:15:57: "Alice<1><[U:1:100]><Red>" say "hello"`,
	)
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("expected the malformed kill event to be skipped via the gap heuristic, got error: %v", err)
	}
	if len(result.Global.Chat) != 1 || result.Global.Chat[0].Text != "hello" {
		t.Fatalf("chat = %+v, want the second event's effects present", result.Global.Chat)
	}
}

func TestParseRecoversEmbeddedDateCorruption(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:13:57: "Alice<1><[U:1:100]><Red>" killed "Bob<2><[U:1:200]><Blue>" L 08/06/2018 junk`,
		`08/06/2018 - 21:13:58: "Alice<1><[U:1:100]><Red>" say "hi"`,
	)
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("expected the malformed kill event to be skipped via the embedded-date heuristic, got error: %v", err)
	}
	if len(result.Global.Chat) != 1 || result.Global.Chat[0].Text != "hi" {
		t.Fatalf("chat = %+v, want the second event's effects present", result.Global.Chat)
	}
}

func TestParseKillWithinRound(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:14:00: World triggered "Round_Start"`,
		`08/06/2018 - 21:14:01: "Alice<1><[U:1:100]><Red>" spawned as "soldier"`,
		`08/06/2018 - 21:14:02: "Bob<2><[U:1:200]><Blue>" spawned as "medic"`,
		`08/06/2018 - 21:14:03: "Alice<1><[U:1:100]><Red>" killed "Bob<2><[U:1:200]><Blue>" with "rocketlauncher"`,
	)
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alice := result.PerSubject["[U:1:100]"]
	if alice.ClassStats.Kills[handler.ClassMedic] != 1 {
		t.Errorf("alice kills[medic] = %d, want 1", alice.ClassStats.Kills[handler.ClassMedic])
	}
	bob := result.PerSubject["[U:1:200]"]
	if bob.ClassStats.Deaths[handler.ClassSoldier] != 1 {
		t.Errorf("bob deaths[soldier] = %d, want 1", bob.ClassStats.Deaths[handler.ClassSoldier])
	}
}

func TestParseChargeLifecycle(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:13:00: "Doc<3><[U:1:300]><Blue>" triggered "first_heal_after_spawn" (time "1.5")`,
		`08/06/2018 - 21:13:40: "Doc<3><[U:1:300]><Blue>" triggered "chargeready"`,
		`08/06/2018 - 21:13:41: "Doc<3><[U:1:300]><Blue>" triggered "chargedeployed"`,
		`08/06/2018 - 21:13:49: "Doc<3><[U:1:300]><Blue>" triggered "chargeended" (duration "8.0")`,
		`08/06/2018 - 21:13:55: "Doc<3><[U:1:300]><Blue>" triggered "medic_death" (ubercharge "0")`,
	)
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, ok := result.PerSubject["[U:1:300]"]
	if !ok || doc.MedicStats == nil {
		t.Fatalf("expected medic stats for Doc, got %+v", doc)
	}
	stats := doc.MedicStats
	if stats.AdvantagesLost != 0 {
		t.Errorf("advantages_lost = %d, want 0", stats.AdvantagesLost)
	}
	if stats.ChargeCount != 1 {
		t.Errorf("charge_count = %d, want 1", stats.ChargeCount)
	}
	if stats.Drops != 0 {
		t.Errorf("drops = %d, want 0", stats.Drops)
	}
	if stats.DeathsAfterUber != 1 {
		t.Errorf("deaths_after_uber = %d, want 1", stats.DeathsAfterUber)
	}
	if stats.AvgUberLength != 8.0 {
		t.Errorf("avg_uber_length = %v, want 8.0", stats.AvgUberLength)
	}
	if stats.AvgTimeToBuild != 40 {
		t.Errorf("avg_time_to_build = %v, want 40 (1 build, 40s)", stats.AvgTimeToBuild)
	}
}

func TestParseHealSpreadConservation(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:13:00: "Doc<3><[U:1:300]><Blue>" triggered "healed" against "Bob<2><[U:1:200]><Blue>" (healing "40")`,
		`08/06/2018 - 21:13:01: "Doc<3><[U:1:300]><Blue>" triggered "healed" against "Carl<4><[U:1:400]><Blue>" (healing "25")`,
		`08/06/2018 - 21:13:02: "Doc<3><[U:1:300]><Blue>" triggered "healed" against "Bob<2><[U:1:200]><Blue>" (healing "10")`,
	)
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := result.PerSubject["[U:1:300]"]
	var total uint32
	for _, amount := range doc.HealSpread {
		total += amount
	}
	if total != 75 {
		t.Errorf("total heal spread = %d, want 75 (40+25+10, conservation)", total)
	}
	if doc.HealSpread["[U:1:200]"] != 50 {
		t.Errorf("heal to Bob = %d, want 50", doc.HealSpread["[U:1:200]"])
	}
}

func TestParseIsDeterministic(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:14:00: World triggered "Round_Start"`,
		`08/06/2018 - 21:14:01: "Alice<1><[U:1:100]><Red>" spawned as "soldier"`,
		`08/06/2018 - 21:14:02: "Bob<2><[U:1:200]><Blue>" spawned as "medic"`,
		`08/06/2018 - 21:14:03: "Alice<1><[U:1:100]><Red>" killed "Bob<2><[U:1:200]><Blue>" with "rocketlauncher"`,
	)
	first, err := Parse(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Parse(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two parses of the same input diverged:\n%+v\n%+v", first, second)
	}
}

func TestParseDecodesFirstEventEvenWhenNoHandlerCares(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:13:57: "Alice<1><[U:1:100]><Red>" triggered "domination"`,
		`08/06/2018 - 21:13:58: "Alice<1><[U:1:100]><Red>" say "hello"`,
	)
	_, err := Parse(buf)
	if err == nil {
		t.Fatal(`expected the corrupt first line to be decoded and surfaced as an error, even though no handler handles "domination"`)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != ErrDecodeFailed {
		t.Fatalf("got error %v, want a decode-failed ParseError", err)
	}
}

func TestParseTolerantOfLastLineTruncation(t *testing.T) {
	buf := buildLog(
		`08/06/2018 - 21:13:57: "Alice<1><[U:1:100]><Red>" say "hello"`,
		`this trailing line has no valid timestamp shape at all`,
	)
	result, err := Parse(buf)
	if err != nil {
		t.Fatalf("expected truncation on the final line to be tolerated, got error: %v", err)
	}
	if len(result.Global.Chat) != 1 {
		t.Fatalf("chat = %+v, want the first event's effects present", result.Global.Chat)
	}
}
