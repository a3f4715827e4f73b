package event

import (
	"testing"

	"github.com/tf2stats/logparser/rawevent"
)

func TestDecodeSay(t *testing.T) {
	v, err := Decode(rawevent.Say, []byte(`"hello there"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	say, ok := v.(SayEvent)
	if !ok || say.Text != "hello there" {
		t.Fatalf("got %+v", v)
	}
}

func TestDecodeDamage(t *testing.T) {
	params := []byte(`against "Bob<2><[U:1:200]><Blue>" (damage "80") (realdamage "60") (weapon "rocketlauncher")`)
	v, err := Decode(rawevent.Damage, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dmg, ok := v.(DamageEvent)
	if !ok {
		t.Fatalf("got %T", v)
	}
	if !dmg.HasTarget || dmg.Target.Kind != rawevent.DescPlayer || dmg.Target.Raw != "Bob<2><[U:1:200]><Blue>" {
		t.Errorf("target = %+v", dmg.Target)
	}
	if dmg.Damage != 80 || dmg.RealDamage != 60 || dmg.Weapon != "rocketlauncher" {
		t.Errorf("damage event = %+v", dmg)
	}
}

func TestDecodeKill(t *testing.T) {
	params := []byte(`"Bob<2><[U:1:200]><Blue>" with "rocketlauncher" (attacker_position "1 2 3") (victim_position "4 5 6")`)
	v, err := Decode(rawevent.Killed, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kill, ok := v.(KillEvent)
	if !ok {
		t.Fatalf("got %T", v)
	}
	if !kill.HasTarget || kill.Target.Raw != "Bob<2><[U:1:200]><Blue>" {
		t.Errorf("target = %+v", kill.Target)
	}
	if kill.Weapon != "rocketlauncher" {
		t.Errorf("weapon = %q", kill.Weapon)
	}
	if !kill.HasAttackerPos || kill.AttackerPosition != (Position{1, 2, 3}) {
		t.Errorf("attacker position = %+v", kill.AttackerPosition)
	}
	if !kill.HasVictimPos || kill.VictimPosition != (Position{4, 5, 6}) {
		t.Errorf("victim position = %+v", kill.VictimPosition)
	}
}

func TestDecodeKillMissingWeaponIsMalformed(t *testing.T) {
	params := []byte(`"Bob<2><[U:1:200]><Blue>"`)
	_, err := Decode(rawevent.Killed, params)
	if err == nil {
		t.Fatal("expected an error for a kill event with no weapon")
	}
}

func TestDecodeHealed(t *testing.T) {
	params := []byte(`against "Bob<2><[U:1:200]><Blue>" (healing "80")`)
	v, err := Decode(rawevent.Healed, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	healed, ok := v.(HealedEvent)
	if !ok || healed.Amount != 80 {
		t.Fatalf("got %+v", v)
	}
	if healed.Subject.Raw != "Bob<2><[U:1:200]><Blue>" {
		t.Errorf("subject = %+v", healed.Subject)
	}
}

func TestDecodeJoinedTeam(t *testing.T) {
	v, err := Decode(rawevent.Joined, []byte(`team "Red"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined, ok := v.(JoinedTeamEvent)
	if !ok || joined.Team != rawevent.Red {
		t.Fatalf("got %+v", v)
	}
}

func TestDecodeMedicDeathChargeThreshold(t *testing.T) {
	v, err := Decode(rawevent.MedicDeath, []byte(`(ubercharge "97.50")`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	death, ok := v.(MedicDeathEvent)
	if !ok || death.Charge != 97.5 {
		t.Fatalf("got %+v", v)
	}
}

func TestDecodeUnknownTagFallsBackToGeneric(t *testing.T) {
	v, err := Decode(rawevent.Unknown, []byte(`whatever params`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(GenericEvent); !ok {
		t.Fatalf("got %T, want GenericEvent", v)
	}
}
