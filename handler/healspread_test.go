package handler

import (
	"testing"

	"github.com/tf2stats/logparser/event"
	"github.com/tf2stats/logparser/rawevent"
	"github.com/tf2stats/logparser/subject"
)

func TestHealSpreadHandlerAccumulatesPerTarget(t *testing.T) {
	healer := subject.Resolve(rawevent.Descriptor{Kind: rawevent.DescPlayer, Raw: `Medic<1><[U:1:100]><Red>`})
	targetDesc := rawevent.Descriptor{Kind: rawevent.DescPlayer, Raw: `Soldier<2><[U:1:200]><Red>`}

	var h healSpreadHandler
	var state healSpreadState

	if !h.DoesHandle(rawevent.Healed) {
		t.Fatal("expected heal spread handler to handle Healed")
	}

	h.OnEvent(healer, &state, event.HealedEvent{Subject: targetDesc, Amount: 80})
	h.OnEvent(healer, &state, event.HealedEvent{Subject: targetDesc, Amount: 20})

	out := h.Finish(state)
	if out["[U:1:200]"] != 100 {
		t.Fatalf("heal total = %d, want 100", out["[U:1:200]"])
	}
}

func TestHealSpreadHandlerIgnoresNonPlayerHealerAndTarget(t *testing.T) {
	world := subject.Resolve(rawevent.Descriptor{Kind: rawevent.DescWorld})
	var h healSpreadHandler
	var state healSpreadState
	h.OnEvent(world, &state, event.HealedEvent{
		Subject: rawevent.Descriptor{Kind: rawevent.DescPlayer, Raw: `Soldier<2><[U:1:200]><Red>`},
		Amount:  50,
	})
	if out := h.Finish(state); out != nil {
		t.Fatalf("got %v, want nil", out)
	}
}
