package handler

import (
	"github.com/tf2stats/logparser/event"
	"github.com/tf2stats/logparser/rawevent"
	"github.com/tf2stats/logparser/subject"
)

// healSpreadState is the per-subject state for a healer: a running total of healing
// delivered to each distinct recipient, keyed by the recipient's identity.
type healSpreadState struct {
	toTarget map[subject.Identity]uint64
}

// healSpreadHandler has no state of its own; everything it accumulates lives in the
// healer's own per-subject state block.
type healSpreadHandler struct{}

func (healSpreadHandler) DoesHandle(tag rawevent.EventType) bool {
	return tag == rawevent.Healed
}

func (healSpreadHandler) OnEvent(id subject.Identity, state *healSpreadState, ev any) {
	if id.Kind != subject.KindPlayer {
		return
	}
	healed, ok := ev.(event.HealedEvent)
	if !ok {
		return
	}
	target := subject.Resolve(healed.Subject)
	if target.Kind != subject.KindPlayer {
		return
	}
	if state.toTarget == nil {
		state.toTarget = make(map[subject.Identity]uint64)
	}
	state.toTarget[target] += healed.Amount
}

func (healSpreadHandler) Finish(state healSpreadState) map[string]uint32 {
	if len(state.toTarget) == 0 {
		return nil
	}
	out := make(map[string]uint32, len(state.toTarget))
	for target, amount := range state.toTarget {
		out[Steam3(target)] = uint32(amount)
	}
	return out
}
