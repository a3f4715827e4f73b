// Package handler implements the composite event-handler pipeline: a fixed set of
// concrete handlers, each deciding independently whether it cares about a given
// event-type tag, each accumulating its own slice of state, and each contributing its
// own slice of the final output.
package handler

import (
	"fmt"

	"github.com/tf2stats/logparser/rawevent"
	"github.com/tf2stats/logparser/subject"
)

// Meta carries the per-event context every handler needs beyond the typed payload
// itself: the match-relative time, counted in whole seconds since the first event seen
// in the match.
type Meta struct {
	Time uint32
}

// PerSubjectState is the state the handler pipeline keeps for one subject, stored as
// the opaque State field of a subject.Map entry. Each per-subject handler owns exactly
// one field; it is zero until that handler's OnEvent first touches this subject.
type PerSubjectState struct {
	HealSpread healSpreadState
	MedicStats medicStatsState
	ClassStats classStatsPerSubject
}

// NewPerSubjectState returns a zero-valued state block, suitable as the newState
// callback passed to subject.Map.Resolve.
func NewPerSubjectState() any {
	return &PerSubjectState{}
}

// PerSubjectOutput is the finished, per-subject slice of handler output, rendered once
// per player subject with a resolvable steam id.
type PerSubjectOutput struct {
	HealSpread map[string]uint32 `json:"heal_spread,omitempty"`
	MedicStats *MedicStats       `json:"medic_stats,omitempty"`
	ClassStats ClassStats        `json:"class_stats"`
}

// GlobalOutput is the finished, whole-match slice of handler output that has no single
// owning subject.
type GlobalOutput struct {
	Chat          []ChatMessage         `json:"chat"`
	LobbySettings *LobbySettingsOutcome `json:"lobby_settings,omitempty"`
}

// Handlers is the concrete composite handler: the Cartesian product of every concrete
// handler this build ships, written out by hand rather than assembled generically.
type Handlers struct {
	chat          chatHandler
	healSpread    healSpreadHandler
	medicStats    medicStatsHandler
	classStats    classStatsHandler
	lobbySettings lobbySettingsHandler
}

// New returns a freshly-initialised handler pipeline.
func New() *Handlers {
	return &Handlers{}
}

// DoesHandle reports whether any child handler wants to see events tagged tag. The
// driver consults this before paying for a typed-event decode.
func (h *Handlers) DoesHandle(tag rawevent.EventType) bool {
	return h.chat.DoesHandle(tag) ||
		h.healSpread.DoesHandle(tag) ||
		h.medicStats.DoesHandle(tag) ||
		h.classStats.DoesHandle(tag) ||
		h.lobbySettings.DoesHandle(tag)
}

// OnEvent routes a decoded event to every child handler whose DoesHandle accepts tag.
// state is the calling subject's per-subject state block and must not be nil, whatever
// the subject's kind: a child handler's field of it is addressed whenever that child's
// DoesHandle accepts tag.
func (h *Handlers) OnEvent(meta Meta, tag rawevent.EventType, id subject.Identity, state *PerSubjectState, ev any) {
	if h.chat.DoesHandle(tag) {
		h.chat.OnEvent(meta, id, ev)
	}
	if h.healSpread.DoesHandle(tag) {
		h.healSpread.OnEvent(id, &state.HealSpread, ev)
	}
	if h.medicStats.DoesHandle(tag) {
		h.medicStats.OnEvent(meta, id, &state.MedicStats, ev)
	}
	if h.classStats.DoesHandle(tag) {
		h.classStats.OnEvent(id, &state.ClassStats, ev)
	}
	if h.lobbySettings.DoesHandle(tag) {
		h.lobbySettings.OnEvent(id, ev)
	}
}

// FinishGlobal renders the whole-match output. Called exactly once, after every line
// has been fed to OnEvent.
func (h *Handlers) FinishGlobal(subjects *subject.Map) GlobalOutput {
	return GlobalOutput{
		Chat:          h.chat.Finish(subjects),
		LobbySettings: h.lobbySettings.Finish(),
	}
}

// FinishPerSubject renders one player subject's output. id must be a KindPlayer
// identity; the driver is responsible for filtering to subjects with a real steam id
// before calling this.
func (h *Handlers) FinishPerSubject(id subject.Identity, state *PerSubjectState) PerSubjectOutput {
	return PerSubjectOutput{
		HealSpread: h.healSpread.Finish(state.HealSpread),
		MedicStats: h.medicStats.Finish(state.MedicStats),
		ClassStats: h.classStats.FinishPerSubject(id, state.ClassStats),
	}
}

// Steam3 renders a KindPlayer identity as the `[U:1:N]` steam3 string used to key
// per-subject output maps. Callers must only pass KindPlayer identities.
func Steam3(id subject.Identity) string {
	return fmt.Sprintf("[U:1:%d]", id.AccountID)
}
