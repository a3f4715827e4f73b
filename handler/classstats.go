package handler

import (
	"encoding/json"

	"github.com/tf2stats/logparser/event"
	"github.com/tf2stats/logparser/rawevent"
	"github.com/tf2stats/logparser/subject"
)

// Class is the closed set of TF2 player classes, in the order the game itself lists
// them.
type Class uint8

const (
	ClassScout Class = iota
	ClassSoldier
	ClassPyro
	ClassDemoman
	ClassHeavy
	ClassEngineer
	ClassMedic
	ClassSniper
	ClassSpy
	numClasses
)

var classNames = [numClasses]string{
	"scout", "soldier", "pyro", "demoman", "heavyweapons", "engineer", "medic", "sniper", "spy",
}

func parseClass(s string) (Class, bool) {
	for i, name := range classNames {
		if name == s {
			return Class(i), true
		}
	}
	return 0, false
}

// ClassMap is a fixed table of one value per TF2 class, serialised as an object keyed
// by class name rather than a 9-element array.
type ClassMap[T any] [numClasses]T

func (m ClassMap[T]) MarshalJSON() ([]byte, error) {
	out := make(map[string]T, numClasses)
	for i, v := range m {
		out[classNames[i]] = v
	}
	return json.Marshal(out)
}

// classStatsPerSubject is the per-subject state and output for kills, assists, and
// damage dealt by this subject, broken down by the target's class. Deaths are not
// here: they are attributed by the *target's* class-stats entry in
// classStatsHandler.deathsOf, since a death is recorded against the victim, not the
// killer, and the killer's own per-subject state has no way to see it.
type classStatsPerSubject struct {
	Kills   ClassMap[uint8]
	Assists ClassMap[uint8]
	Damage  ClassMap[uint16]
}

// ClassStats is the finished per-subject output: kills/assists/damage dealt, broken
// down by victim class, plus this subject's own deaths broken down by the class of
// whoever killed them.
type ClassStats struct {
	Kills   ClassMap[uint8]  `json:"kills"`
	Deaths  ClassMap[uint8]  `json:"deaths"`
	Assists ClassMap[uint8]  `json:"assists"`
	Damage  ClassMap[uint16] `json:"damage"`
}

const damageClampLow, damageClampHigh = 0, 1500

// classStatsHandler mixes global and per-subject state: a cross-subject view of who is
// currently playing what class and who has died to what class (both needed to
// attribute a kill/death pair correctly, since each side is only visible from the
// other's event), plus the round-active flag gating all accumulation.
type classStatsHandler struct {
	active   bool
	classOf  map[subject.Identity]Class
	deathsOf map[subject.Identity]ClassMap[uint8]
}

func (h *classStatsHandler) classOfSubject(id subject.Identity) (Class, bool) {
	c, ok := h.classOf[id]
	return c, ok
}

func (h *classStatsHandler) setClass(id subject.Identity, c Class) {
	if h.classOf == nil {
		h.classOf = make(map[subject.Identity]Class)
	}
	h.classOf[id] = c
}

func (h *classStatsHandler) recordDeath(victim subject.Identity, killerClass Class) {
	if h.deathsOf == nil {
		h.deathsOf = make(map[subject.Identity]ClassMap[uint8])
	}
	deaths := h.deathsOf[victim]
	deaths[killerClass]++
	h.deathsOf[victim] = deaths
}

func (h *classStatsHandler) DoesHandle(tag rawevent.EventType) bool {
	switch tag {
	case rawevent.Killed, rawevent.KillAssist, rawevent.Damage, rawevent.Spawned,
		rawevent.ChangedRole, rawevent.RoundWin, rawevent.RoundStart:
		return true
	default:
		return false
	}
}

func (h *classStatsHandler) OnEvent(id subject.Identity, state *classStatsPerSubject, ev any) {
	switch v := ev.(type) {
	case event.SpawnEvent:
		if c, ok := parseClass(v.Class); ok {
			h.setClass(id, c)
		}
	case event.RoleChangeEvent:
		if c, ok := parseClass(v.Class); ok {
			h.setClass(id, c)
		}
	case event.RoundStartEvent:
		h.active = true
	case event.RoundWinEvent:
		h.active = false
	case event.KillEvent:
		if !h.active || !v.HasTarget {
			return
		}
		target := subject.Resolve(v.Target)
		killerClass, hasKillerClass := h.classOfSubject(id)
		if hasKillerClass {
			h.recordDeath(target, killerClass)
		}
		if targetClass, ok := h.classOfSubject(target); ok {
			state.Kills[targetClass]++
		}
	case event.KillAssistEvent:
		if !h.active || !v.HasTarget {
			return
		}
		target := subject.Resolve(v.Target)
		if targetClass, ok := h.classOfSubject(target); ok {
			state.Assists[targetClass]++
		}
	case event.DamageEvent:
		if !h.active || !v.HasTarget || v.Damage <= damageClampLow || v.Damage >= damageClampHigh {
			return
		}
		target := subject.Resolve(v.Target)
		if targetClass, ok := h.classOfSubject(target); ok {
			sum := uint32(state.Damage[targetClass]) + uint32(v.Damage)
			if sum > 0xFFFF {
				sum = 0xFFFF
			}
			state.Damage[targetClass] = uint16(sum)
		}
	}
}

// FinishPerSubject folds in the subject's own deaths-by-killer-class, tracked globally
// because only the killer's event names the victim, never the other way round.
func (h *classStatsHandler) FinishPerSubject(id subject.Identity, state classStatsPerSubject) ClassStats {
	return ClassStats{
		Kills:   state.Kills,
		Assists: state.Assists,
		Damage:  state.Damage,
		Deaths:  h.deathsOf[id],
	}
}
