package handler

import (
	"github.com/tf2stats/logparser/event"
	"github.com/tf2stats/logparser/rawevent"
	"github.com/tf2stats/logparser/subject"
)

// medicStatsState accumulates the raw counters for one medic across the whole match;
// MedicStats is derived from it at Finish.
type medicStatsState struct {
	advantagesLost         uint32
	biggestAdvantageLost   float64
	nearFullChargeDeath    uint32
	deathsAfterUber        uint32
	totalTimeBeforeHealing float64
	startHealingCount      uint32
	totalTimeToBuild       uint32
	uberBuildCount         uint32
	totalUberLength        float64
	chargeCount            uint32
	drops                  uint32
	lastBuildStart         uint32
	hasBuildStart          bool
	lastUberEnd            uint32
	hasUberEnd             bool
}

// MedicStats is a medic's finished uber-management summary. Averages are computed once,
// at Finish, over whatever activity was actually observed; a medic who never healed
// anyone gets no MedicStats at all rather than a block of zeroes.
type MedicStats struct {
	AdvantagesLost       uint32  `json:"advantages_lost"`
	BiggestAdvantageLost float64 `json:"biggest_advantage_lost"`
	NearFullChargeDeath  uint32  `json:"near_full_charge_death"`
	DeathsAfterUber      uint32  `json:"deaths_after_uber"`
	AvgTimeBeforeHealing float64 `json:"avg_time_before_healing"`
	AvgTimeToBuild       float64 `json:"avg_time_to_build"`
	AvgUberLength        float64 `json:"avg_uber_length"`
	ChargeCount          uint32  `json:"charge_count"`
	Drops                uint32  `json:"drops"`
}

// nearFullChargeLow/High bound the charge percentage a medic death is classified as a
// "near-full-charge death" rather than a clean drop: [95, 100).
const (
	nearFullChargeLow  = 95.0
	nearFullChargeHigh = 100.0
)

// postUberDeathWindow is how many match-relative seconds after an uber ends a medic
// death still counts as dying immediately after using it.
const postUberDeathWindow = 10

type medicStatsHandler struct{}

func (medicStatsHandler) DoesHandle(tag rawevent.EventType) bool {
	switch tag {
	case rawevent.ChargeDeployed, rawevent.ChargeEnded, rawevent.ChargeReady,
		rawevent.UberAdvantageLost, rawevent.MedicDeath, rawevent.FirstHealAfterSpawn:
		return true
	default:
		return false
	}
}

func (medicStatsHandler) OnEvent(meta Meta, id subject.Identity, state *medicStatsState, ev any) {
	if id.Kind != subject.KindPlayer {
		return
	}
	switch v := ev.(type) {
	case event.ChargeEndedEvent:
		state.totalUberLength += v.Duration
		state.lastUberEnd = meta.Time
		state.hasUberEnd = true
	case event.ChargeDeployedEvent:
		state.chargeCount++
	case event.AdvantageLostEvent:
		state.advantagesLost++
		if v.Time > state.biggestAdvantageLost {
			state.biggestAdvantageLost = v.Time
		}
	case event.FirstHealEvent:
		state.totalTimeBeforeHealing += v.Time
		state.startHealingCount++
		state.lastBuildStart = meta.Time
		state.hasBuildStart = true
	case event.ChargeReadyEvent:
		if state.hasBuildStart {
			state.totalTimeToBuild += meta.Time - state.lastBuildStart
			state.uberBuildCount++
			state.hasBuildStart = false
		}
	case event.MedicDeathEvent:
		if v.Charge >= nearFullChargeLow && v.Charge < nearFullChargeHigh {
			state.nearFullChargeDeath++
		} else if v.Charge >= nearFullChargeHigh {
			state.drops++
		}
		if state.hasUberEnd && meta.Time-state.lastUberEnd <= postUberDeathWindow {
			state.deathsAfterUber++
		}
	}
}

// Finish derives MedicStats from state, or returns nil if this subject never started
// healing anyone.
func (medicStatsHandler) Finish(state medicStatsState) *MedicStats {
	if state.startHealingCount == 0 {
		return nil
	}
	stats := &MedicStats{
		AdvantagesLost:       state.advantagesLost,
		BiggestAdvantageLost: state.biggestAdvantageLost,
		NearFullChargeDeath:  state.nearFullChargeDeath,
		DeathsAfterUber:      state.deathsAfterUber,
		AvgTimeBeforeHealing: state.totalTimeBeforeHealing / float64(state.startHealingCount),
		ChargeCount:          state.chargeCount,
		Drops:                state.drops,
	}
	if state.uberBuildCount > 0 {
		stats.AvgTimeToBuild = float64(state.totalTimeToBuild) / float64(state.uberBuildCount)
	}
	if state.chargeCount > 0 {
		stats.AvgUberLength = state.totalUberLength / float64(state.chargeCount)
	}
	return stats
}
