package event

import "github.com/tf2stats/logparser/rawevent"

// HealedEvent records healing delivered to Subject.
type HealedEvent struct {
	Subject rawevent.Descriptor
	Amount  uint64
}

func decodeHealed(params []byte) (any, error) {
	subject, rest, ok := namedSubjectField(params, "against")
	if !ok {
		return nil, decodeErr(rawevent.Healed, "missing against field")
	}
	value, _, ok := namedField(rest, "healing")
	if !ok {
		return nil, decodeErr(rawevent.Healed, "missing healing field")
	}
	amount, ok := parseUint(value)
	if !ok {
		return nil, decodeErr(rawevent.Healed, "non-numeric healing amount")
	}
	return HealedEvent{Subject: subject, Amount: amount}, nil
}

// ChargeDeployedEvent records an uber being deployed. It carries no fields that any
// handler consumes, but still exists as a distinct type so the dispatch table stays
// closed and future fields (medigun type) have somewhere to land.
type ChargeDeployedEvent struct{}

func decodeChargeDeployed(params []byte) (any, error) {
	return ChargeDeployedEvent{}, nil
}

// ChargeEndedEvent records an uber ending, naturally or otherwise. Duration is 0 when
// the log omits it.
type ChargeEndedEvent struct {
	Duration float64
}

func decodeChargeEnded(params []byte) (any, error) {
	ev := ChargeEndedEvent{}
	decodeOptional(params, map[string]func([]byte){
		"duration": func(v []byte) { ev.Duration, _ = parseFloat(v) },
	})
	return ev, nil
}

// ChargeReadyEvent has no payload; a medic's uber has finished building.
type ChargeReadyEvent struct{}

func decodeChargeReady(params []byte) (any, error) {
	return ChargeReadyEvent{}, nil
}

// AdvantageLostEvent records a medic losing a built-up uber advantage (e.g. by dying
// or disconnecting before deploying it). Time is the advantage held, in seconds.
type AdvantageLostEvent struct {
	Time float64
}

func decodeAdvantageLost(params []byte) (any, error) {
	ev := AdvantageLostEvent{}
	decodeOptional(params, map[string]func([]byte){
		"time": func(v []byte) { ev.Time, _ = parseFloat(v) },
	})
	return ev, nil
}

// FirstHealEvent records the time between a medic's spawn and their first heal tick.
type FirstHealEvent struct {
	Time float64
}

func decodeFirstHeal(params []byte) (any, error) {
	ev := FirstHealEvent{}
	decodeOptional(params, map[string]func([]byte){
		"time": func(v []byte) { ev.Time, _ = parseFloat(v) },
	})
	return ev, nil
}

// MedicDeathEvent records a medic's death along with their uber charge percentage at
// the time, used to detect drops and near-full-charge deaths.
type MedicDeathEvent struct {
	Charge float64
}

func decodeMedicDeath(params []byte) (any, error) {
	ev := MedicDeathEvent{}
	decodeOptional(params, map[string]func([]byte){
		"ubercharge": func(v []byte) { ev.Charge, _ = parseFloat(v) },
	})
	return ev, nil
}
