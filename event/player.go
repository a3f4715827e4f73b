package event

import "github.com/tf2stats/logparser/rawevent"

// ShotFiredEvent records a weapon discharge. Weapon is absent for melee attacks that
// don't log one.
type ShotFiredEvent struct {
	Weapon string
}

func decodeShotFired(params []byte) (any, error) {
	ev := ShotFiredEvent{}
	decodeOptional(params, map[string]func([]byte){
		"weapon": func(v []byte) { ev.Weapon = string(v) },
	})
	return ev, nil
}

// ShotHitEvent records a weapon hit.
type ShotHitEvent struct {
	Weapon string
}

func decodeShotHit(params []byte) (any, error) {
	ev := ShotHitEvent{}
	decodeOptional(params, map[string]func([]byte){
		"weapon": func(v []byte) { ev.Weapon = string(v) },
	})
	return ev, nil
}

// DamageEvent records damage dealt to Target. Damage and RealDamage are 0 when absent
// from the log line.
type DamageEvent struct {
	Target     rawevent.Descriptor
	HasTarget  bool
	Damage     int64
	RealDamage int64
	Weapon     string
}

func decodeDamage(params []byte) (any, error) {
	ev := DamageEvent{}
	target, rest, ok := namedSubjectField(params, "against")
	if !ok {
		return nil, decodeErr(rawevent.Damage, "missing against field")
	}
	ev.Target, ev.HasTarget = target, true
	decodeOptional(rest, map[string]func([]byte){
		"damage":     func(v []byte) { ev.Damage, _ = parseInt(v) },
		"realdamage": func(v []byte) { ev.RealDamage, _ = parseInt(v) },
		"weapon":     func(v []byte) { ev.Weapon = string(v) },
	})
	return ev, nil
}

// KillEvent records a kill of Target by the dispatching subject.
type KillEvent struct {
	Target           rawevent.Descriptor
	HasTarget        bool
	Weapon           string
	AttackerPosition Position
	HasAttackerPos   bool
	VictimPosition   Position
	HasVictimPos     bool
}

func decodeKill(params []byte) (any, error) {
	ev := KillEvent{}
	target, rest, ok := positionalSubjectField(params)
	if !ok {
		return nil, decodeErr(rawevent.Killed, "missing target")
	}
	ev.Target, ev.HasTarget = target, true

	weapon, rest, ok := namedField(rest, "with")
	if !ok {
		return nil, decodeErr(rawevent.Killed, "missing weapon")
	}
	ev.Weapon = string(weapon)
	decodeOptional(rest, map[string]func([]byte){
		"attacker_position": func(v []byte) {
			if p, ok := parsePosition(v); ok {
				ev.AttackerPosition, ev.HasAttackerPos = p, true
			}
		},
		"victim_position": func(v []byte) {
			if p, ok := parsePosition(v); ok {
				ev.VictimPosition, ev.HasVictimPos = p, true
			}
		},
	})
	return ev, nil
}

// KillAssistEvent records an assist on Target.
type KillAssistEvent struct {
	Target    rawevent.Descriptor
	HasTarget bool
}

func decodeKillAssist(params []byte) (any, error) {
	target, _, ok := namedSubjectField(params, "against")
	if !ok {
		return nil, decodeErr(rawevent.KillAssist, "missing against field")
	}
	return KillAssistEvent{Target: target, HasTarget: true}, nil
}

// SpawnEvent records a player spawning as Class. Class is empty when the log omits it.
type SpawnEvent struct {
	Class string
}

func decodeSpawn(params []byte) (any, error) {
	ev := SpawnEvent{}
	decodeOptional(params, map[string]func([]byte){
		"as": func(v []byte) { ev.Class = string(v) },
	})
	return ev, nil
}

// RoleChangeEvent records a player changing class mid-life (a loadout/role switch).
type RoleChangeEvent struct {
	Class string
}

func decodeRoleChange(params []byte) (any, error) {
	ev := RoleChangeEvent{}
	decodeOptional(params, map[string]func([]byte){
		"to": func(v []byte) { ev.Class = string(v) },
	})
	return ev, nil
}

// ConnectedEvent records the network address a player connected from.
type ConnectedEvent struct {
	Address string
}

func decodeConnected(params []byte) (any, error) {
	value, _, ok := namedField(params, "address")
	if !ok {
		return nil, decodeErr(rawevent.Connected, "missing address field")
	}
	return ConnectedEvent{Address: string(value)}, nil
}

// JoinedTeamEvent records a player joining a team.
type JoinedTeamEvent struct {
	Team rawevent.Team
}

func decodeJoinedTeam(params []byte) (any, error) {
	value, _, ok := namedField(params, "team")
	if !ok {
		return nil, decodeErr(rawevent.Joined, "missing team field")
	}
	return JoinedTeamEvent{Team: parseTeamName(string(value))}, nil
}

func parseTeamName(s string) rawevent.Team {
	if len(s) == 0 {
		return rawevent.Spectator
	}
	switch s[0] | 0x20 {
	case 'r':
		return rawevent.Red
	case 'b':
		return rawevent.Blue
	default:
		return rawevent.Spectator
	}
}

// CommittedSuicideEvent records a self-kill.
type CommittedSuicideEvent struct {
	Weapon           string
	AttackerPosition Position
	HasAttackerPos   bool
}

func decodeSuicide(params []byte) (any, error) {
	weapon, rest, ok := namedField(params, "with")
	if !ok {
		return nil, decodeErr(rawevent.Suicide, "missing weapon")
	}
	ev := CommittedSuicideEvent{Weapon: string(weapon)}
	decodeOptional(rest, map[string]func([]byte){
		"attacker_position": func(v []byte) {
			if p, ok := parsePosition(v); ok {
				ev.AttackerPosition, ev.HasAttackerPos = p, true
			}
		},
	})
	return ev, nil
}

// PickedUpEvent records a player picking up a dropped item.
type PickedUpEvent struct {
	Item string
}

func decodePickedUp(params []byte) (any, error) {
	value, _, ok := positionalField(params)
	if !ok {
		return nil, decodeErr(rawevent.PickedUp, "missing item")
	}
	return PickedUpEvent{Item: string(value)}, nil
}

// DominationEvent records a domination of Against by the dispatching subject.
type DominationEvent struct {
	Against    rawevent.Descriptor
	HasAgainst bool
}

func decodeDomination(params []byte) (any, error) {
	against, _, ok := namedSubjectField(params, "against")
	if !ok {
		return nil, decodeErr(rawevent.Domination, "missing against field")
	}
	return DominationEvent{Against: against, HasAgainst: true}, nil
}

// RevengeEvent records revenge taken on Against.
type RevengeEvent struct {
	Against    rawevent.Descriptor
	HasAgainst bool
}

func decodeRevenge(params []byte) (any, error) {
	against, _, ok := namedSubjectField(params, "against")
	if !ok {
		return nil, decodeErr(rawevent.Revenge, "missing against field")
	}
	return RevengeEvent{Against: against, HasAgainst: true}, nil
}

// DisconnectEvent records a player disconnecting, with an optional reason.
type DisconnectEvent struct {
	Reason string
}

func decodeDisconnect(params []byte) (any, error) {
	ev := DisconnectEvent{}
	decodeOptional(params, map[string]func([]byte){
		"reason": func(v []byte) { ev.Reason = string(v) },
	})
	return ev, nil
}

// BuiltObjectEvent records a player constructing a building.
type BuiltObjectEvent struct {
	Object string
}

func decodeBuiltObject(params []byte) (any, error) {
	ev := BuiltObjectEvent{}
	decodeOptional(params, map[string]func([]byte){
		"object": func(v []byte) { ev.Object = string(v) },
	})
	return ev, nil
}

// KilledObjectEvent records a building being destroyed.
type KilledObjectEvent struct {
	Object      string
	Weapon      string
	ObjectOwner rawevent.Descriptor
	HasOwner    bool
}

func decodeKilledObject(params []byte) (any, error) {
	ev := KilledObjectEvent{}
	decodeOptional(params, map[string]func([]byte){
		"object": func(v []byte) { ev.Object = string(v) },
		"weapon": func(v []byte) { ev.Weapon = string(v) },
	})
	if owner, ok := scanSubjectField(params, "objectowner"); ok {
		ev.ObjectOwner, ev.HasOwner = owner, true
	}
	return ev, nil
}

// ObjectDetonatedEvent records a player detonating their own building.
type ObjectDetonatedEvent struct {
	Object string
}

func decodeObjectDetonated(params []byte) (any, error) {
	ev := ObjectDetonatedEvent{}
	decodeOptional(params, map[string]func([]byte){
		"object": func(v []byte) { ev.Object = string(v) },
	})
	return ev, nil
}

// ExtinguishedEvent records a player extinguishing a burning teammate.
type ExtinguishedEvent struct {
	Against    rawevent.Descriptor
	HasAgainst bool
	With       string
}

func decodeExtinguished(params []byte) (any, error) {
	against, rest, ok := namedSubjectField(params, "against")
	if !ok {
		return nil, decodeErr(rawevent.PlayerExtinguished, "missing against field")
	}
	weapon, _, ok := namedField(rest, "with")
	if !ok {
		return nil, decodeErr(rawevent.PlayerExtinguished, "missing with field")
	}
	return ExtinguishedEvent{Against: against, HasAgainst: true, With: string(weapon)}, nil
}

// SayEvent/SayTeamEvent carry the raw chat text, unquoted.
type SayEvent struct {
	Text string
}

func decodeSay(params []byte) (any, error) {
	value, _, ok := positionalField(params)
	if !ok {
		return nil, decodeErr(rawevent.Say, "missing message text")
	}
	return SayEvent{Text: string(value)}, nil
}

type SayTeamEvent struct {
	Text string
}

func decodeSayTeam(params []byte) (any, error) {
	value, _, ok := positionalField(params)
	if !ok {
		return nil, decodeErr(rawevent.SayTeam, "missing message text")
	}
	return SayTeamEvent{Text: string(value)}, nil
}
