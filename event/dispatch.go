package event

import "github.com/tf2stats/logparser/rawevent"

// decodeFunc decodes a parameter slice for one event-type tag into its payload value.
type decodeFunc func(params []byte) (any, error)

// dispatch is the closed, build-time event-type → decoder table. Every tag in
// rawevent's keyword table has an entry; tags without a dedicated payload struct
// resolve to decodeGeneric.
var dispatch = map[rawevent.EventType]decodeFunc{
	rawevent.Joined:               decodeJoinedTeam,
	rawevent.ChangedRole:          decodeRoleChange,
	rawevent.ShotFired:            decodeShotFired,
	rawevent.ShotHit:              decodeShotHit,
	rawevent.Damage:               decodeDamage,
	rawevent.Healed:               decodeHealed,
	rawevent.FirstHealAfterSpawn:  decodeFirstHeal,
	rawevent.Killed:               decodeKill,
	rawevent.KillAssist:           decodeKillAssist,
	rawevent.Suicide:              decodeSuicide,
	rawevent.Domination:           decodeDomination,
	rawevent.Revenge:              decodeRevenge,
	rawevent.Spawned:              decodeSpawn,
	rawevent.SayTeam:              decodeSayTeam,
	rawevent.Say:                  decodeSay,
	rawevent.EmptyUber:            decodeGeneric,
	rawevent.PlayerBuiltObject:    decodeBuiltObject,
	rawevent.PlayerDropObject:     decodeBuiltObject,
	rawevent.PlayerCarryObject:    decodeBuiltObject,
	rawevent.RocketJump:           decodeGeneric,
	rawevent.KilledObject:         decodeKilledObject,
	rawevent.ObjectDetonated:      decodeObjectDetonated,
	rawevent.PlayerExtinguished:   decodeExtinguished,
	rawevent.PickedUp:             decodePickedUp,
	rawevent.MedicDeath:           decodeMedicDeath,
	rawevent.MedicDeathEx:         decodeGeneric,
	rawevent.ChargeEnded:          decodeChargeEnded,
	rawevent.ChargeReady:          decodeChargeReady,
	rawevent.ChargeDeployed:       decodeChargeDeployed,
	rawevent.UberAdvantageLost:    decodeAdvantageLost,
	rawevent.RoundStart:           decodeRoundStart,
	rawevent.RoundSetupBegin:      decodeGeneric,
	rawevent.RoundSetupEnd:        decodeGeneric,
	rawevent.MiniRoundSelected:    decodeGeneric,
	rawevent.MiniRoundStart:       decodeGeneric,
	rawevent.RoundWin:             decodeRoundWin,
	rawevent.MiniRoundWin:         decodeRoundWin,
	rawevent.RoundLength:          decodeRoundLength,
	rawevent.MiniRoundLength:      decodeRoundLength,
	rawevent.RoundOvertime:        decodeGeneric,
	rawevent.PointCaptured:        decodePointCaptured,
	rawevent.CaptureBlocked:       decodeCaptureBlocked,
	rawevent.GameOver:             decodeGameOver,
	rawevent.CurrentScore:         decodeCurrentScore,
	rawevent.FinalScore:           decodeFinalScore,
	rawevent.IntermissionWinLimit: decodeGeneric,
	rawevent.GamePaused:           decodeGeneric,
	rawevent.GameUnpaused:         decodeGeneric,
	rawevent.Request:              decodeGeneric,
	rawevent.Response:             decodeGeneric,
	rawevent.Connected:            decodeConnected,
	rawevent.Disconnected:         decodeDisconnect,
	rawevent.SteamIDValidated:     decodeGeneric,
	rawevent.EnteredTheGame:       decodeGeneric,
	rawevent.LogFileStarted:       decodeLogFileStarted,
	rawevent.LogFileClosed:        decodeGeneric,
	rawevent.LogNotUploaded:       decodeGeneric,
	rawevent.ModeStarted:          decodeGeneric,
	rawevent.FlagEvent:            decodeGeneric,
	rawevent.Cvars:                decodeGeneric,
}

// Decode dispatches raw.Params to the decoder registered for raw.Type and returns the
// typed payload. Callers are expected to have already checked, via a handler's
// DoesHandle, that decoding is worthwhile; Decode itself has no knowledge of handlers.
func Decode(tag rawevent.EventType, params []byte) (any, error) {
	decode, ok := dispatch[tag]
	if !ok {
		return decodeGeneric(params)
	}
	return decode(params)
}
