package rawevent

// EventType is the closed enumeration of recognised event keywords, plus the Unknown
// sentinel for anything that doesn't match the keyword table.
type EventType uint8

const (
	Unknown EventType = iota
	Joined
	ChangedRole
	ShotFired
	ShotHit
	Damage
	Healed
	FirstHealAfterSpawn
	Killed
	KillAssist
	Suicide
	Domination
	Revenge
	Spawned
	SayTeam
	Say
	EmptyUber
	PlayerBuiltObject
	PlayerDropObject
	PlayerCarryObject
	RocketJump
	KilledObject
	ObjectDetonated
	PlayerExtinguished
	PickedUp
	MedicDeath
	MedicDeathEx
	ChargeEnded
	ChargeReady
	ChargeDeployed
	UberAdvantageLost
	RoundStart
	RoundSetupBegin
	RoundSetupEnd
	MiniRoundSelected
	MiniRoundStart
	RoundWin
	MiniRoundWin
	RoundLength
	MiniRoundLength
	RoundOvertime
	PointCaptured
	CaptureBlocked
	GameOver
	CurrentScore
	FinalScore
	IntermissionWinLimit
	GamePaused
	GameUnpaused
	Request
	Response
	Connected
	Disconnected
	SteamIDValidated
	EnteredTheGame
	LogFileStarted
	LogFileClosed
	LogNotUploaded
	ModeStarted
	FlagEvent
	Cvars
)

// keyword pairs an event's literal prefix with its tag. Order matters only in that the
// matcher picks the longest matching prefix across the whole table, so overlapping
// prefixes (there are none in this table, but the matcher does not assume that) are
// still resolved correctly.
type keyword struct {
	prefix string
	tag    EventType
}

// keywordTable is the fixed, build-time-closed event keyword table from the external
// interface specification. The verb immediately follows the subject descriptor and a
// single space; everything after the matched prefix, with any further leading space
// trimmed, is the parameter slice.
var keywordTable = []keyword{
	{"joined ", Joined},
	{"changed role ", ChangedRole},
	{`triggered "shot_fired"`, ShotFired},
	{`triggered "shot_hit"`, ShotHit},
	{`triggered "damage"`, Damage},
	{`triggered "healed"`, Healed},
	{`triggered "first_heal_after_spawn"`, FirstHealAfterSpawn},
	{"killed ", Killed},
	{`triggered "kill assist"`, KillAssist},
	{"committed suicide ", Suicide},
	{`triggered "domination"`, Domination},
	{`triggered "revenge"`, Revenge},
	{"spawned ", Spawned},
	{"say_team ", SayTeam},
	{"say ", Say},
	{`triggered "empty_uber"`, EmptyUber},
	{`triggered "player_builtobject"`, PlayerBuiltObject},
	{`triggered "player_dropobject"`, PlayerDropObject},
	{`triggered "player_carryobject"`, PlayerCarryObject},
	{`triggered "rocket_jump"`, RocketJump},
	{`triggered "killedobject"`, KilledObject},
	{`triggered "object_detonated"`, ObjectDetonated},
	{`triggered "player_extinguished"`, PlayerExtinguished},
	{"picked up ", PickedUp},
	{`triggered "medic_death"`, MedicDeath},
	{`triggered "medic_death_ex"`, MedicDeathEx},
	{`triggered "chargeended"`, ChargeEnded},
	{`triggered "chargeready"`, ChargeReady},
	{`triggered "chargedeployed"`, ChargeDeployed},
	{`triggered "lost_uber_advantage"`, UberAdvantageLost},
	{`triggered "Round_Start"`, RoundStart},
	{`triggered "Round_Setup_Begin"`, RoundSetupBegin},
	{`triggered "Round_Setup_End"`, RoundSetupEnd},
	{`triggered "Mini_Round_Selected"`, MiniRoundSelected},
	{`triggered "Mini_Round_Start"`, MiniRoundStart},
	{`triggered "Round_Win"`, RoundWin},
	{`triggered "Mini_Round_Win"`, MiniRoundWin},
	{`triggered "Round_Length"`, RoundLength},
	{`triggered "Mini_Round_Length"`, MiniRoundLength},
	{`triggered "Round_Overtime"`, RoundOvertime},
	{`triggered "pointcaptured"`, PointCaptured},
	{`triggered "captureblocked"`, CaptureBlocked},
	{`triggered "Game_Over"`, GameOver},
	{"current ", CurrentScore},
	{"final ", FinalScore},
	{`triggered "Intermission_Win_Limit"`, IntermissionWinLimit},
	{`triggered "Game_Paused"`, GamePaused},
	{`triggered "Game_Unpaused"`, GameUnpaused},
	{"Request:  ", Request},
	{"Response:  ", Response},
	{"connected, ", Connected},
	{"disconnected ", Disconnected},
	{"STEAM USERID validated ", SteamIDValidated},
	{"entered the game ", EnteredTheGame},
	{"file started ", LogFileStarted},
	{"file closed ", LogFileClosed},
	{"The log might have not been uploaded. ", LogNotUploaded},
	{"mode started ", ModeStarted},
	{`triggered "flagevent"`, FlagEvent},
	{"cvars ", Cvars},
}

// matchEventType performs a longest-prefix match of b against the keyword table. On no
// match it returns (Unknown, b) unchanged: Unknown consumes no input.
func matchEventType(b []byte) (EventType, []byte) {
	best := -1
	bestTag := Unknown
	for _, kw := range keywordTable {
		if len(kw.prefix) <= len(b) && string(b[:len(kw.prefix)]) == kw.prefix {
			if len(kw.prefix) > best {
				best = len(kw.prefix)
				bestTag = kw.tag
			}
		}
	}
	if best < 0 {
		return Unknown, b
	}
	rest := b[best:]
	for len(rest) > 0 && rest[0] == ' ' {
		rest = rest[1:]
		break
	}
	return bestTag, rest
}
