package handler

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/tf2stats/logparser/event"
	"github.com/tf2stats/logparser/rawevent"
	"github.com/tf2stats/logparser/subject"
)

// GameType is the lobby's team-size format, as announced by the lobby bot.
type GameType uint8

const (
	GameTypeSixes GameType = iota
	GameTypeHighlander
)

func (g GameType) MarshalJSON() ([]byte, error) {
	if g == GameTypeHighlander {
		return json.Marshal("highlander")
	}
	return json.Marshal("6v6")
}

func parseGameType(s string) (GameType, bool) {
	switch s {
	case "6v6":
		return GameTypeSixes, true
	case "highlander":
		return GameTypeHighlander, true
	default:
		return 0, false
	}
}

// Region is the lobby's announced server region.
type Region uint8

const (
	RegionEurope Region = iota
	RegionNorthAmerica
)

func (r Region) MarshalJSON() ([]byte, error) {
	if r == RegionNorthAmerica {
		return json.Marshal("North America")
	}
	return json.Marshal("Europe")
}

func parseRegion(s string) (Region, bool) {
	switch s {
	case "Europe":
		return RegionEurope, true
	case "North America":
		return RegionNorthAmerica, true
	default:
		return 0, false
	}
}

// LobbyLeader is the name and steam id of the player who created the lobby, as
// announced in `Leader: Name (76561198000000000)`.
type LobbyLeader struct {
	Name    string `json:"name"`
	SteamID uint64 `json:"steam_id"`
}

func parseLobbyLeader(s string) (LobbyLeader, bool) {
	name, rest, ok := cutSuffix(s, " (")
	if !ok {
		return LobbyLeader{}, false
	}
	rest = strings.TrimSuffix(rest, ")")
	id, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return LobbyLeader{}, false
	}
	return LobbyLeader{Name: name, SteamID: id}, true
}

// cutSuffix splits s on the last occurrence of sep, mirroring Rust's rsplit_once.
func cutSuffix(s, sep string) (before, after string, ok bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

// LobbySettings is the full set of lobby metadata a lobby-management bot announces in
// chat at the start of a match.
type LobbySettings struct {
	ID                int64       `json:"id"`
	Leader            LobbyLeader `json:"leader"`
	Map               string      `json:"map"`
	GameType          GameType    `json:"game_type"`
	Region            Region      `json:"region"`
	Advanced          bool        `json:"advanced"`
	RegionLock        bool        `json:"region_lock"`
	AllowOffclassing  bool        `json:"allow_offclassing"`
	Balancing         bool        `json:"balancing"`
	Restriction       string      `json:"restriction"`
	MumbleRequired    bool        `json:"mumble_required"`
	LaunchDate        time.Time   `json:"launch_date"`
	Server            string      `json:"server"`
}

// LobbySettingsOutcome is the finished, once-per-match output: either no lobby
// metadata was ever announced, a fully-parsed Settings, or the error that stopped
// parsing partway through.
type LobbySettingsOutcome struct {
	Settings *LobbySettings `json:"settings,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// lobbyState is the 3-state machine the handler walks through: no lobby announcement
// seen yet, actively accumulating one, or stuck on a line it could not parse.
type lobbyState uint8

const (
	lobbyNotAvailable lobbyState = iota
	lobbyActive
	lobbyErr
)

type lobbySettingsHandler struct {
	state    lobbyState
	settings LobbySettings
	err      error
}

// lobbyError reports a lobby-announcement line that could not be parsed, putting the
// handler into its terminal lobbyErr state.
type lobbyError struct {
	msg string
}

func (e *lobbyError) Error() string { return e.msg }

func (h *lobbySettingsHandler) DoesHandle(tag rawevent.EventType) bool {
	return tag == rawevent.Say
}

func (h *lobbySettingsHandler) OnEvent(id subject.Identity, ev any) {
	if id.Kind != subject.KindConsole {
		return
	}
	say, ok := ev.(event.SayEvent)
	if !ok {
		return
	}
	if err := h.tryHandle(say.Text); err != nil {
		h.state = lobbyErr
		h.err = err
	}
}

func (h *lobbySettingsHandler) tryHandle(msg string) error {
	switch h.state {
	case lobbyNotAvailable:
		rest, ok := strings.CutPrefix(msg, "TF2Center Lobby #")
		if !ok {
			return nil
		}
		idText, _, ok := strings.Cut(rest, " |")
		if !ok {
			return nil
		}
		id, err := strconv.ParseInt(idText, 10, 64)
		if err != nil {
			return &lobbyError{"invalid lobby id: " + idText}
		}
		h.settings = LobbySettings{ID: id}
		h.state = lobbyActive
		return nil
	case lobbyActive:
		key, value, ok := strings.Cut(msg, ": ")
		if !ok {
			return nil
		}
		return h.applyField(key, value)
	default:
		return nil
	}
}

func (h *lobbySettingsHandler) applyField(key, value string) error {
	s := &h.settings
	switch key {
	case "Leader":
		leader, ok := parseLobbyLeader(value)
		if !ok {
			return &lobbyError{"malformed leader: " + value}
		}
		s.Leader = leader
	case "Map":
		s.Map = value
	case "GameType":
		gt, ok := parseGameType(value)
		if !ok {
			return &lobbyError{"unknown game type: " + value}
		}
		s.GameType = gt
	case "Location":
		region, ok := parseRegion(value)
		if !ok {
			return &lobbyError{"unknown location: " + value}
		}
		s.Region = region
	case "Advanced Lobby":
		return parseLobbyBool(value, &s.Advanced)
	case "Region lock":
		return parseLobbyBool(value, &s.RegionLock)
	case "Allow offclassing":
		return parseLobbyBool(value, &s.AllowOffclassing)
	case "Balancing":
		return parseLobbyBool(value, &s.Balancing)
	case "Restriction":
		s.Restriction = value
	case "Mumble required":
		return parseLobbyBool(value, &s.MumbleRequired)
	case "Launch date":
		date, err := parseLobbyDate(value)
		if err != nil {
			return err
		}
		s.LaunchDate = date
	case "Server":
		s.Server = value
	}
	return nil
}

func parseLobbyBool(value string, dst *bool) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return &lobbyError{"invalid bool: " + value}
	}
	*dst = v
	return nil
}

// lobbyDateLayout mirrors the chrono format string the lobby bot's announcement uses:
// "Mon Jan 2 15:04:05 MST 2006", trimmed of its timezone abbreviation first since Go's
// time package does not resolve CET/CEST names on its own.
const lobbyDateLayout = "Mon Jan 2 15:04:05 2006"

func parseLobbyDate(value string) (time.Time, error) {
	loc, rest, err := lobbyTimezone(value)
	if err != nil {
		return time.Time{}, err
	}
	t, parseErr := time.ParseInLocation(lobbyDateLayout, rest, loc)
	if parseErr != nil {
		return time.Time{}, &lobbyError{"invalid launch date: " + value}
	}
	return t.UTC(), nil
}

// lobbyTimezone strips the known CET/CEST zone abbreviation out of the date string and
// returns the matching fixed offset, since the log carries no IANA zone database entry
// to resolve it from.
func lobbyTimezone(value string) (*time.Location, string, error) {
	switch {
	case strings.Contains(value, " CEST "):
		return time.FixedZone("CEST", 2*60*60), strings.Replace(value, " CEST ", " ", 1), nil
	case strings.Contains(value, " CET "):
		return time.FixedZone("CET", 60*60), strings.Replace(value, " CET ", " ", 1), nil
	default:
		return nil, "", &lobbyError{"unknown timezone in date: " + value}
	}
}

func (h *lobbySettingsHandler) Finish() *LobbySettingsOutcome {
	switch h.state {
	case lobbyNotAvailable:
		return nil
	case lobbyActive:
		settings := h.settings
		return &LobbySettingsOutcome{Settings: &settings}
	default:
		return &LobbySettingsOutcome{Error: h.err.Error()}
	}
}
