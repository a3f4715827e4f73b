package subject

import "github.com/tf2stats/logparser/rawevent"

// Data is the descriptive information carried by a subject, as distinct from its
// Identity (which exists purely for hashing and equality). It is filled in from
// whichever fields the descriptor kind actually carries; Player descriptors also carry
// the full local user id, not just the Bot fallback's user id.
type Data struct {
	Name      string
	UserID    uint32
	AccountID uint32
	Team      rawevent.Team
}

// dataFromDescriptor extracts the descriptive fields that accompany an already-resolved
// identity. It is best-effort: a MalformedPlayer identity still gets whatever raw name
// could be recovered.
func dataFromDescriptor(d rawevent.Descriptor, id Identity) Data {
	switch d.Kind {
	case rawevent.DescTeam:
		return Data{Team: d.TeamOf}
	case rawevent.DescSystem:
		return Data{Name: d.Raw}
	case rawevent.DescPlayer:
		name, userID, _, team, ok := splitSections(d.Raw)
		data := Data{AccountID: id.AccountID}
		if ok {
			data.Name = name
			data.Team = parseTeamName(team)
			if uid, ok := parseUint32(userID); ok {
				data.UserID = uid
			}
		}
		return data
	default:
		return Data{}
	}
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
