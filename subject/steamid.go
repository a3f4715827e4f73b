package subject

import "strconv"

// tailAccountID implements the fast path for resolving a player descriptor to an
// account id: look for a steam3-shaped "...:<digits>]" substring near the tail of the
// descriptor without fully splitting it into sections. This mirrors the common case
// where the descriptor is "name<user_id><[U:1:12345]><team>" and lets the frequent path
// skip the full right-to-left split below.
func tailAccountID(raw string) (uint32, bool) {
	lastColon := lastIndexByte(raw, ':')
	if lastColon < 0 {
		return 0, false
	}
	tail := raw[lastColon+1:]
	end := indexByte(tail, ']')
	if end < 0 {
		return 0, false
	}
	return parseUint32(tail[:end])
}

// splitSections divides a player descriptor into its four sections by scanning for '<'
// right to left, stripping the trailing '>' from each of the last three sections. This
// tolerates a player name that itself contains '<' characters, which a left-to-right
// split would misparse.
func splitSections(raw string) (name, userID, steamID, team string, ok bool) {
	i3 := lastIndexByte(raw, '<')
	if i3 < 0 || len(raw) == 0 || raw[len(raw)-1] != '>' {
		return "", "", "", "", false
	}
	team = raw[i3+1 : len(raw)-1]
	rest := raw[:i3]

	i2 := lastIndexByte(rest, '<')
	if i2 < 0 || len(rest) == 0 || rest[len(rest)-1] != '>' {
		return "", "", "", "", false
	}
	steamID = rest[i2+1 : len(rest)-1]
	rest = rest[:i2]

	i1 := lastIndexByte(rest, '<')
	if i1 < 0 || len(rest) == 0 || rest[len(rest)-1] != '>' {
		return "", "", "", "", false
	}
	userID = rest[i1+1 : len(rest)-1]
	name = rest[:i1]
	return name, userID, steamID, team, true
}

// parseSteamID accepts either Steam2 ("STEAM_X:Y:Z") or Steam3 ("[U:1:Z]" or "U:1:Z")
// textual ids and returns the account id they name.
func parseSteamID(s string) (uint32, bool) {
	if len(s) > 0 && s[0] == '[' && s[len(s)-1] == ']' {
		s = s[1 : len(s)-1]
	}
	if len(s) >= 6 && s[:6] == "STEAM_" {
		return parseSteam2(s[6:])
	}
	if len(s) >= 2 && s[0] == 'U' && s[1] == ':' {
		return parseSteam3Body(s)
	}
	return 0, false
}

// parseSteam2 parses the "X:Y:Z" body following the "STEAM_" prefix, where Y is 0 or 1
// and Z is the authentication server number. account_id = Z*2 + Y.
func parseSteam2(body string) (uint32, bool) {
	// body is "X:Y:Z"
	firstColon := indexByte(body, ':')
	if firstColon < 0 {
		return 0, false
	}
	rest := body[firstColon+1:]
	secondColon := indexByte(rest, ':')
	if secondColon < 0 {
		return 0, false
	}
	y, err := strconv.ParseUint(rest[:secondColon], 10, 32)
	if err != nil || y > 1 {
		return 0, false
	}
	z, err := strconv.ParseUint(rest[secondColon+1:], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(z*2 + y), true
}

// parseSteam3Body parses "U:1:Z" (the account-type and instance fields are not
// validated beyond being present) and returns Z.
func parseSteam3Body(s string) (uint32, bool) {
	firstColon := indexByte(s, ':')
	if firstColon < 0 {
		return 0, false
	}
	rest := s[firstColon+1:]
	secondColon := indexByte(rest, ':')
	if secondColon < 0 {
		return 0, false
	}
	return parseUint32(rest[secondColon+1:])
}

func parseUint32(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func lastIndexByte(s string, c byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == c {
			return i
		}
	}
	return -1
}
