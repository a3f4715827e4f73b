// Package subject resolves raw subject descriptors into compact, hashable identities
// and owns the single map from identity to per-subject data and handler state.
package subject

import (
	"hash/fnv"
	"strconv"

	"github.com/tf2stats/logparser/rawevent"
)

// Kind is the closed set of identity shapes a subject can resolve to.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindTeam
	KindBot
	KindSystem
	KindWorld
	KindConsole
	KindMalformedPlayer
)

// Identity is a small, comparable value suitable as a map key. Only the fields
// meaningful for Kind are populated; the rest are zero.
type Identity struct {
	Kind      Kind
	AccountID uint32
	Team      rawevent.Team
	UserID    uint32
	Hash      uint64
}

// Resolve turns a raw subject descriptor into an Identity. Resolution never fails:
// unparsable player descriptors fall back to Bot (when a user id is at least present)
// or MalformedPlayer (keyed by a stable hash of the raw descriptor text) so that every
// line can always be attributed to some subject.
func Resolve(d rawevent.Descriptor) Identity {
	switch d.Kind {
	case rawevent.DescTeam:
		return Identity{Kind: KindTeam, Team: d.TeamOf}
	case rawevent.DescSystem:
		return Identity{Kind: KindSystem}
	case rawevent.DescWorld:
		return Identity{Kind: KindWorld}
	case rawevent.DescConsole:
		return Identity{Kind: KindConsole}
	case rawevent.DescPlayer:
		return resolvePlayer(d.Raw)
	default:
		return Identity{Kind: KindSystem}
	}
}

func resolvePlayer(raw string) Identity {
	if accountID, ok := tailAccountID(raw); ok {
		return Identity{Kind: KindPlayer, AccountID: accountID}
	}

	_, userID, steamID, _, ok := splitSections(raw)
	if ok {
		if accountID, ok := parseSteamID(steamID); ok {
			return Identity{Kind: KindPlayer, AccountID: accountID}
		}
		if uid, err := strconv.ParseUint(userID, 10, 32); err == nil {
			return Identity{Kind: KindBot, UserID: uint32(uid)}
		}
	}
	return Identity{Kind: KindMalformedPlayer, Hash: stableHash(raw)}
}

func stableHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
