package handler

import (
	"encoding/json"

	"github.com/tf2stats/logparser/event"
	"github.com/tf2stats/logparser/rawevent"
	"github.com/tf2stats/logparser/subject"
)

// ChatType distinguishes an all-chat message from a team-only one.
type ChatType uint8

const (
	ChatAll ChatType = iota
	ChatTeam
)

func (c ChatType) MarshalJSON() ([]byte, error) {
	if c == ChatTeam {
		return json.Marshal("team")
	}
	return json.Marshal("all")
}

// ChatMessage is one resolved chat line. Name and SteamID are filled in at Finish time
// from the subject map; Time and Text are captured when the event was handled.
type ChatMessage struct {
	Time    uint32   `json:"time"`
	Name    string   `json:"name"`
	SteamID string   `json:"steam_id"`
	Text    string   `json:"text"`
	Type    ChatType `json:"type"`
}

// bareChatMessage is what gets buffered while parsing: everything but the speaker's
// name and steam id, which live in the subject map and are only resolved once, at
// Finish, rather than copied out on every line.
type bareChatMessage struct {
	time    uint32
	subject subject.Identity
	text    string
	kind    ChatType
}

// chatHandler buffers say/say_team lines from player subjects in arrival order.
type chatHandler struct {
	messages []bareChatMessage
}

func (h *chatHandler) DoesHandle(tag rawevent.EventType) bool {
	return tag == rawevent.Say || tag == rawevent.SayTeam
}

func (h *chatHandler) OnEvent(meta Meta, id subject.Identity, ev any) {
	if id.Kind != subject.KindPlayer {
		return
	}
	switch v := ev.(type) {
	case event.SayEvent:
		h.messages = append(h.messages, bareChatMessage{time: meta.Time, subject: id, text: v.Text, kind: ChatAll})
	case event.SayTeamEvent:
		h.messages = append(h.messages, bareChatMessage{time: meta.Time, subject: id, text: v.Text, kind: ChatTeam})
	}
}

func (h *chatHandler) Finish(subjects *subject.Map) []ChatMessage {
	out := make([]ChatMessage, 0, len(h.messages))
	for _, bare := range h.messages {
		entry, ok := subjects.Get(bare.subject)
		if !ok {
			continue
		}
		out = append(out, ChatMessage{
			Time:    bare.time,
			Name:    entry.Data.Name,
			SteamID: Steam3(bare.subject),
			Text:    bare.text,
			Type:    bare.kind,
		})
	}
	return out
}
