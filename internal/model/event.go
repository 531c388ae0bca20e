package model

// EventKind discriminates the inbound event union after platform decoding.
type EventKind string

const (
	// EventText is a plain text message.
	EventText EventKind = "text"
	// EventInteractive is a button reply carrying a choice id.
	EventInteractive EventKind = "interactive"
	// EventOther is anything else a user can send (media, stickers, ...).
	EventOther EventKind = "other"
)

// Event is one decoded inbound message. Text is set only for EventText,
// ChoiceID only for EventInteractive.
type Event struct {
	From     string
	Kind     EventKind
	Text     string
	ChoiceID string
}

// ButtonOption is one choice in a multiple-choice prompt.
type ButtonOption struct {
	ID    string
	Label string
}
