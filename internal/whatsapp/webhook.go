package whatsapp

import (
	"encoding/json"
	"fmt"

	"github.com/isufellowship/attendance-bot/internal/model"
)

// envelope mirrors the parts of the Cloud API webhook payload we read.
type envelope struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Statuses []json.RawMessage `json:"statuses"`
				Messages []inboundMessage  `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type inboundMessage struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
	Interactive *struct {
		Type        string `json:"type"`
		ButtonReply struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply"`
	} `json:"interactive"`
}

// ParseEvent decodes one webhook delivery into an Event. It returns
// (nil, nil) for payloads that carry nothing to act on: delivery status
// callbacks and envelopes missing entry/changes/messages. Only malformed
// JSON is an error.
//
// A delivery may in principle batch several entries, changes, and
// messages; like the platform examples, only index 0 of each is examined.
func ParseEvent(body []byte) (*model.Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("whatsapp: decoding webhook payload: %w", err)
	}

	if len(env.Entry) == 0 || len(env.Entry[0].Changes) == 0 {
		return nil, nil
	}

	value := env.Entry[0].Changes[0].Value

	// Delivery receipts (sent/delivered/read) are not user events.
	if len(value.Statuses) > 0 {
		return nil, nil
	}

	if len(value.Messages) == 0 {
		return nil, nil
	}

	msg := value.Messages[0]
	if msg.From == "" {
		return nil, nil
	}

	ev := &model.Event{From: msg.From, Kind: model.EventOther}
	switch {
	case msg.Type == "text" && msg.Text != nil:
		ev.Kind = model.EventText
		ev.Text = msg.Text.Body
	case msg.Type == "interactive" && msg.Interactive != nil:
		ev.Kind = model.EventInteractive
		ev.ChoiceID = msg.Interactive.ButtonReply.ID
	}

	return ev, nil
}
