package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isufellowship/attendance-bot/internal/model"
)

func TestParseEvent_TextMessage(t *testing.T) {
	body := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"from": "+1555",
						"type": "text",
						"text": {"body": "Alice"}
					}]
				}
			}]
		}]
	}`

	ev, err := ParseEvent([]byte(body))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "+1555", ev.From)
	assert.Equal(t, model.EventText, ev.Kind)
	assert.Equal(t, "Alice", ev.Text)
}

func TestParseEvent_InteractiveReply(t *testing.T) {
	body := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"from": "+1555",
						"type": "interactive",
						"interactive": {
							"type": "button_reply",
							"button_reply": {"id": "mon", "title": "Monday"}
						}
					}]
				}
			}]
		}]
	}`

	ev, err := ParseEvent([]byte(body))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, model.EventInteractive, ev.Kind)
	assert.Equal(t, "mon", ev.ChoiceID)
}

func TestParseEvent_MediaMessageIsOther(t *testing.T) {
	body := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"from": "+1555",
						"type": "image"
					}]
				}
			}]
		}]
	}`

	ev, err := ParseEvent([]byte(body))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, model.EventOther, ev.Kind)
	assert.Equal(t, "+1555", ev.From)
}

func TestParseEvent_StatusUpdateIgnored(t *testing.T) {
	body := `{
		"entry": [{
			"changes": [{
				"value": {
					"statuses": [{"id": "wamid.x", "status": "delivered"}]
				}
			}]
		}]
	}`

	ev, err := ParseEvent([]byte(body))
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestParseEvent_IncompletePayloadsIgnored(t *testing.T) {
	cases := map[string]string{
		"no entry":    `{}`,
		"empty entry": `{"entry": []}`,
		"no changes":  `{"entry": [{}]}`,
		"no messages": `{"entry": [{"changes": [{"value": {}}]}]}`,
		"no sender":   `{"entry": [{"changes": [{"value": {"messages": [{"type": "text", "text": {"body": "x"}}]}}]}]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			ev, err := ParseEvent([]byte(body))
			require.NoError(t, err)
			assert.Nil(t, ev)
		})
	}
}

func TestParseEvent_MalformedJSON(t *testing.T) {
	_, err := ParseEvent([]byte(`{"entry": [`))
	require.Error(t, err)
}

func TestParseEvent_OnlyFirstMessageExamined(t *testing.T) {
	body := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [
						{"from": "+1111", "type": "text", "text": {"body": "first"}},
						{"from": "+2222", "type": "text", "text": {"body": "second"}}
					]
				}
			}]
		}]
	}`

	ev, err := ParseEvent([]byte(body))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "+1111", ev.From)
	assert.Equal(t, "first", ev.Text)
}
