package collab

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster(t *testing.T) {
	r := NewRoster()
	selection := []string{"a", "b"}
	r.Set("c1", PresencePayload{UserID: "u1", Selection: selection})
	r.Set("c2", PresencePayload{UserID: "u1"})
	assert.Equal(t, 2, r.Len(), "two tabs of one user are separate entries")

	selection[0] = "mutated"
	got := r.Selection("c1")
	assert.Equal(t, []string{"a", "b"}, got)
	got[1] = "mutated"
	assert.Equal(t, []string{"a", "b"}, r.Selection("c1"))
	assert.Empty(t, r.Selection("missing"))

	r.Remove("c1")
	assert.Equal(t, 1, r.Len())
}

func TestRosterStateMessage(t *testing.T) {
	r := NewRoster()
	msg, err := r.StateMessage()
	require.NoError(t, err)
	assert.Equal(t, TypePresenceState, msg.Type)
	assert.JSONEq(t, `{"presences":{}}`, string(msg.Payload))

	r.Set("c1", PresencePayload{UserID: "u1", Cursor: &CursorPos{X: 1, Y: 2}})
	msg, err = r.StateMessage()
	require.NoError(t, err)
	var state PresenceStatePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	require.Contains(t, state.Presences, "c1")
	assert.Equal(t, "u1", state.Presences["c1"].UserID)
}
