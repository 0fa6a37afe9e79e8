package collab

import (
	"encoding/json"

	"github.com/inamate/geokernel/internal/geom"
)

type Message struct {
	Type      string          `json:"type"`
	ProjectID string          `json:"projectId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// PresencePayload is what a client reports about itself. The hub stamps
// UserID and DisplayName before fanning it out.
type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	Selection   []string   `json:"selection,omitempty"`
	UserID      string     `json:"userId,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`

	// DragRect is the world rect of content being dragged. The hub fills in
	// DropTargetID with the container that would receive it.
	DragRect     *geom.Rect `json:"dragRect,omitempty"`
	DropTargetID *string    `json:"dropTargetId,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PresenceStatePayload maps client ID to that client's latest presence.
type PresenceStatePayload struct {
	Presences map[string]PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	ClientID    string `json:"clientId"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
	UserID   string `json:"userId"`
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	UserID   string `json:"userId"`
	// Scene is the active scene metadata, or {} when no document is loaded.
	Scene json.RawMessage `json:"scene"`
}

// FrameQueryPayload asks for the pan that brings a selection into view. An
// empty selection means the sender's current presence selection.
type FrameQueryPayload struct {
	RequestID string    `json:"requestId,omitempty"`
	Selection []string  `json:"selection,omitempty"`
	Viewport  geom.Rect `json:"viewport"`
}

// FrameResultPayload carries a null delta when the selection is visible.
type FrameResultPayload struct {
	RequestID string     `json:"requestId,omitempty"`
	Delta     *geom.Vec2 `json:"delta"`
}

type ErrorPayload struct {
	RequestID string `json:"requestId,omitempty"`
	Error     string `json:"error"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Queries
	TypeQueryFrame  = "query.frame"
	TypeQueryResult = "query.result"
)
