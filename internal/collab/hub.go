package collab

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/geokernel/internal/engine"
	"github.com/inamate/geokernel/internal/geom"
	"github.com/inamate/geokernel/internal/store"
)

const loadTimeout = 5 * time.Second

// Room is one project's session: its clients, their presence and an engine
// over the project's latest document.
type Room struct {
	projectID string
	clients   map[string]*Client // clientID -> client
	presence  *Roster

	// engine is not safe for concurrent use; engineMu serializes queries
	// coming from different client read pumps.
	engineMu sync.Mutex
	engine   *engine.Engine
}

func NewRoom(projectID string, e *engine.Engine) *Room {
	return &Room{
		projectID: projectID,
		clients:   make(map[string]*Client),
		presence:  NewRoster(),
		engine:    e,
	}
}

// registration carries a joining client and the engine loaded for its
// project. The engine seeds the room only when the client opens it.
type registration struct {
	client *Client
	engine *engine.Engine
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // projectID -> room
	register   chan registration
	unregister chan *Client

	docs     store.Loader
	settings engine.Settings

	done     chan struct{}
	stopOnce sync.Once
}

func NewHub(docs store.Loader, settings engine.Settings) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan registration),
		unregister: make(chan *Client),
		docs:       docs,
		settings:   settings,
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			h.addClient(reg)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Stop ends Run and closes every client's send queue, which closes their
// connections.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Register loads the client's project on the calling goroutine, then hands
// the client to Run. A slow store stalls only this join.
func (h *Hub) Register(ctx context.Context, client *Client) {
	reg := registration{client: client, engine: h.newEngine(ctx, client.ProjectID)}
	if ctx.Err() != nil {
		// Gone while loading; do not open a room on an unloaded engine.
		client.conn.CloseNow()
		return
	}
	select {
	case h.register <- reg:
	case <-h.done:
		client.conn.CloseNow()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// newEngine loads the project's document. A failed load still yields an
// engine, which answers every query with engine.ErrNoDocument.
func (h *Hub) newEngine(ctx context.Context, projectID string) *engine.Engine {
	e := engine.NewEngine(h.settings)

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	doc, err := h.docs.LatestDocument(ctx, projectID)
	if err != nil {
		slog.Warn("load document for room", "error", err, "project", projectID)
		return e
	}
	e.SetDocument(doc)
	return e
}

func (h *Hub) addClient(reg registration) {
	client := reg.client

	h.mu.Lock()
	room, ok := h.rooms[client.ProjectID]
	if !ok {
		room = NewRoom(client.ProjectID, reg.engine)
		h.rooms[client.ProjectID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	room.engineMu.Lock()
	scene := room.engine.GetScene()
	room.engineMu.Unlock()

	welcome, _ := json.Marshal(WelcomePayload{
		ClientID: client.ClientID,
		UserID:   client.UserID,
		Scene:    json.RawMessage(scene),
	})
	h.sendTo(client, &Message{Type: TypeWelcome, Payload: welcome})

	if state, err := room.presence.StateMessage(); err != nil {
		slog.Error("presence state", "error", err, "project", client.ProjectID)
	} else {
		h.sendTo(client, state)
	}

	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		ClientID:    client.ClientID,
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg := &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}
	h.broadcastToRoom(client.ProjectID, joinMsg, client.ClientID)

	slog.Info("client joined", "client", client.ClientID, "user", client.UserID, "project", client.ProjectID, "newRoom", !ok)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.ProjectID]
	if !ok || room.clients[client.ClientID] != client {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.Remove(client.ClientID)

	if len(room.clients) == 0 {
		delete(h.rooms, client.ProjectID)
	}
	h.mu.Unlock()

	leavePayload, _ := json.Marshal(PresenceLeavePayload{
		ClientID: client.ClientID,
		UserID:   client.UserID,
	})
	leaveMsg := &Message{
		Type:    TypePresenceLeave,
		UserID:  client.UserID,
		Payload: leavePayload,
	}
	h.broadcastToRoom(client.ProjectID, leaveMsg, "")

	slog.Info("client left", "client", client.ClientID, "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for _, c := range room.clients {
			close(c.send)
		}
		delete(h.rooms, id)
	}
}

func (h *Hub) room(projectID string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[projectID]
	return room, ok
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeQueryFrame:
		h.handleFrameQuery(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
		h.sendError(sender, "", "unknown message type: "+msg.Type)
	}
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err, "client", sender.ClientID)
		h.sendError(sender, "", "invalid presence payload")
		return
	}

	presence.UserID = sender.UserID
	presence.DisplayName = sender.DisplayName
	presence.DropTargetID = nil

	room, ok := h.room(sender.ProjectID)
	if !ok {
		return
	}

	// A drag resolves its drop target and goes to the whole room, sender
	// included, so the dragging client sees the highlight too.
	exclude := sender.ClientID
	if presence.DragRect != nil {
		if err := presence.DragRect.Validate(); err != nil {
			h.sendError(sender, "", err.Error())
			return
		}
		exclude = ""
		if id, found, err := room.dropTarget(*presence.DragRect); err != nil {
			slog.Debug("resolve drop target", "error", err, "project", sender.ProjectID)
		} else if found {
			presence.DropTargetID = &id
		}
	}

	if !h.recordPresence(sender, presence) {
		return
	}

	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:     TypePresenceUpdate,
		ClientID: sender.ClientID,
		UserID:   sender.UserID,
		Payload:  outPayload,
	}
	h.broadcastToRoom(sender.ProjectID, outMsg, exclude)
}

// recordPresence stores p for a client that is still in its room. It holds
// the read lock so a concurrent removeClient cannot leave a stale entry.
func (h *Hub) recordPresence(c *Client, p PresencePayload) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[c.ProjectID]
	if !ok || room.clients[c.ClientID] != c {
		return false
	}
	room.presence.Set(c.ClientID, p)
	return true
}

func (h *Hub) handleFrameQuery(sender *Client, msg *Message) {
	var query FrameQueryPayload
	if err := json.Unmarshal(msg.Payload, &query); err != nil {
		h.sendError(sender, "", "invalid query payload")
		return
	}

	room, ok := h.room(sender.ProjectID)
	if !ok {
		return
	}

	selection := query.Selection
	if len(selection) == 0 {
		selection = room.presence.Selection(sender.ClientID)
	}

	delta, found, err := room.frameSelection(selection, query.Viewport)
	if err != nil {
		h.sendError(sender, query.RequestID, err.Error())
		return
	}

	result := FrameResultPayload{RequestID: query.RequestID}
	if found {
		result.Delta = &delta
	}
	payload, _ := json.Marshal(result)
	h.sendTo(sender, &Message{Type: TypeQueryResult, Payload: payload})
}

func (r *Room) dropTarget(rect geom.Rect) (string, bool, error) {
	r.engineMu.Lock()
	defer r.engineMu.Unlock()
	return r.engine.DropTarget(rect)
}

func (r *Room) frameSelection(selection []string, viewport geom.Rect) (geom.Vec2, bool, error) {
	r.engineMu.Lock()
	defer r.engineMu.Unlock()
	r.engine.SetSelection(selection)
	return r.engine.FrameSelection(viewport)
}

func (h *Hub) sendError(c *Client, requestID, text string) {
	payload, _ := json.Marshal(ErrorPayload{RequestID: requestID, Error: text})
	h.sendTo(c, &Message{Type: TypeError, Payload: payload})
}

// sendTo delivers to one client while it is still registered. Sends happen
// under the read lock so removeClient cannot close the queue mid-send.
func (h *Hub) sendTo(c *Client, msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[c.ProjectID]
	if !ok || room.clients[c.ClientID] != c {
		return
	}
	c.Send(msg)
}

func (h *Hub) broadcastToRoom(projectID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[projectID]
	if !ok {
		return
	}

	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			c.Send(msg)
		}
	}
}
