package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	maxFrameSize = 64 * 1024
	sendBuffer   = 256
)

// Identity is who a connection speaks for.
type Identity struct {
	UserID      string
	DisplayName string
}

// Client is one websocket connection in a project room.
//
// Presence updates do not run on the read loop. They pass through a
// one-slot mailbox that keeps only the newest update, so a burst of drag
// frames resolves a single drop target instead of one per frame.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	presence chan *Message

	Identity
	ProjectID string
	ClientID  string
}

func NewClient(hub *Hub, conn *websocket.Conn, projectID, clientID string, id Identity) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		presence:  make(chan *Message, 1),
		Identity:  id,
		ProjectID: projectID,
		ClientID:  clientID,
	}
}

// ReadPump reads frames until the connection fails, then leaves the room.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxFrameSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				slog.Debug("read error", "error", err, "client", c.ClientID)
			}
			return
		}

		msg, err := c.decode(data)
		if err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			continue
		}

		if msg.Type == TypePresenceUpdate {
			c.offerPresence(msg)
			continue
		}
		c.hub.handleMessage(c, msg)
	}
}

// decode parses a frame and stamps it with the connection's identity; client
// supplied routing fields are ignored.
func (c *Client) decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	msg.UserID = c.UserID
	msg.ClientID = c.ClientID
	msg.ProjectID = c.ProjectID
	return &msg, nil
}

// offerPresence puts msg in the mailbox, replacing any update the presence
// pump has not picked up yet. Only the read loop calls it.
func (c *Client) offerPresence(msg *Message) {
	for {
		select {
		case c.presence <- msg:
			return
		default:
		}
		select {
		case <-c.presence:
			slog.Debug("coalesced presence update", "client", c.ClientID)
		default:
		}
	}
}

// PresencePump applies presence updates from the mailbox until ctx ends.
func (c *Client) PresencePump(ctx context.Context) {
	for {
		select {
		case msg := <-c.presence:
			c.hub.handleMessage(c, msg)
		case <-ctx.Done():
			return
		}
	}
}

// WritePump drains the send queue and keeps the connection alive with pings.
// It returns when the hub closes the queue or ctx ends.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.write(ctx, frame); err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(ctx context.Context, frame []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, frame)
}

// Send queues msg without blocking. A full queue drops the message.
func (c *Client) Send(msg *Message) {
	frame, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err, "type", msg.Type)
		return
	}

	select {
	case c.send <- frame:
	default:
		slog.Warn("send queue full, dropping message", "client", c.ClientID, "type", msg.Type)
	}
}
