package collab

import (
	"encoding/json"
	"fmt"
	"maps"
	"sync"
)

// Roster holds the newest presence of every client in a room. Entries are
// keyed by client ID, so one user with two tabs shows up twice.
type Roster struct {
	mu      sync.RWMutex
	entries map[string]PresencePayload
}

func NewRoster() *Roster {
	return &Roster{entries: make(map[string]PresencePayload)}
}

// Set replaces the client's entry with a copy of p.
func (r *Roster) Set(clientID string, p PresencePayload) {
	p.Selection = append([]string(nil), p.Selection...)
	r.mu.Lock()
	r.entries[clientID] = p
	r.mu.Unlock()
}

func (r *Roster) Remove(clientID string) {
	r.mu.Lock()
	delete(r.entries, clientID)
	r.mu.Unlock()
}

// Selection returns a copy of the client's last reported selection.
func (r *Roster) Selection(clientID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.entries[clientID].Selection...)
}

func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// StateMessage encodes every entry as a presence.state message.
func (r *Roster) StateMessage() (*Message, error) {
	r.mu.RLock()
	state := PresenceStatePayload{Presences: maps.Clone(r.entries)}
	r.mu.RUnlock()

	payload, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal presence state: %w", err)
	}
	return &Message{Type: TypePresenceState, Payload: payload}, nil
}
