package collab

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/geokernel/internal/document"
	"github.com/inamate/geokernel/internal/typeid"
)

// TokenValidator checks bearer tokens. auth.Service implements it.
type TokenValidator interface {
	Enabled() bool
	ValidateToken(token string) (string, error)
}

// OriginPatterns turns allowed origins such as "http://localhost:5173" into
// the host patterns websocket.Accept matches against.
func OriginPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		} else {
			patterns = append(patterns, o)
		}
	}
	return patterns
}

// identify resolves who is connecting. The playground project and
// deployments without a JWT secret accept anonymous users; otherwise a valid
// token must come in the "token" query parameter.
func identify(r *http.Request, projectID string, tokens TokenValidator) (Identity, error) {
	if projectID == document.PlaygroundProjectID || !tokens.Enabled() {
		return Identity{UserID: "anon-" + uuid.New().String()[:8], DisplayName: "Anonymous"}, nil
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		return Identity{}, errors.New("missing token")
	}
	userID, err := tokens.ValidateToken(token)
	if err != nil {
		return Identity{}, errors.New("invalid token")
	}
	return Identity{UserID: userID, DisplayName: userID}, nil
}

// Handler upgrades /ws/project/{projectId} and serves the connection until
// it closes.
func Handler(hub *Hub, tokens TokenValidator, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := mux.Vars(r)["projectId"]
		if err := typeid.ValidateProject(projectID, document.PlaygroundProjectID); err != nil {
			http.Error(w, "invalid project id", http.StatusBadRequest)
			return
		}

		id, err := identify(r, projectID, tokens)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			slog.Error("websocket accept", "error", err)
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		client := NewClient(hub, conn, projectID, uuid.New().String(), id)
		hub.Register(ctx, client)

		go client.WritePump(ctx)
		go client.PresencePump(ctx)
		client.ReadPump(ctx)
	}
}
