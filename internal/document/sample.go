package document

import (
	"encoding/json"
	"time"

	"github.com/inamate/geokernel/internal/typeid"
)

// PlaygroundProjectID names the shared sample project that needs no login.
const PlaygroundProjectID = "proj_playground"

// NewSampleDocument builds a small scene with nested frames: a board frame
// holding a card frame holding a rect, plus a free ellipse and a symbol.
func NewSampleDocument(projectID string) *InDocument {
	now := time.Now().UTC().Format(time.RFC3339)

	sceneID := typeid.NewSceneID()
	rootID := typeid.NewObjectID()
	boardID := typeid.NewObjectID()
	cardID := typeid.NewObjectID()
	rectID := typeid.NewObjectID()
	ellipseID := typeid.NewObjectID()
	badgeID := typeid.NewObjectID()
	badgeRectID := typeid.NewObjectID()

	unit := Transform{SX: 1, SY: 1}
	at := func(x, y float64) Transform {
		t := unit
		t.X, t.Y = x, y
		return t
	}

	return &InDocument{
		Project: Project{
			ID:        projectID,
			Name:      "Untitled",
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
			Scenes:    []string{sceneID},
		},
		Scenes: map[string]Scene{
			sceneID: {
				ID:     sceneID,
				Name:   "Scene 1",
				Width:  1280,
				Height: 720,
				Root:   rootID,
			},
		},
		Objects: map[string]ObjectNode{
			rootID: {
				ID:        rootID,
				Type:      ObjectTypeGroup,
				Children:  []string{boardID, ellipseID, badgeID},
				Transform: unit,
				Visible:   true,
				Data:      json.RawMessage(`{}`),
			},
			boardID: {
				ID:        boardID,
				Type:      ObjectTypeFrame,
				Parent:    &rootID,
				Children:  []string{cardID},
				Transform: at(100, 100),
				Visible:   true,
				Data:      json.RawMessage(`{"width": 600, "height": 400}`),
			},
			cardID: {
				ID:        cardID,
				Type:      ObjectTypeFrame,
				Parent:    &boardID,
				Children:  []string{rectID},
				Transform: at(50, 50),
				Visible:   true,
				Data:      json.RawMessage(`{"width": 300, "height": 200}`),
			},
			rectID: {
				ID:        rectID,
				Type:      ObjectTypeShapeRect,
				Parent:    &cardID,
				Children:  []string{},
				Transform: at(20, 20),
				Visible:   true,
				Data:      json.RawMessage(`{"width": 100, "height": 60}`),
			},
			ellipseID: {
				ID:        ellipseID,
				Type:      ObjectTypeShapeEllipse,
				Parent:    &rootID,
				Children:  []string{},
				Transform: at(900, 300),
				Visible:   true,
				Data:      json.RawMessage(`{"rx": 120, "ry": 80}`),
			},
			badgeID: {
				ID:        badgeID,
				Type:      ObjectTypeSymbol,
				Parent:    &rootID,
				Children:  []string{badgeRectID},
				Transform: at(900, 550),
				Visible:   true,
				Data:      json.RawMessage(`{}`),
			},
			badgeRectID: {
				ID:        badgeRectID,
				Type:      ObjectTypeShapeRect,
				Parent:    &badgeID,
				Children:  []string{},
				Transform: at(-30, -30),
				Visible:   true,
				Data:      json.RawMessage(`{"width": 60, "height": 60}`),
			},
		},
	}
}
