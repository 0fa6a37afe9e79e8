package document

import "encoding/json"

type InDocument struct {
	Project Project               `json:"project"`
	Scenes  map[string]Scene      `json:"scenes"`
	Objects map[string]ObjectNode `json:"objects"`
}

type Project struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Version   int      `json:"version"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Scenes    []string `json:"scenes"`
}

type Scene struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Root   string `json:"root"`
}

type ObjectType string

const (
	ObjectTypeGroup        ObjectType = "Group"
	ObjectTypeFrame        ObjectType = "Frame"
	ObjectTypeShapeRect    ObjectType = "ShapeRect"
	ObjectTypeShapeEllipse ObjectType = "ShapeEllipse"
	ObjectTypeVectorPath   ObjectType = "VectorPath"
	ObjectTypeRasterImage  ObjectType = "RasterImage"
	ObjectTypeSymbol       ObjectType = "Symbol"
)

// IsContainer reports whether objects of this type can parent other objects.
func (t ObjectType) IsContainer() bool {
	switch t {
	case ObjectTypeGroup, ObjectTypeFrame, ObjectTypeSymbol:
		return true
	default:
		return false
	}
}

type Transform struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	SX float64 `json:"sx"`
	SY float64 `json:"sy"`
	R  float64 `json:"r"`
	AX float64 `json:"ax"`
	AY float64 `json:"ay"`
}

type ObjectNode struct {
	ID        string          `json:"id"`
	Type      ObjectType      `json:"type"`
	Parent    *string         `json:"parent"`
	Children  []string        `json:"children"`
	Transform Transform       `json:"transform"`
	Visible   bool            `json:"visible"`
	Locked    bool            `json:"locked"`
	Data      json.RawMessage `json:"data"`
}

// Size holds the local width/height carried in Data by frames, rects and
// raster images.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Radii holds the ellipse radii carried in Data by ShapeEllipse objects.
type Radii struct {
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

// NewEmptyDocument creates an empty document for a new project
func NewEmptyDocument(projectID, projectName, sceneID, rootID string) *InDocument {
	return &InDocument{
		Project: Project{
			ID:        projectID,
			Name:      projectName,
			Version:   1,
			CreatedAt: "", // Will be set by caller
			UpdatedAt: "",
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
				ID:       rootID,
				Type:     ObjectTypeGroup,
				Parent:   nil,
				Children: []string{},
				Transform: Transform{
					X: 0, Y: 0, SX: 1, SY: 1, R: 0, AX: 0, AY: 0,
				},
				Visible: true,
				Locked:  false,
				Data:    json.RawMessage(`{}`),
			},
		},
	}
}
