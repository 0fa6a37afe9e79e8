// Package typeid mints and checks the prefixed, sortable ids that name
// projects, scenes and objects.
package typeid

import (
	"errors"
	"fmt"
	"slices"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixProject = "proj"
	PrefixScene   = "scene"
	PrefixObject  = "obj"
)

// ErrInvalidID is returned for ids that do not parse or carry the wrong prefix.
var ErrInvalidID = errors.New("invalid id")

func New(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

func NewSceneID() string  { return New(PrefixScene) }
func NewObjectID() string { return New(PrefixObject) }

// Validate checks that id is a well-formed typeid with the given prefix.
func Validate(id, prefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidID, id, err)
	}
	if got := parsed.Prefix(); got != prefix {
		return fmt.Errorf("%w: %q has prefix %q, want %q", ErrInvalidID, id, got, prefix)
	}
	return nil
}

// ValidateProject checks a project id from a URL. Reserved names such as the
// playground project are accepted as-is.
func ValidateProject(id string, reserved ...string) error {
	if slices.Contains(reserved, id) {
		return nil
	}
	return Validate(id, PrefixProject)
}
