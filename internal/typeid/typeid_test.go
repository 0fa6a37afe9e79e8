package typeid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndValidate(t *testing.T) {
	id := NewObjectID()
	assert.True(t, strings.HasPrefix(id, PrefixObject+"_"))
	assert.NoError(t, Validate(id, PrefixObject))
	assert.ErrorIs(t, Validate(id, PrefixProject), ErrInvalidID)
	assert.ErrorIs(t, Validate("not an id", PrefixObject), ErrInvalidID)
	assert.NotEqual(t, id, NewObjectID())
}

func TestValidateProject(t *testing.T) {
	assert.NoError(t, ValidateProject(New(PrefixProject)))
	assert.NoError(t, ValidateProject("proj_playground", "proj_playground"))
	assert.ErrorIs(t, ValidateProject("proj_playground"), ErrInvalidID)
	assert.ErrorIs(t, ValidateProject(NewSceneID(), "proj_playground"), ErrInvalidID)
}
