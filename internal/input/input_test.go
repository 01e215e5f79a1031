package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgesLastOneFrame(t *testing.T) {
	m := NewManager()
	m.HandleKey(KeyH, Press)
	assert.True(t, m.JustPressed(ActionTogglePanel))
	assert.True(t, m.IsActive(ActionTogglePanel))

	// key repeat is not a new press
	m.PostUpdate()
	m.HandleKey(KeyH, Repeat)
	assert.False(t, m.JustPressed(ActionTogglePanel))
	assert.True(t, m.IsActive(ActionTogglePanel))

	m.HandleKey(KeyH, Release)
	assert.True(t, m.JustReleased(ActionTogglePanel))
	assert.False(t, m.IsActive(ActionTogglePanel))
	m.PostUpdate()
	assert.False(t, m.JustReleased(ActionTogglePanel))
}

func TestSharedAndCustomBindings(t *testing.T) {
	m := NewManager()
	m.HandleKey(KeyF11, Press)
	assert.True(t, m.JustPressed(ActionToggleFullscreen))

	m.UnbindKey(KeyEscape)
	m.HandleKey(KeyEscape, Press)
	assert.False(t, m.IsActive(ActionQuit))

	m.BindKey(KeyEnter, ActionQuit)
	m.HandleKey(KeyEnter, Press)
	assert.True(t, m.JustPressed(ActionQuit))

	m.BindKey(KeySpace, ActionCount)
	m.HandleKey(KeySpace, Press)
	assert.False(t, m.IsActive(ActionCount))
}

func TestButtons(t *testing.T) {
	m := NewManager()
	m.HandleButton(ButtonRight, Press)
	assert.True(t, m.IsActive(ActionPointerSecondary))
	assert.False(t, m.IsActive(ActionPointerPrimary))
	m.HandleButton(ButtonRight, Release)
	assert.True(t, m.JustReleased(ActionPointerSecondary))
}
