package input

import (
	"sync"
)

// Key is a physical key, independent of the windowing backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyTab
	KeyF
	KeyH
	KeyP
	KeyR
	KeyF11
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
)

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// State is the edge reported by the host for a key or button.
type State int

const (
	Release State = iota
	Press
	Repeat
)

// Action represents a logical action, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionTogglePanel
	ActionToggleFullscreen
	ActionResetCamera
	ActionToggleProfiling
	ActionPointerPrimary
	ActionPointerSecondary
	ActionPointerMiddle
	ActionModShift
	ActionModControl
	ActionCount // Sentinel value for array sizing
)

// Manager maps physical keys and buttons to logical actions and tracks
// held / just pressed / just released state per frame.
type Manager struct {
	mu sync.RWMutex

	keyToActions    map[Key][]Action
	buttonToActions map[Button][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewManager creates a Manager with the default bindings.
func NewManager() *Manager {
	m := &Manager{
		keyToActions:    make(map[Key][]Action),
		buttonToActions: make(map[Button][]Action),
	}

	m.BindKey(KeyEscape, ActionQuit)
	m.BindKey(KeyH, ActionTogglePanel)
	m.BindKey(KeyF, ActionToggleFullscreen)
	m.BindKey(KeyF11, ActionToggleFullscreen)
	m.BindKey(KeyR, ActionResetCamera)
	m.BindKey(KeyP, ActionToggleProfiling)

	m.BindButton(ButtonLeft, ActionPointerPrimary)
	m.BindButton(ButtonRight, ActionPointerSecondary)
	m.BindButton(ButtonMiddle, ActionPointerMiddle)

	m.BindKey(KeyLeftShift, ActionModShift)
	m.BindKey(KeyRightShift, ActionModShift)
	m.BindKey(KeyLeftControl, ActionModControl)
	m.BindKey(KeyRightControl, ActionModControl)

	return m
}

// BindKey binds a key to an action. Several keys may share an action.
func (m *Manager) BindKey(key Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (m *Manager) UnbindKey(key Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keyToActions, key)
}

// BindButton binds a pointer button to an action.
func (m *Manager) BindButton(button Button, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttonToActions[button] = append(m.buttonToActions[button], action)
}

// HandleKey records a key event.
func (m *Manager) HandleKey(key Key, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(m.keyToActions[key], state == Press || state == Repeat)
}

// HandleButton records a pointer button event.
func (m *Manager) HandleButton(button Button, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(m.buttonToActions[button], state == Press)
}

func (m *Manager) apply(actions []Action, pressed bool) {
	for _, act := range actions {
		// edges are detected when the event arrives
		if pressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		if !pressed && m.currentState[act] {
			m.justReleased[act] = true
		}
		m.currentState[act] = pressed
	}
}

// PostUpdate clears the per-frame edge flags. Call once at the end of each frame.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.justPressed = [ActionCount]bool{}
	m.justReleased = [ActionCount]bool{}
}

// IsActive returns true while the action is held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}
