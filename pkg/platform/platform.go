// Package platform translates the raw input events of a host environment into
// widget commands.
//
// Hosts differ in how they name keys and in which events they deliver. An
// Adapter hides those differences; one is chosen when a program starts and
// passed to every widget.
package platform

import "fmt"

// EventType is the type of an Event.
type EventType int

// Possible values of EventType.
const (
	KeyDown EventType = iota
	Click
	Focus
	Blur
	// Input reports a new value of an editable element.
	Input
)

var eventTypeNames = [...]string{"keydown", "click", "focus", "blur", "input"}

func (t EventType) String() string {
	if 0 <= t && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// Event is an input event delivered to a widget.
type Event struct {
	Type EventType
	// Key is the key name in the host's own naming, for KeyDown events.
	Key string
	// Absolute index of the target row, or -1.
	Row int
	// Index of the target column, or -1.
	Column int
	// New value for Input events.
	Value string
}

// KeyEvent returns a KeyDown event with no target.
func KeyEvent(key string) Event {
	return Event{Type: KeyDown, Key: key, Row: -1, Column: -1}
}

// ClickEvent returns a Click event on a cell.
func ClickEvent(row, column int) Event {
	return Event{Type: Click, Row: row, Column: column}
}

// Command is an action of a widget.
type Command int

// Possible values of Command.
const (
	NoCommand Command = iota
	Next
	Prev
	NextPage
	PrevPage
	Home
	End
	// ToggleSelection toggles the selection of the keyboard-selected row.
	ToggleSelection
	// SelectRow moves keyboard selection to the target row and selects it.
	SelectRow
	// Quit asks the host to close the widget.
	Quit
)

var commandNames = [...]string{
	"none", "next", "prev", "next-page", "prev-page", "home", "end",
	"toggle-selection", "select-row", "quit",
}

func (c Command) String() string {
	if 0 <= c && int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Adapter maps the events of one host to commands.
type Adapter interface {
	// Name returns the name used to select the adapter.
	Name() string
	// Command returns the command for an event, or false if the event is not
	// a command.
	Command(ev Event) (Command, bool)
	// StealsFocus reports whether moving keyboard selection in response to
	// the event should move input focus to the new row.
	StealsFocus(ev Event) bool
}

// Select returns the adapter with the given name.
func Select(name string) (Adapter, error) {
	switch name {
	case "browser":
		return Browser{}, nil
	case "terminal":
		return Terminal{}, nil
	}
	return nil, fmt.Errorf("unknown platform %q, should be browser or terminal", name)
}

// Browser is the Adapter for an HTML document. Key names are those of DOM
// KeyboardEvent.key.
type Browser struct{}

var browserKeys = map[string]Command{
	"ArrowDown": Next,
	"ArrowUp":   Prev,
	"PageDown":  NextPage,
	"PageUp":    PrevPage,
	"Home":      Home,
	"End":       End,
	" ":         ToggleSelection,
	"Enter":     ToggleSelection,
}

func (Browser) Name() string { return "browser" }

func (Browser) Command(ev Event) (Command, bool) {
	switch ev.Type {
	case KeyDown:
		cmd, ok := browserKeys[ev.Key]
		return cmd, ok
	case Click:
		return SelectRow, ev.Row >= 0
	}
	return NoCommand, false
}

// StealsFocus is true for keys; a click has already focused its target.
func (Browser) StealsFocus(ev Event) bool { return ev.Type == KeyDown }

// Terminal is the Adapter for a terminal. Key names are those returned by
// term.Key.String; vi-style keys are accepted too.
type Terminal struct{}

var terminalKeys = map[string]Command{
	"Down":     Next,
	"j":        Next,
	"Up":       Prev,
	"k":        Prev,
	"PageDown": NextPage,
	"Ctrl-F":   NextPage,
	"PageUp":   PrevPage,
	"Ctrl-B":   PrevPage,
	"Home":     Home,
	"g":        Home,
	"End":      End,
	"G":        End,
	"Space":    ToggleSelection,
	"Enter":    ToggleSelection,
	"q":        Quit,
	"Ctrl-C":   Quit,
	"Esc":      Quit,
}

func (Terminal) Name() string { return "terminal" }

func (Terminal) Command(ev Event) (Command, bool) {
	if ev.Type != KeyDown {
		return NoCommand, false
	}
	cmd, ok := terminalKeys[ev.Key]
	return cmd, ok
}

// StealsFocus is always true; a terminal has a single focus.
func (Terminal) StealsFocus(Event) bool { return true }
