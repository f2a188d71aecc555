package autopilot

import "time"

type CommandType string

const (
	CmdOn     CommandType = "on"
	CmdOff    CommandType = "off"
	CmdToggle CommandType = "toggle"
)

type Command interface {
	Type() CommandType
	ReceivedAt() time.Time
}

type OnCommand struct{ At time.Time }

func (c OnCommand) Type() CommandType     { return CmdOn }
func (c OnCommand) ReceivedAt() time.Time { return c.At }

type OffCommand struct{ At time.Time }

func (c OffCommand) Type() CommandType     { return CmdOff }
func (c OffCommand) ReceivedAt() time.Time { return c.At }

type ToggleCommand struct{ At time.Time }

func (c ToggleCommand) Type() CommandType     { return CmdToggle }
func (c ToggleCommand) ReceivedAt() time.Time { return c.At }

// Parse maps a command word to a Command stamped with the current time.
func Parse(word string) (Command, error) {
	now := time.Now()
	switch CommandType(word) {
	case CmdOn:
		return OnCommand{At: now}, nil
	case CmdOff:
		return OffCommand{At: now}, nil
	case CmdToggle:
		return ToggleCommand{At: now}, nil
	}
	return nil, &UnknownCommandError{Word: word}
}

type UnknownCommandError struct {
	Word string
}

func (e *UnknownCommandError) Error() string {
	return "autopilot: unknown command " + e.Word
}
