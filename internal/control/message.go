package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Action = string

const (
	Show  Action = "show"
	Hide  Action = "hide"
	Style Action = "style"
	Reset Action = "reset"
)

// Message is one line on the control pipe, for example
//
//	{"action":"style","key":"secondArrow","color":"#ff0000"}
type Message struct {
	Action Action `json:"action"`
	Key    string `json:"key,omitempty"`
	Color  string `json:"color,omitempty"`
}

func Parse(line string) (*Message, error) {
	line = strings.TrimSpace(line)

	var msg *Message
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		return nil, fmt.Errorf("control: could not deserialize message: %w. Got: %s", err, line)
	}

	if msg == nil {
		return nil, fmt.Errorf("control: message is empty. Got: %s", line)
	}

	switch msg.Action {
	case Show, Hide, Reset:
	case Style:
		if msg.Key == "" || msg.Color == "" {
			return nil, errors.New("control: style message needs key and color")
		}
	default:
		return nil, fmt.Errorf("control: unknown action %q", msg.Action)
	}

	return msg, nil
}

// Build serializes msg as a single control line.
func Build(msg Message) (string, error) {
	bytes, err := json.Marshal(msg)

	if err != nil {
		return "", fmt.Errorf("control: could not serialize message. %w", err)
	}

	return string(bytes), nil
}
