package server

import (
	"encoding/json"

	"github.com/vango-dev/gridcell/internal/errors"
)

// Message types.
const (
	TypeClick  = "click"
	TypeUpdate = "update"
	TypeError  = "error"
)

// ClientMessage is sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`
	HID  string `json:"hid,omitempty"`
}

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type    string `json:"type"`
	HTML    string `json:"html,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// decodeClientMessage parses and validates a client frame.
func decodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, errors.New("E400").Wrap(err).WithDetail("Message is not valid JSON.")
	}
	switch msg.Type {
	case TypeClick:
		if msg.HID == "" {
			return msg, errors.New("E400").WithDetail("Click message has no hid.")
		}
	default:
		return msg, errors.New("E400").WithDetailf("Unknown message type %q.", msg.Type)
	}
	return msg, nil
}

// errorMessage converts err into an error frame.
func errorMessage(err error) ServerMessage {
	msg := ServerMessage{Type: TypeError, Code: errors.Code(err), Message: err.Error()}
	if e, ok := err.(*errors.Error); ok {
		msg.Message = e.Message
		if e.Detail != "" {
			msg.Message += ": " + e.Detail
		}
	}
	return msg
}
