// Package models holds the wire envelope shared by the control socket and
// the GridServer bridge: newline-delimited JSON request, response and
// event messages.
package models

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

const (
	TypeRequest  = "request"
	TypeResponse = "response"
	TypeEvent    = "event"
)

// MessageEnvelope is the top-level message structure for all communications
type MessageEnvelope struct {
	Type     string    `json:"type"` // "request", "response", or "event"
	Request  *Request  `json:"request,omitempty"`
	Response *Response `json:"response,omitempty"`
	Event    *Event    `json:"event,omitempty"`
}

// Request represents an RPC request
type Request struct {
	ID     string                 `json:"id"`
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// Response represents an RPC response. Result is kept raw so callers can
// decode it into their own types.
type Response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorInfo      `json:"error,omitempty"`
}

// ErrorInfo represents an error in a response. GridServer sets Code; the
// control socket sets Kind.
type ErrorInfo struct {
	Code    int                    `json:"code,omitempty"`
	Kind    string                 `json:"kind,omitempty"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Event represents an asynchronous event from the server
type Event struct {
	EventType string                 `json:"eventType"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewRequest creates a new request envelope
func NewRequest(id, method string, params map[string]interface{}) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeRequest,
		Request: &Request{
			ID:     id,
			Method: method,
			Params: params,
		},
	}
}

// NewResponse creates a success envelope. A nil result is sent as {}.
func NewResponse(id string, result interface{}) (*MessageEnvelope, error) {
	raw := json.RawMessage("{}")
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		raw = data
	}
	return &MessageEnvelope{
		Type:     TypeResponse,
		Response: &Response{ID: id, Result: raw},
	}, nil
}

// NewErrorResponse creates an error envelope.
func NewErrorResponse(id, kind, message string) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeResponse,
		Response: &Response{
			ID:    id,
			Error: &ErrorInfo{Kind: kind, Message: message},
		},
	}
}

// NewEvent creates an event envelope stamped with the current time.
func NewEvent(eventType string, data map[string]interface{}) *MessageEnvelope {
	return &MessageEnvelope{
		Type:  TypeEvent,
		Event: &Event{EventType: eventType, Data: data, Timestamp: time.Now()},
	}
}

// IsError returns true if the response contains an error
func (r *Response) IsError() bool {
	return r.Error != nil
}

// GetError returns the error message if present
func (r *Response) GetError() string {
	if r.Error != nil {
		return r.Error.Message
	}
	return ""
}

// Decode unmarshals the result into v.
func (r *Response) Decode(v interface{}) error {
	if len(r.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Result, v); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}

// ResultMap decodes the result as a generic object.
func (r *Response) ResultMap() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := r.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteEnvelope writes env followed by a newline.
func WriteEnvelope(w io.Writer, env *MessageEnvelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write envelope: %w", err)
	}
	return nil
}

// ReadEnvelope reads one newline-terminated envelope.
func ReadEnvelope(r *bufio.Reader) (*MessageEnvelope, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	var env MessageEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	switch env.Type {
	case TypeRequest:
		if env.Request == nil {
			return nil, fmt.Errorf("request envelope has nil request")
		}
	case TypeResponse:
		if env.Response == nil {
			return nil, fmt.Errorf("response envelope has nil response")
		}
	case TypeEvent:
		if env.Event == nil {
			return nil, fmt.Errorf("event envelope has nil event")
		}
	default:
		return nil, fmt.Errorf("unknown envelope type %q", env.Type)
	}
	return &env, nil
}
