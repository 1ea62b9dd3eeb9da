// Package bridge implements the embedded CAD frame protocol: the
// request/response envelope, lifecycle messages, and event types that let
// a host drive the feature engine and scene without reaching into its
// internals. In a browser deployment the protocol rides postMessage
// between a host page and an iframe; this package keeps the envelope
// shape and per-request-type dispatch but carries it over a pair of Go
// channels, leaving the iframe plumbing to the host shell.
package bridge

import (
	"encoding/json"
	"errors"
)

// ErrTimeout is returned by Client.Call when a request outlives its
// deadline.
var ErrTimeout = errors.New("bridge: request timed out")

// ErrDisposed is returned to any request issued to, or pending on, a
// Client that has been disposed.
var ErrDisposed = errors.New("bridge: request issued to a disposed client")

// Request/response message types.
const (
	TypeReady   = "ready"
	TypeInit    = "init"
	TypeDispose = "dispose"

	TypeGetState           = "getState"
	TypeGetPartHistoryJSON = "getPartHistoryJSON"
	TypeSetPartHistoryJSON = "setPartHistoryJSON"
	TypeRunHistory         = "runHistory"
	TypeReset              = "reset"
	TypeLoadModel          = "loadModel"
	TypeLoadFile           = "loadFile"
	TypeListFiles          = "listFiles"
	TypeReadFile           = "readFile"
	TypeWriteFile          = "writeFile"
	TypeCreateFile         = "createFile"
	TypeRemoveFile         = "removeFile"
	TypeSetCurrentFile     = "setCurrentFile"
	TypeSaveCurrent        = "saveCurrent"
	TypeSetCSS             = "setCss"
	TypeSetSidebarExpanded = "setSidebarExpanded"
)

// Event types (frame -> host, no requestId).
const (
	TypeHistoryChanged = "historyChanged"
	TypeFilesChanged   = "filesChanged"
	TypeSaved          = "saved"
	TypeFrameError     = "frameError"
)

// ErrorPayload is the wire shape of a failed response's error field: a
// message only, never a stack trace.
type ErrorPayload struct {
	Message string `json:"message"`
}

// Envelope is the wire format of every message crossing the bridge:
// `{channel, instanceId, type, requestId?, payload, ok?, error?}`.
type Envelope struct {
	Channel    string          `json:"channel"`
	InstanceID string          `json:"instanceId"`
	Type       string          `json:"type"`
	RequestID  string          `json:"requestId,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OK         *bool           `json:"ok,omitempty"`
	Error      *ErrorPayload   `json:"error,omitempty"`
}

// IsEvent reports whether the envelope carries no requestId, i.e. it is
// one of the frame->host event types rather than a response.
func (e Envelope) IsEvent() bool {
	return e.RequestID == ""
}

func boolPtr(b bool) *bool { return &b }

func mustMarshal(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`null`)
	}
	return b
}

func okEnvelope(channel, instanceID, typ, requestID string, payload interface{}) Envelope {
	return Envelope{
		Channel:    channel,
		InstanceID: instanceID,
		Type:       typ,
		RequestID:  requestID,
		Payload:    mustMarshal(payload),
		OK:         boolPtr(true),
	}
}

func errEnvelope(channel, instanceID, typ, requestID string, err error) Envelope {
	return Envelope{
		Channel:    channel,
		InstanceID: instanceID,
		Type:       typ,
		RequestID:  requestID,
		OK:         boolPtr(false),
		Error:      &ErrorPayload{Message: err.Error()},
	}
}

func eventEnvelope(channel, instanceID, typ string, payload interface{}) Envelope {
	return Envelope{
		Channel:    channel,
		InstanceID: instanceID,
		Type:       typ,
		Payload:    mustMarshal(payload),
	}
}
