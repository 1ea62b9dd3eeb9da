package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/lignin-cad/core/pkg/feature"
)

// eventBacklog bounds the frame's outbound event queue; once a host falls
// behind and the queue is full, each new event is logged and dropped
// rather than blocking the single cooperative thread driving History.
const eventBacklog = 64

// Frame is the frame-side half of the embedded CAD frame protocol: it
// receives request envelopes and dispatches them against a feature
// history engine and a file store, with no GUI runtime underneath it.
type Frame struct {
	Channel    string
	InstanceID string

	History *feature.History
	Files   FileStore

	mu            sync.Mutex
	currentFile   string
	css           string
	sidebarExpand bool
	events        chan Envelope
}

// NewFrame wires a Frame to a history engine and file store, subscribing
// to the engine's AfterRunHistory callback so every run (whether triggered
// by runHistory, reset, loadModel, or loadFile) emits exactly one
// historyChanged event, in the same order as the runs that produced it.
func NewFrame(channel, instanceID string, h *feature.History, files FileStore) *Frame {
	fr := &Frame{
		Channel:    channel,
		InstanceID: instanceID,
		History:    h,
		Files:      files,
		events:     make(chan Envelope, eventBacklog),
	}
	h.AfterRunHistory = fr.emitHistoryChanged
	h.AfterReset = fr.emitHistoryChanged
	return fr
}

// Events returns the channel of outbound event envelopes (historyChanged,
// filesChanged, saved, frameError) a host reads from.
func (fr *Frame) Events() <-chan Envelope {
	return fr.events
}

func (fr *Frame) emit(e Envelope) {
	select {
	case fr.events <- e:
	default:
		log.Printf("bridge: event backlog full, dropping %s event", e.Type)
	}
}

func (fr *Frame) emitHistoryChanged() {
	fr.emit(eventEnvelope(fr.Channel, fr.InstanceID, TypeHistoryChanged, historyStatePayload(fr.History)))
}

func (fr *Frame) emitFilesChanged(ctx context.Context) {
	files, err := fr.Files.List(ctx)
	if err != nil {
		fr.emit(eventEnvelope(fr.Channel, fr.InstanceID, TypeFrameError, ErrorPayload{Message: err.Error()}))
		return
	}
	fr.emit(eventEnvelope(fr.Channel, fr.InstanceID, TypeFilesChanged, listFilesResult{Files: files}))
}

// Handle dispatches one request envelope, returning the matching response
// envelope. It never panics: a handler error is converted to an
// {ok:false, error:{message}} response rather than propagated, so no
// kernel error can crash the host application.
func (fr *Frame) Handle(ctx context.Context, req Envelope) Envelope {
	payload, err := fr.dispatch(ctx, req)
	if err != nil {
		return errEnvelope(fr.Channel, fr.InstanceID, req.Type, req.RequestID, err)
	}
	return okEnvelope(fr.Channel, fr.InstanceID, req.Type, req.RequestID, payload)
}

func (fr *Frame) dispatch(ctx context.Context, req Envelope) (interface{}, error) {
	switch req.Type {
	case TypeGetState:
		return historyStatePayload(fr.History), nil

	case TypeGetPartHistoryJSON:
		return partHistoryResult{Features: fr.History.Features}, nil

	case TypeSetPartHistoryJSON:
		var p partHistoryPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: setPartHistoryJSON: decoding payload")
		}
		features, err := decodeFeatures(p.Features)
		if err != nil {
			return nil, err
		}
		fr.History.Features = features
		return nil, nil

	case TypeRunHistory:
		var p runHistoryPayload
		if len(req.Payload) > 0 {
			if err := json.Unmarshal(req.Payload, &p); err != nil {
				return nil, pkgerrors.Wrap(err, "bridge: runHistory: decoding payload")
			}
		}
		if p.CurrentHistoryStepID != "" {
			fr.History.CurrentHistoryStepID = p.CurrentHistoryStepID
		}
		if err := fr.History.RunHistory(); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: runHistory")
		}
		return nil, nil

	case TypeReset:
		fr.History.Reset()
		return nil, nil

	case TypeLoadModel:
		var p loadModelPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: loadModel: decoding payload")
		}
		features, err := decodeFeatures(p.Features)
		if err != nil {
			return nil, err
		}
		fr.History.Features = features
		fr.History.CurrentHistoryStepID = p.CurrentHistoryStepID
		if err := fr.History.RunHistory(); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: loadModel: runHistory")
		}
		return nil, nil

	case TypeLoadFile:
		var p filePathPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: loadFile: decoding payload")
		}
		content, err := fr.Files.Read(ctx, p.Path)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "bridge: loadFile: reading %q", p.Path)
		}
		features, err := decodeFeatures(json.RawMessage(content))
		if err != nil {
			return nil, err
		}
		fr.History.Features = features
		fr.History.CurrentHistoryStepID = ""
		fr.setCurrentFile(p.Path)
		if err := fr.History.RunHistory(); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: loadFile: runHistory")
		}
		return filePathResult{Path: p.Path}, nil

	case TypeListFiles:
		files, err := fr.Files.List(ctx)
		if err != nil {
			return nil, err
		}
		return listFilesResult{Files: files}, nil

	case TypeReadFile:
		var p filePathPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: readFile: decoding payload")
		}
		content, err := fr.Files.Read(ctx, p.Path)
		if err != nil {
			return nil, err
		}
		return fileContentResult{Content: content}, nil

	case TypeWriteFile:
		var p fileContentPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: writeFile: decoding payload")
		}
		if err := fr.Files.Write(ctx, p.Path, p.Content); err != nil {
			return nil, err
		}
		return nil, nil

	case TypeCreateFile:
		var p filePathPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: createFile: decoding payload")
		}
		if err := fr.Files.Create(ctx, p.Path); err != nil {
			return nil, err
		}
		fr.emitFilesChanged(ctx)
		return nil, nil

	case TypeRemoveFile:
		var p filePathPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: removeFile: decoding payload")
		}
		if err := fr.Files.Remove(ctx, p.Path); err != nil {
			return nil, err
		}
		fr.emitFilesChanged(ctx)
		return nil, nil

	case TypeSetCurrentFile:
		var p filePathPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: setCurrentFile: decoding payload")
		}
		fr.setCurrentFile(p.Path)
		return nil, nil

	case TypeSaveCurrent:
		fr.mu.Lock()
		path := fr.currentFile
		fr.mu.Unlock()
		if path == "" {
			return nil, fmt.Errorf("bridge: saveCurrent: no current file set")
		}
		b, err := json.Marshal(fr.History.Features)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: saveCurrent: encoding history")
		}
		if err := fr.Files.Write(ctx, path, string(b)); err != nil {
			return nil, err
		}
		fr.emit(eventEnvelope(fr.Channel, fr.InstanceID, TypeSaved, filePathResult{Path: path}))
		return filePathResult{Path: path}, nil

	case TypeSetCSS:
		var p setCSSPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: setCss: decoding payload")
		}
		fr.mu.Lock()
		fr.css = p.CSS
		fr.mu.Unlock()
		return nil, nil

	case TypeSetSidebarExpanded:
		var p setSidebarPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return nil, pkgerrors.Wrap(err, "bridge: setSidebarExpanded: decoding payload")
		}
		fr.mu.Lock()
		fr.sidebarExpand = p.Expanded
		fr.mu.Unlock()
		return nil, nil

	default:
		return nil, fmt.Errorf("bridge: unknown request type %q", req.Type)
	}
}

func (fr *Frame) setCurrentFile(path string) {
	fr.mu.Lock()
	fr.currentFile = path
	fr.mu.Unlock()
}

func decodeFeatures(raw json.RawMessage) ([]*feature.Feature, error) {
	var features []*feature.Feature
	if err := json.Unmarshal(raw, &features); err != nil {
		return nil, pkgerrors.Wrap(err, "bridge: decoding history JSON")
	}
	return features, nil
}

// --- payload/result shapes ---

type getStateResult struct {
	CurrentHistoryStepID string   `json:"currentHistoryStepId"`
	FeatureCount         int      `json:"featureCount"`
	FeatureIDs           []string `json:"featureIds"`
}

func historyStatePayload(h *feature.History) getStateResult {
	ids := make([]string, len(h.Features))
	for i, f := range h.Features {
		ids[i] = f.ID
	}
	return getStateResult{
		CurrentHistoryStepID: h.CurrentHistoryStepID,
		FeatureCount:         len(h.Features),
		FeatureIDs:           ids,
	}
}

type partHistoryResult struct {
	Features []*feature.Feature `json:"features"`
}

type partHistoryPayload struct {
	Features json.RawMessage `json:"features"`
}

type runHistoryPayload struct {
	CurrentHistoryStepID string `json:"currentHistoryStepId"`
}

type loadModelPayload struct {
	Features             json.RawMessage `json:"features"`
	CurrentHistoryStepID string          `json:"currentHistoryStepId"`
}

type filePathPayload struct {
	Path string `json:"path"`
}

type filePathResult struct {
	Path string `json:"path"`
}

type fileContentPayload struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type fileContentResult struct {
	Content string `json:"content"`
}

type listFilesResult struct {
	Files []FileInfo `json:"files"`
}

type setCSSPayload struct {
	CSS string `json:"css"`
}

type setSidebarPayload struct {
	Expanded bool `json:"expanded"`
}
