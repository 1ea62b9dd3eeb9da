package feature

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/bep/debounce"
	"github.com/lignin-cad/core/pkg/scene"
)

// defaultSnapshotDebounce is the snapshot coalescing window. New always
// uses it; kernel.Config's SnapshotDebounce is not read here.
const defaultSnapshotDebounce = 200 * time.Millisecond

// Snapshot is a content-addressed capture of the history list, used for
// undo/rewind and for embedding/export.
type Snapshot struct {
	Key      string
	Features []*Feature
}

// History is the ordered feature list plus the
// re-run/snapshot machinery. It is the concrete implementation of the
// `partHistory` object a feature's Run function is handed (via RunContext,
// narrowed to scene.Accessor for the scene half).
type History struct {
	Scene                *scene.Scene
	Features             []*Feature
	CurrentHistoryStepID string

	AfterRunHistory func()
	AfterReset      func()

	snapshots   []Snapshot
	lastSnapKey string
	debounced   func(f func())
}

// New creates a history engine bound to a scene, with the default
// snapshot debounce window.
func New(sc *scene.Scene) *History {
	return &History{
		Scene:     sc,
		debounced: debounce.New(defaultSnapshotDebounce),
	}
}

// Insert appends a new feature to the end of the history list.
func (h *History) Insert(f *Feature) {
	h.Features = append(h.Features, f)
}

// indexOf returns the position of the feature with the given id, or -1.
func (h *History) indexOf(id string) int {
	for i, f := range h.Features {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// RunHistory re-executes every feature from CurrentHistoryStepID (or the
// whole list if unset) to the end: tear
// down everything owned by features at or after the step, run each in
// order stamping owningFeatureID, apply {added, removed} to the scene,
// then debounce a snapshot.
func (h *History) RunHistory() error {
	start := 0
	if h.CurrentHistoryStepID != "" {
		idx := h.indexOf(h.CurrentHistoryStepID)
		if idx < 0 {
			return fmt.Errorf("feature: currentHistoryStepId %q not found in history", h.CurrentHistoryStepID)
		}
		start = idx
	}

	for _, f := range h.Features[start:] {
		h.Scene.RemoveOwnedBy(f.ID)
		f.Added = nil
		f.Removed = nil
	}

	for _, f := range h.Features[start:] {
		h.runOne(f)
	}

	if h.AfterRunHistory != nil {
		h.AfterRunHistory()
	}
	h.QueueHistorySnapshot(0, "runHistory")
	return nil
}

// runOne validates and executes a single feature, catching both a
// validation failure and a run-time panic/error the same way: log with
// (id, type) and leave the feature's result empty rather than aborting
// the whole run.
func (h *History) runOne(f *Feature) {
	ctx := &RunContext{Feature: f, Scene: h.Scene}

	result := ValidateAll(ctx)
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			log.Printf("feature %s (%s): validation: %v", f.ID, f.Type, e)
		}
		return
	}
	for _, w := range result.Warnings {
		log.Printf("feature %s (%s): %v", f.ID, f.Type, w)
	}

	class, ok := Lookup(f.Type)
	if !ok {
		log.Printf("feature %s (%s): %v", f.ID, f.Type, TypeUnknown)
		return
	}

	runRes, err := h.invoke(class, ctx)
	if err != nil {
		log.Printf("feature %s (%s): %v", f.ID, f.Type, err)
		return
	}

	removed := append([]string{}, runRes.Removed...)
	if f.ConsumeProfileSketch && f.ProfileSketchName != "" {
		removed = append(removed, f.ProfileSketchName)
	}

	var added []scene.Artifact
	for _, a := range runRes.Added {
		added = append(added, scene.Artifact{Name: a.Name, Solid: a.Solid})
	}

	if err := h.Scene.Apply(f.ID, added, removed); err != nil {
		log.Printf("feature %s (%s): applying result: %v", f.ID, f.Type, err)
		return
	}

	for _, a := range added {
		f.Added = append(f.Added, a.Name)
	}
	f.Removed = removed
}

// invoke runs a feature class's Run function with panic recovery, so that
// a single malformed feature (divide by zero, nil deref on a stale
// selection) never brings down the rest of runHistory.
func (h *History) invoke(class *FeatureClass, ctx *RunContext) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return class.Run(ctx)
}

// QueueHistorySnapshot schedules a debounced snapshot flush; repeated
// calls within the debounce window collapse to a single flush.
func (h *History) QueueHistorySnapshot(_ int, reason string) {
	h.debounced(func() {
		h.FlushHistorySnapshot(false)
		log.Printf("feature: snapshot flushed (%s)", reason)
	})
}

// FlushHistorySnapshot captures the current history list immediately,
// skipping the capture if its content key is unchanged from the last
// snapshot (unless force is set).
func (h *History) FlushHistorySnapshot(force bool) {
	key := h.contentKey()
	if !force && key == h.lastSnapKey {
		return
	}
	h.lastSnapKey = key
	h.snapshots = append(h.snapshots, Snapshot{Key: key, Features: append([]*Feature{}, h.Features...)})
}

// contentKey addresses a snapshot by feature count, feature ids, and a
// hash of every feature's parameters.
func (h *History) contentKey() string {
	sum := sha256.New()
	fmt.Fprintf(sum, "%d", len(h.Features))
	for _, f := range h.Features {
		fmt.Fprintf(sum, "|%s|%s|", f.ID, f.Type)
		if b, err := json.Marshal(f.Params); err == nil {
			sum.Write(b)
		}
	}
	return hex.EncodeToString(sum.Sum(nil))
}

// Reset clears the history list and every scene object it produced.
func (h *History) Reset() {
	for _, f := range h.Features {
		h.Scene.RemoveOwnedBy(f.ID)
	}
	h.Features = nil
	h.CurrentHistoryStepID = ""
	if h.AfterReset != nil {
		h.AfterReset()
	}
}
