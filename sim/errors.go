package sim

import (
	"errors"
	"fmt"
)

// ErrMultipleRouters indicates the graph contains more than one router node.
// At most one router is expected per graph.
var ErrMultipleRouters = errors.New("graph contains more than one router node")

// ErrAmbiguousModifier indicates two selection-modifier nodes target the same
// node type. Which one should win is undefined, so the engine refuses to
// guess and surfaces the conflict instead.
var ErrAmbiguousModifier = errors.New("multiple selection modifiers target the same node type")

// ErrUnknownFilter indicates a filter node references a definition ID the
// registry has no handler for.
var ErrUnknownFilter = errors.New("unknown filter definition")

// ErrNoStore indicates a snapshot operation was requested on an engine built
// without a store.
var ErrNoStore = errors.New("engine has no snapshot store configured")

// ErrReplayMismatch indicates a replayed pass produced a configuration that
// differs from the stored snapshot. The graph must have changed since the
// snapshot was taken: with identical inputs and seed the engine is
// deterministic.
var ErrReplayMismatch = errors.New("replayed configuration differs from snapshot")

// SettingsError is a structural error: a node's authored settings are missing
// or malformed for a field its declared mode requires. These are never
// swallowed per-filter — a partially resolved configuration is considered
// more dangerous than a hard abort.
type SettingsError struct {
	// NodeID identifies the offending node.
	NodeID string

	// DefinitionID names the node's kind, when it has one.
	DefinitionID string

	// Field is the settings field that was missing or malformed.
	Field string

	// Err is the underlying decode or validation failure.
	Err error
}

// Error implements the error interface.
func (e *SettingsError) Error() string {
	id := e.NodeID
	if e.DefinitionID != "" {
		id = e.DefinitionID + "/" + e.NodeID
	}
	if e.Err != nil {
		return fmt.Sprintf("node %s: settings field %q: %v", id, e.Field, e.Err)
	}
	return fmt.Sprintf("node %s: settings field %q is missing or malformed", id, e.Field)
}

// Unwrap returns the underlying cause for errors.Is / errors.As support.
func (e *SettingsError) Unwrap() error {
	return e.Err
}
