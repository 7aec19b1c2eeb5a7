// Package emit carries the observability events a resolution pass produces.
//
// The engine emits one event per orchestration step: pass start, route
// selection, execution-gate outcomes, merges, and pass completion. Emitters
// decide what to do with them: log, trace, buffer for inspection, or drop.
package emit

// Standard event messages emitted by the engine.
const (
	MsgPassStart     = "pass_start"
	MsgRouteSelected = "route_selected"
	MsgSelection     = "selection"
	MsgFilterMerged  = "filter_merged"
	MsgFilterDefault = "filter_defaulted"
	MsgSourceList    = "source_list"
	MsgPassComplete  = "pass_complete"
	MsgPassError     = "pass_error"
)

// Event is one observability event from a resolution pass.
type Event struct {
	// Seed identifies the pass that emitted this event; a pass is fully
	// determined by its inputs and seed, so the seed doubles as the replay
	// handle.
	Seed int64

	// Step is the orchestration step number within the pass (1-indexed).
	// Zero for pass-level events.
	Step int

	// NodeID identifies the graph node this event concerns, when there is
	// one.
	NodeID string

	// Msg names the event, e.g. MsgRouteSelected.
	Msg string

	// Meta carries event-specific structured data. Common keys: "route",
	// "kept", "group", "definition_id", "duration_ms", "error".
	Meta map[string]any
}

// Emitter receives events from resolution passes.
//
// Implementations must be safe for use from concurrent passes, must not
// block resolution, and must not panic; failures are the emitter's own
// problem to swallow or log.
type Emitter interface {
	// Emit delivers one event.
	Emit(event Event)
}
