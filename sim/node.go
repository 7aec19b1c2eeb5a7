// Package sim collapses an authored quiz-configuration graph into one fully
// concrete, internally consistent quiz configuration.
//
// The caller supplies the node list, the edge list, and a filter registry;
// the engine performs route selection, reachability pruning, probabilistic
// node selection, conflict merging, and quantity allocation, all driven by a
// single seeded random stream. Identical (nodes, edges, seed) always produces
// an identical ResolvedConfiguration, which makes every pass replayable by
// persisting nothing but the seed.
package sim

import (
	"encoding/json"
	"fmt"
)

// NodeType tags the role a node plays in the authored graph.
type NodeType string

// The node types understood by the engine.
const (
	NodeRouter            NodeType = "router"
	NodeBasicSettings     NodeType = "basicSettings"
	NodeNumberOfSongs     NodeType = "numberOfSongs"
	NodeFilter            NodeType = "filter"
	NodeSourceList        NodeType = "sourceList"
	NodeSelectionModifier NodeType = "selectionModifier"
	NodeSourceSelector    NodeType = "sourceSelector"
)

// HandleSourceSelector is the target handle marking an edge as a scoping link
// from a source-selector node into a filter. Edges carrying this handle do not
// participate in ordinary control flow; they restrict which song sources the
// target filter applies to.
const HandleSourceSelector = "source-selector"

// Node is one configuration block in the authored quiz graph.
//
// Nodes are read-only inputs: the engine never mutates them, so a caller may
// hand the same slice to any number of sequential passes. Settings carries the
// raw authored payload exactly as the editor produced it; the filter registry
// is responsible for decoding it into a canonical typed shape.
type Node struct {
	// ID uniquely identifies the node within the graph.
	ID string `json:"id" yaml:"id"`

	// Type declares the node's role (router, filter, source list, ...).
	Type NodeType `json:"type" yaml:"type"`

	// DefinitionID names the concrete kind within the type, e.g. the filter
	// kind ("genres", "vintage") or the source-list flavor ("batch-user-list").
	DefinitionID string `json:"definitionId" yaml:"definitionId"`

	// Settings is the raw authored settings payload.
	Settings map[string]any `json:"settings" yaml:"settings"`

	// ExecutionChance is the node's probability of surviving its execution
	// roll. Nil means the node always passes.
	ExecutionChance *ExecutionChance `json:"executionChance,omitempty" yaml:"executionChance,omitempty"`

	// SelectionModified marks the node as governed by a selection-modifier
	// node's cardinality bounds.
	SelectionModified bool `json:"selectionModified,omitempty" yaml:"selectionModified,omitempty"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`

	// SourceHandle identifies which router route the edge leaves from.
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`

	// TargetHandle, when equal to HandleSourceSelector, marks the edge as a
	// scoping link into a filter rather than a control-flow edge.
	TargetHandle string `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
}

// IsScopeLink reports whether the edge is a source-selector scoping link.
func (e Edge) IsScopeLink() bool {
	return e.TargetHandle == HandleSourceSelector
}

// ExecutionChance is a per-node inclusion probability. Either a flat percent
// or an inclusive [Min, Max] range from which a concrete percent is rolled at
// resolution time.
type ExecutionChance struct {
	// Percent is the flat chance in [0, 100]. Ignored when Ranged is true.
	Percent float64 `json:"percent,omitempty" yaml:"percent,omitempty"`

	// Ranged selects the [Min, Max] form.
	Ranged bool `json:"ranged,omitempty" yaml:"ranged,omitempty"`

	// Min and Max bound the rolled chance when Ranged is true.
	Min int `json:"min,omitempty" yaml:"min,omitempty"`
	Max int `json:"max,omitempty" yaml:"max,omitempty"`
}

// Route is one weighted branch of a router node. Percentage values are
// relative weights among the enabled routes; they are not required to sum
// to 100.
type Route struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	Enabled    bool    `json:"enabled" yaml:"enabled"`
}

// SelectionModifierSpec bounds how many nodes of one type may survive
// selection. Min defaults to 1 when the authored settings omit it.
type SelectionModifierSpec struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// NumberOrRange is an authored quantity that is either a fixed value or an
// inclusive [Min, Max] range resolved by one random draw.
type NumberOrRange struct {
	Ranged bool    `json:"ranged,omitempty" yaml:"ranged,omitempty"`
	Value  float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Min    float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max    float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// decodeSettings maps a raw authored settings payload onto a typed struct via
// a JSON round trip. The same technique the engine uses for deep copies: it
// works for any JSON-shaped payload and keeps the decode rules in one place.
func decodeSettings(raw map[string]any, into any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return nil
}

// nodesOfType returns the nodes carrying the given type tag, preserving input
// order. Input order matters: several fallback policies break ties by it.
func nodesOfType(nodes []Node, t NodeType) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}
