package sim

import "fmt"

// Issue is one pre-flight finding about the authored graph.
type Issue struct {
	// NodeID identifies the node the finding concerns, when there is one.
	NodeID string `json:"nodeId,omitempty"`

	// Message describes the finding.
	Message string `json:"message"`
}

// Report is the result of a pre-flight validation pass. Errors describe
// authored settings a resolution pass would reject or mangle; warnings
// describe suspicious-but-resolvable authoring. The report is advisory only:
// the engine never runs validation on its own, and a graph with findings can
// still be handed to Simulate.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// OK reports whether the pass found no errors (warnings do not count).
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Errorf appends a formatted error finding.
func (r *Report) Errorf(nodeID, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{NodeID: nodeID, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a formatted warning finding.
func (r *Report) Warnf(nodeID, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{NodeID: nodeID, Message: fmt.Sprintf(format, args...)})
}

// Validate inspects an authored graph for problems a resolution pass would
// either reject outright or paper over with fallbacks: out-of-range values,
// allocation sums that cannot hit their target, ordering inconsistencies,
// unknown filter kinds, and ambiguous selection-modifier targeting.
func Validate(nodes []Node, edges []Edge, registry Registry) *Report {
	rep := &Report{}

	var routers int
	for _, n := range nodes {
		switch n.Type {
		case NodeRouter:
			routers++
			inspectRouter(n, rep)
		case NodeFilter:
			h, ok := registry.Handler(n.DefinitionID)
			if !ok {
				rep.Errorf(n.ID, "unknown filter definition %q", n.DefinitionID)
				continue
			}
			h.Inspect(n, rep)
		case NodeSourceList:
			inspectSourceList(n, rep)
		}
		if c := n.ExecutionChance; c != nil {
			if c.Ranged && c.Min > c.Max {
				rep.Errorf(n.ID, "execution chance minimum %d exceeds maximum %d", c.Min, c.Max)
			}
			if !c.Ranged && (c.Percent < 0 || c.Percent > 100) {
				rep.Errorf(n.ID, "execution chance %g lies outside [0, 100]", c.Percent)
			}
		}
	}
	if routers > 1 {
		rep.Errorf("", "graph contains %d router nodes, expected at most one", routers)
	}

	inspectModifierTargets(nodes, edges, rep)
	return rep
}

func inspectRouter(n Node, rep *Report) {
	var settings routerSettings
	if err := decodeSettings(n.Settings, &settings); err != nil {
		rep.Errorf(n.ID, "router settings are malformed: %v", err)
		return
	}
	enabled := 0
	for _, r := range settings.Routes {
		if r.Percentage < 0 {
			rep.Errorf(n.ID, "route %q has negative weight %g", r.Name, r.Percentage)
		}
		if r.Enabled && r.Percentage > 0 {
			enabled++
		}
	}
	if enabled == 0 {
		rep.Warnf(n.ID, "router has no enabled route with positive weight; no route will be taken")
	}
}

func inspectSourceList(n Node, rep *Report) {
	var settings sourceListSettings
	if err := decodeSettings(n.Settings, &settings); err != nil {
		rep.Errorf(n.ID, "source list settings are malformed: %v", err)
		return
	}
	if len(settings.Entries) == 0 {
		return
	}

	// The per-entry shares re-run the allocator against a ceiling of 100;
	// check that 100 is actually attainable.
	staticSum, minSum, maxSum := 0, 0, 0
	for _, e := range settings.Entries {
		if e.Percentage.Ranged {
			if e.Percentage.Min > e.Percentage.Max {
				rep.Errorf(n.ID, "entry %q has percentage minimum %g above maximum %g",
					e.Name, e.Percentage.Min, e.Percentage.Max)
			}
			minSum += int(e.Percentage.Min)
			maxSum += int(e.Percentage.Max)
		} else {
			staticSum += int(e.Percentage.Value)
		}
	}
	if minSum == 0 && maxSum == 0 {
		if staticSum != 100 {
			rep.Errorf(n.ID, "entry percentages sum to %d, expected exactly 100", staticSum)
		}
	} else if staticSum+minSum > 100 || staticSum+maxSum < 100 {
		rep.Errorf(n.ID, "entry percentages can sum to [%d, %d], which never hits 100",
			staticSum+minSum, staticSum+maxSum)
	}
}

// inspectModifierTargets flags node types targeted by more than one
// selection-modifier node. Which modifier should govern the group is
// undefined, and Simulate refuses such graphs, so it is surfaced here too.
func inspectModifierTargets(nodes []Node, edges []Edge, rep *Report) {
	modifiers := make(map[string]bool)
	typeOf := make(map[string]NodeType, len(nodes))
	for _, n := range nodes {
		typeOf[n.ID] = n.Type
		if n.Type == NodeSelectionModifier {
			modifiers[n.ID] = true
		}
	}
	if len(modifiers) < 2 {
		return
	}

	targets := make(map[NodeType]map[string]bool)
	note := func(modID, otherID string) {
		t, ok := typeOf[otherID]
		if !ok || t == NodeSelectionModifier {
			return
		}
		if targets[t] == nil {
			targets[t] = make(map[string]bool)
		}
		targets[t][modID] = true
	}
	for _, e := range edges {
		if modifiers[e.Source] {
			note(e.Source, e.Target)
		}
		if modifiers[e.Target] {
			note(e.Target, e.Source)
		}
	}
	for t, mods := range targets {
		if len(mods) > 1 {
			rep.Errorf("", "%d selection modifiers target node type %q; at most one may", len(mods), t)
		}
	}
}
