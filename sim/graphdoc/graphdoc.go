// Package graphdoc decodes authored quiz-graph documents into the engine's
// node and edge lists.
//
// The node editor is an external collaborator; what crosses the boundary is a
// plain document of nodes and edges. This package accepts that document as
// YAML (or JSON, which YAML subsumes) so tools, tests, and examples can keep
// graphs in files without re-implementing the shape.
package graphdoc

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quizforge/quizgraph/sim"
)

// Document is one authored quiz graph.
type Document struct {
	Nodes []sim.Node `yaml:"nodes" json:"nodes"`
	Edges []sim.Edge `yaml:"edges" json:"edges"`
}

// Decode reads one document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graph document: %w", err)
	}
	if err := check(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads one document from the file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph document: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes the document to w as YAML.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graph document: %w", err)
	}
	return nil
}

// check verifies document-level integrity: node IDs are unique and every
// edge endpoint names a node in the document. Settings-level validity is the
// engine's pre-flight pass's job, not the codec's.
func check(doc *Document) error {
	ids := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.ID == "" {
			return fmt.Errorf("graph document: node with empty id")
		}
		if ids[n.ID] {
			return fmt.Errorf("graph document: duplicate node id %q", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range doc.Edges {
		if !ids[e.Source] {
			return fmt.Errorf("graph document: edge references unknown source %q", e.Source)
		}
		if !ids[e.Target] {
			return fmt.Errorf("graph document: edge references unknown target %q", e.Target)
		}
	}
	return nil
}
