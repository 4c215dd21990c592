// Package document models the CAD-host side of feature recognition: named
// parts with coarse edge geometry, and the resolver abstraction the engine
// uses to turn a part name into an object.
//
// The engine never inspects resolved objects itself — only detectors do —
// so resolvers may hand back any type. This package provides the types the
// built-in detectors understand plus the deterministic placeholder used
// when no resolver is available.
package document

import "sort"

// Edge kinds understood by the heuristic detectors.
const (
	EdgeCircle = "circle"
	EdgeLine   = "line"
	EdgeCurve  = "curve"
)

// Edge is one boundary edge of a part in coarse form.
type Edge struct {
	Kind   string     `json:"kind"`
	Center [3]float64 `json:"center,omitempty"`
	Radius float64    `json:"radius,omitempty"`
}

// Part is an in-memory stand-in for a CAD solid: just enough topology for
// heuristic feature detection.
type Part struct {
	Label  string `json:"label"`
	Edges  []Edge `json:"edges"`
	Solids int    `json:"solids"`
}

// Placeholder is the deterministic mock target substituted for a part
// name when no resolver is wired. Detectors that need real geometry
// return nothing for it; canned detectors ignore the target entirely.
type Placeholder struct {
	Name string
}

// Resolver maps a part name to an in-memory target object.
// The second return reports whether the name was found.
type Resolver interface {
	Resolve(name string) (any, bool)
	// PartNames lists every name this resolver can currently resolve,
	// for introspection. Order is not significant.
	PartNames() []string
}

// Document is a named collection of parts, standing in for the CAD host's
// active document. It implements Resolver.
type Document struct {
	parts map[string]*Part
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{parts: make(map[string]*Part)}
}

// Add inserts or replaces a part under the given name.
func (d *Document) Add(name string, p *Part) {
	d.parts[name] = p
}

// Resolve returns the named part, if present.
func (d *Document) Resolve(name string) (any, bool) {
	p, ok := d.parts[name]
	if !ok {
		return nil, false
	}
	return p, true
}

// PartNames returns the document's part names, sorted.
func (d *Document) PartNames() []string {
	names := make([]string, 0, len(d.parts))
	for name := range d.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain is a Resolver that tries each member in order and resolves to the
// first hit. Used to layer the demo document over the on-disk part
// library.
type Chain []Resolver

// Resolve tries each resolver in order.
func (c Chain) Resolve(name string) (any, bool) {
	for _, r := range c {
		if obj, ok := r.Resolve(name); ok {
			return obj, true
		}
	}
	return nil, false
}

// PartNames merges member names, deduplicated and sorted.
func (c Chain) PartNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range c {
		for _, name := range r.PartNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Demo returns a document seeded with sample parts so the server is
// usable out of the box. The bracket's circular edges exercise the edge
// heuristics; the plate has enough edges to trigger the fillet hint.
func Demo() *Document {
	doc := NewDocument()
	doc.Add("bracket", &Part{
		Label: "Mounting bracket",
		Edges: []Edge{
			{Kind: EdgeCircle, Center: [3]float64{10, 20, 0}, Radius: 4.0},
			{Kind: EdgeCircle, Center: [3]float64{40, 20, 0}, Radius: 4.0},
			{Kind: EdgeLine},
			{Kind: EdgeLine},
			{Kind: EdgeLine},
			{Kind: EdgeLine},
		},
		Solids: 1,
	})
	doc.Add("cover_plate", &Part{
		Label: "Cover plate",
		Edges: []Edge{
			{Kind: EdgeCircle, Center: [3]float64{5, 5, 0}, Radius: 1.6},
			{Kind: EdgeLine}, {Kind: EdgeLine}, {Kind: EdgeLine}, {Kind: EdgeLine},
			{Kind: EdgeCurve}, {Kind: EdgeCurve}, {Kind: EdgeCurve}, {Kind: EdgeCurve},
			{Kind: EdgeCurve}, {Kind: EdgeCurve}, {Kind: EdgeCurve},
		},
		Solids: 1,
	})
	return doc
}
