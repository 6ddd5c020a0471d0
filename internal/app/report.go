package app

import (
	"encoding/json"
	"fmt"
	"io"

	"bundlegraph/internal/bundle"
	"bundlegraph/internal/node"
)

// Report is the build output handed to the bundle assembler: the placement
// decision for every materialized unit plus its auxiliary payload.
type Report struct {
	Bundle            string   `json:"bundle"`
	BuildID           string   `json:"build_id"`
	Passes            int      `json:"passes"`
	Archive           []Entry  `json:"archive"`
	Loose             []Entry  `json:"loose"`
	UnexpectedMissing []string `json:"unexpected_missing,omitempty"`
}

// Entry describes one materialized unit.
type Entry struct {
	Identifier      string          `json:"identifier"`
	Kind            string          `json:"kind"`
	Path            string          `json:"path,omitempty"`
	Resources       []node.Resource `json:"resources,omitempty"`
	Bootstrap       string          `json:"bootstrap,omitempty"`
	IgnoreResources bool            `json:"ignore_resources,omitempty"`
}

// buildReport assembles the report from the classified graph.
func buildReport(bundleName, buildID string, passes int, g *bundle.Graph, archive, loose []*node.Node, unexpectedMissing []string) *Report {
	return &Report{
		Bundle:            bundleName,
		BuildID:           buildID,
		Passes:            passes,
		Archive:           entries(g, archive),
		Loose:             entries(g, loose),
		UnexpectedMissing: unexpectedMissing,
	}
}

func entries(g *bundle.Graph, nodes []*node.Node) []Entry {
	out := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		e := Entry{
			Identifier:      n.Identifier,
			Kind:            n.Kind.String(),
			Path:            n.Path,
			Resources:       g.Resources(n),
			IgnoreResources: g.IgnoreResources(n),
		}
		if source, ok := g.Bootstrap(n); ok {
			e.Bootstrap = source
		}
		out = append(out, e)
	}
	return out
}

// write renders the report in the requested format.
func (r *Report) write(w io.Writer, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return r.writeText(w)
}

func (r *Report) writeText(w io.Writer) error {
	fmt.Fprintf(w, "bundle %s (%d passes)\n", r.Bundle, r.Passes)

	fmt.Fprintf(w, "\narchive (%d):\n", len(r.Archive))
	writeEntries(w, r.Archive)

	fmt.Fprintf(w, "\nloose (%d):\n", len(r.Loose))
	writeEntries(w, r.Loose)

	if len(r.UnexpectedMissing) > 0 {
		fmt.Fprintf(w, "\nunresolved imports (%d):\n", len(r.UnexpectedMissing))
		for _, name := range r.UnexpectedMissing {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	return nil
}

func writeEntries(w io.Writer, entries []Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "  %-40s %s\n", e.Identifier, e.Kind)
		for _, rsrc := range e.Resources {
			fmt.Fprintf(w, "    resource %s -> %s\n", rsrc.Source, rsrc.Dest)
		}
		if e.Bootstrap != "" {
			fmt.Fprintf(w, "    bootstrap (%d bytes)\n", len(e.Bootstrap))
		}
	}
}
