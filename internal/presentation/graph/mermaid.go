package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/guts/pkg/schema"
)

// Overlay marks kinds to highlight on the graph.
type Overlay struct {
	Related []string
	Focus   string
}

// edge is a property of one kind whose type refers to another kind.
type edge struct {
	from, to, label string
	many            bool
}

// GenerateMermaid produces a Mermaid flowchart of kinds and how they refer
// to each other:
// - Kind with a parent: ([Stadium]), linked to the parent by a dotted "extends" edge
// - Kind without properties: [[Subroutine]]
// - Default: [Rectangle]
// Property edges are solid and labelled with the property name; "name[]"
// marks list and tuple properties. Only own properties are drawn, inherited
// ones show through the extends edge.
func GenerateMermaid(kinds []*schema.Kind, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, k := range kinds {
		safeID := sanitizeMermaidID(k.Name())

		opener, closer := "[", "]"
		switch {
		case k.Parent() != nil:
			opener, closer = "([", "])"
		case len(k.Props()) == 0:
			opener, closer = "[[", "]]"
		}
		label := k.Name()
		if k.HasExplicitTag() {
			label = fmt.Sprintf("%s <br/> &lt;%s&gt;", k.Name(), k.Tag())
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)

		if p := k.Parent(); p != nil {
			fmt.Fprintf(&sb, "    %s -. \"extends\" .-> %s\n", safeID, sanitizeMermaidID(p.Name()))
		}
		for _, e := range edgesOf(k) {
			label := e.label
			if e.many {
				label += "[]"
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, label, sanitizeMermaidID(e.to))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef related fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Related {
			safeID := sanitizeMermaidID(name)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s related;\n", safeID)
			}
		}
		if overlay.Focus != "" {
			fmt.Fprintf(&sb, "    class %s focus;\n", sanitizeMermaidID(overlay.Focus))
		}
	}

	return sb.String()
}

// Neighbours returns the kinds directly linked to name, through extends or
// property edges in either direction, sorted by name.
func Neighbours(kinds []*schema.Kind, name string) []string {
	set := make(map[string]bool)
	for _, k := range kinds {
		if p := k.Parent(); p != nil {
			if k.Name() == name {
				set[p.Name()] = true
			}
			if p.Name() == name {
				set[k.Name()] = true
			}
		}
		for _, e := range edgesOf(k) {
			if e.from == name {
				set[e.to] = true
			}
			if e.to == name {
				set[e.from] = true
			}
		}
	}
	delete(set, name)
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func ownProps(k *schema.Kind) []*schema.Property {
	props := k.Props()
	if p := k.Parent(); p != nil {
		return props[len(p.Props()):]
	}
	return props
}

func edgesOf(k *schema.Kind) []edge {
	var edges []edge
	for _, p := range ownProps(k) {
		seen := make(map[string]bool)
		for _, ref := range kindRefs(p.Type, false, 0) {
			if seen[ref.name] {
				continue
			}
			seen[ref.name] = true
			edges = append(edges, edge{from: k.Name(), to: ref.name, label: p.Name, many: ref.many})
		}
	}
	return edges
}

type kindRef struct {
	name string
	many bool
}

// kindRefs lists the kinds reachable from t without passing through another
// record. Unresolvable references are skipped.
func kindRefs(t schema.Type, many bool, depth int) []kindRef {
	if depth > 16 {
		return nil
	}
	switch tt := t.(type) {
	case *schema.DeferredType:
		resolved, err := tt.Resolve()
		if err != nil {
			return nil
		}
		return kindRefs(resolved, many, depth+1)
	case *schema.RecordType:
		return []kindRef{{name: tt.Kind().Name(), many: many}}
	case *schema.ListType:
		return kindRefs(tt.Elem(), true, depth+1)
	case *schema.TupleType:
		return kindRefs(tt.Elem(), true, depth+1)
	case *schema.UnionType:
		var refs []kindRef
		for _, m := range tt.Members() {
			refs = append(refs, kindRefs(m, many, depth+1)...)
		}
		return refs
	}
	return nil
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
