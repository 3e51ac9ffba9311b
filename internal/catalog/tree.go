package catalog

import "strings"

// Tree is the category hierarchy keyed by name. Parent links come from the
// flat category rows, so lookups tolerate missing parents and cycles.
type Tree struct {
	children map[string][]string
	parent   map[string]string
}

func NewTree(categories []Category) *Tree {
	t := &Tree{
		children: make(map[string][]string),
		parent:   make(map[string]string),
	}
	for _, c := range categories {
		if c.ParentName == nil {
			continue
		}
		t.children[*c.ParentName] = append(t.children[*c.ParentName], c.Name)
		t.parent[c.Name] = *c.ParentName
	}
	return t
}

func (t *Tree) Children(name string) []string {
	return t.children[name]
}

func (t *Tree) Parent(name string) (string, bool) {
	p, ok := t.parent[name]
	return p, ok
}

// Ancestors returns the parent chain from the immediate parent up to the
// root. A visited set guards against cycles in bad data.
func (t *Tree) Ancestors(name string) []string {
	var chain []string
	seen := map[string]bool{name: true}
	for {
		p, ok := t.parent[name]
		if !ok || seen[p] {
			return chain
		}
		chain = append(chain, p)
		seen[p] = true
		name = p
	}
}

// Descendants returns the recursive closure of names under root, excluding
// root itself.
func (t *Tree) Descendants(root string) map[string]bool {
	out := make(map[string]bool)
	t.collect(root, out)
	return out
}

func (t *Tree) collect(name string, out map[string]bool) {
	for _, child := range t.children[name] {
		if out[child] {
			continue
		}
		out[child] = true
		t.collect(child, out)
	}
}

// AggregateSet builds the membership set for the "Shoes" and "Clothing"
// aggregate views: all descendants of the group plus any category anywhere in
// the tree whose name contains the group word, which picks up sport-specific
// children like "Running Shoes".
func (t *Tree) AggregateSet(group string) map[string]bool {
	out := t.Descendants(group)
	out[group] = true
	for name := range t.parent {
		if strings.Contains(name, group) {
			out[name] = true
		}
	}
	return out
}
