package core

import (
	"sort"
	"strings"
)

// LocalBlock is the request token for the caller's own namespace.
const LocalBlock = "."

// RootBlock is the request token (and path) of the root namespace.
const RootBlock = ""

// registry is the flattened, immutable output of buildRegistry: every
// unit keyed by absolute dot-path, plus the set of wireable namespaces
// and their direct member names.
type registry struct {
	units      map[string]*Definition
	namespaces map[string]bool
	members    map[string][]string // namespace -> direct leaf names, sorted
	declared   map[string]bool     // every namespace path seen, wireable or not
	asyncOrder []string            // absolute paths of async units, warmup order
}

// joinPath appends a segment to a namespace path. The root namespace is
// the empty string, so its members keep bare names.
func joinPath(ns, leaf string) string {
	if ns == RootBlock {
		return leaf
	}
	return ns + "." + leaf
}

// splitLeaf splits an absolute unit path into namespace and member name.
func splitLeaf(abs string) (ns, leaf string) {
	if i := strings.LastIndex(abs, "."); i >= 0 {
		return abs[:i], abs[i+1:]
	}
	return RootBlock, abs
}

// buildRegistry flattens the nested structure into a registry. It never
// mutates the input. Namespace tags are checked against their structural
// position; a namespace becomes wireable only when it directly owns at
// least one unit.
func buildRegistry(root Defs) (*registry, error) {
	reg := &registry{
		units:      make(map[string]*Definition),
		namespaces: map[string]bool{RootBlock: true},
		members:    make(map[string][]string),
		declared:   map[string]bool{RootBlock: true},
	}

	if err := reg.walk(RootBlock, root); err != nil {
		return nil, err
	}

	for _, names := range reg.members {
		sort.Strings(names)
	}

	// Go maps carry no declaration order, so the warmup order is the
	// lexicographic order of absolute paths. Root units sort ahead of
	// every namespaced unit because their paths carry no dot prefix.
	sort.Strings(reg.asyncOrder)

	return reg, nil
}

func (r *registry) walk(ns string, defs Defs) error {
	var direct []string

	// Sorted key order keeps the walk deterministic across runs.
	keys := make([]string, 0, len(defs))
	for k := range defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		decl, ok := defs[key].(*NamespaceDecl)
		if !ok {
			abs := joinPath(ns, key)
			def := classify(defs[key])
			r.units[abs] = def
			if def.Kind == KindAsyncFactory {
				r.asyncOrder = append(r.asyncOrder, abs)
			}
			direct = append(direct, key)
			continue
		}

		expected := joinPath(ns, key)
		if decl.Path != expected {
			return &NamespaceMismatchError{Declared: decl.Path, Expected: expected}
		}
		if r.declared[expected] {
			return &DuplicateNamespaceError{Path: expected}
		}
		r.declared[expected] = true
		if err := r.walk(expected, decl.Defs); err != nil {
			return err
		}
	}

	// A namespace holding only nested namespaces is not itself wireable,
	// though its children were still walked above.
	if len(direct) > 0 {
		r.members[ns] = direct
		r.namespaces[ns] = true
	}

	return nil
}

// visibleMembers returns the member names of ns exposed to a caller
// operating from block `from`. Local and root-namespace access expose
// private units; everything else filters them out.
func (r *registry) visibleMembers(ns, from string) []string {
	names := r.members[ns]
	if ns == from {
		return names
	}

	visible := make([]string, 0, len(names))
	for _, name := range names {
		if def := r.units[joinPath(ns, name)]; def != nil && def.Private {
			continue
		}
		visible = append(visible, name)
	}
	return visible
}

// lookup fetches a unit definition honoring visibility: a private unit is
// only returned when the requesting block owns it.
func (r *registry) lookup(abs, from string) (*Definition, bool) {
	def, ok := r.units[abs]
	if !ok {
		return nil, false
	}
	if def.Private {
		ns, _ := splitLeaf(abs)
		if ns != from {
			return nil, false
		}
	}
	return def, true
}
