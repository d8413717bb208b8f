package wiremap

import (
	"fmt"
	"strings"

	"github.com/gocrud/wiremap/core"
)

// Compose merges module contributions into a copy of base, nesting each
// module's defs under its declared namespace path. Claiming a path (or a
// key) that is already taken is an error, never a silent merge.
func Compose(base Defs, mods ...Module) (Defs, error) {
	out := make(Defs, len(base))
	for k, v := range base {
		out[k] = v
	}

	for _, mod := range mods {
		path := mod.Namespace()
		if path == "" {
			return nil, fmt.Errorf("wiremap: module namespace must not be empty")
		}
		defs, err := mod.Defs()
		if err != nil {
			return nil, fmt.Errorf("wiremap: module %q: %w", path, err)
		}
		if err := insert(out, "", strings.Split(path, "."), defs); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// insert nests defs under the remaining path segments, creating or
// reusing intermediate namespace declarations along the way.
func insert(dst Defs, parent string, segments []string, defs core.Defs) error {
	key := segments[0]
	abs := key
	if parent != "" {
		abs = parent + "." + key
	}

	existing, taken := dst[key]
	if len(segments) == 1 {
		if taken {
			return &core.DuplicateNamespaceError{Path: abs}
		}
		dst[key] = core.Namespace(abs, defs)
		return nil
	}

	var child core.Defs
	if taken {
		decl, ok := existing.(*core.NamespaceDecl)
		if !ok {
			return fmt.Errorf("wiremap: key %q already holds a unit, cannot nest namespace %q", abs, abs)
		}
		child = decl.Defs
	} else {
		child = make(core.Defs)
		dst[key] = core.Namespace(abs, child)
	}
	return insert(child, abs, segments[1:], defs)
}
