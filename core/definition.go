package core

import "context"

// Defs is the nested definitions structure handed to Wire.
//
// Values may be:
//   - any plain value            -> Value unit
//   - *Definition                -> unit built with Factory/AsyncFactory/Private
//   - *NamespaceDecl             -> nested namespace built with Namespace
type Defs map[string]any

// Kind tags a unit definition. It is fixed at registry build time and
// never probed again during resolution.
type Kind int

const (
	// KindValue is a plain value with no invocation semantics.
	KindValue Kind = iota
	// KindFactory is a function invoked at most once per session; its
	// return value is cached under the unit's absolute path.
	KindFactory
	// KindAsyncFactory is a factory resolved eagerly while wiring,
	// before any injector is handed to user code.
	KindAsyncFactory
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindFactory:
		return "factory"
	case KindAsyncFactory:
		return "async-factory"
	default:
		return "unknown"
	}
}

// FactoryFunc builds a unit. The injector passed in is scoped to the
// unit's own namespace, so factories resolve their dependencies through
// it instead of capturing ambient state.
type FactoryFunc func(b *Injector) (any, error)

// AsyncFactoryFunc builds a unit during the wiring warmup pass. The
// context is the one given to Wire/WireContext/WireAsync.
type AsyncFactoryFunc func(ctx context.Context, b *Injector) (any, error)

// Definition describes one injectable unit.
type Definition struct {
	Kind    Kind
	Value   any
	Factory FactoryFunc
	Async   AsyncFactoryFunc
	Private bool
}

// Value wraps a plain value in an explicit definition. Plain values in a
// Defs map are equivalent; Value exists so Private can be applied to them.
func Value(v any) *Definition {
	return &Definition{Kind: KindValue, Value: v}
}

// Factory declares a unit built by fn on first resolution.
func Factory(fn FactoryFunc) *Definition {
	return &Definition{Kind: KindFactory, Factory: fn}
}

// AsyncFactory declares a unit built by fn during the warmup pass.
func AsyncFactory(fn AsyncFactoryFunc) *Definition {
	return &Definition{Kind: KindAsyncFactory, Async: fn}
}

// Private marks a unit as visible only to its own namespace. It accepts a
// plain value or a *Definition and returns a private copy.
func Private(v any) *Definition {
	def := classify(v)
	cp := *def
	cp.Private = true
	return &cp
}

// classify turns a Defs entry into a tagged Definition. Plain values
// become Value units.
func classify(v any) *Definition {
	if def, ok := v.(*Definition); ok {
		return def
	}
	return &Definition{Kind: KindValue, Value: v}
}

// NamespaceDecl tags a subtree of definitions with its declared absolute
// path. The registry verifies the declared path against the structural
// nesting position.
type NamespaceDecl struct {
	Path string
	Defs Defs
}

// Namespace declares a nested namespace. The path must be the absolute
// dot-path the subtree ends up at; a mismatch is a build-time failure.
func Namespace(path string, defs Defs) *NamespaceDecl {
	return &NamespaceDecl{Path: path, Defs: defs}
}
