package core

import (
	"errors"
	"fmt"
)

// NamespaceMismatchError is returned when a namespace's declared path does
// not equal the path implied by its nesting position. This is a programmer
// error and aborts registry construction.
type NamespaceMismatchError struct {
	Declared string
	Expected string
}

func (e *NamespaceMismatchError) Error() string {
	return fmt.Sprintf("wiremap: namespace declared as %q but nested at %q", e.Declared, e.Expected)
}

// DuplicateNamespaceError is returned when the same absolute namespace
// path is declared twice with its own member set.
type DuplicateNamespaceError struct {
	Path string
}

func (e *DuplicateNamespaceError) Error() string {
	return fmt.Sprintf("wiremap: namespace %q declared more than once", e.Path)
}

// UnitNotFoundError is returned when a requested path does not exist or is
// not visible to the caller. A private unit reached from a foreign
// namespace surfaces exactly like a missing one.
type UnitNotFoundError struct {
	Key   string
	Block string
}

func (e *UnitNotFoundError) Error() string {
	return fmt.Sprintf("wiremap: unit %q not found from block %q", e.Key, e.Block)
}

// InjectorInUseError is returned in strict mode when an injector is
// claimed twice for the same namespace within one session.
type InjectorInUseError struct {
	Namespace string
}

func (e *InjectorInUseError) Error() string {
	return fmt.Sprintf("wiremap: injector for block %q already in use", e.Namespace)
}

// AsyncUnitError wraps a failure of one async factory during the warmup
// pass. Wiring is all-or-nothing: the first failure aborts the session.
type AsyncUnitError struct {
	Path  string
	Cause error
}

func (e *AsyncUnitError) Error() string {
	return fmt.Sprintf("wiremap: async unit %q failed: %v", e.Path, e.Cause)
}

func (e *AsyncUnitError) Unwrap() error { return e.Cause }

// errAsyncNotWarmed reports an async unit reached before the warmup pass
// stored its value. Wire guarantees the pass runs first, so hitting this
// means the session was constructed outside the wiring entry points.
var errAsyncNotWarmed = errors.New("wiremap: async unit resolved before warmup pass")
