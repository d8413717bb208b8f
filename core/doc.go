// Package core implements the wiring engine behind wiremap.
//
// Applications hand a nested Defs structure to Wire. Units are plain
// values, Factory functions invoked at most once, or AsyncFactory
// functions resolved eagerly while wiring. Units live under dot-separated
// namespaces declared with Namespace, and units marked Private are only
// reachable from their own namespace (or through root access).
//
// All state produced by one Wire call (the flattened registry, the
// resolution cache and the per-namespace injectors) belongs to a single
// session. Two concurrent sessions never share state.
//
// Basic usage:
//
//	root, err := core.Wire(core.Defs{
//		"dsn": "file::memory:",
//		"store": core.Factory(func(b *core.Injector) (any, error) {
//			dsn, err := b.Get("dsn")
//			if err != nil {
//				return nil, err
//			}
//			return openStore(dsn.(string))
//		}),
//	})
package core
