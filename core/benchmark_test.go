package core_test

import (
	"testing"

	"github.com/gocrud/wiremap/core"
)

func benchDefs() core.Defs {
	return core.Defs{
		"env": "bench",
		"db": core.Namespace("db", core.Defs{
			"dsn": core.Private("sqlite::memory:"),
			"conn": core.Factory(func(b *core.Injector) (any, error) {
				return b.Get("dsn")
			}),
		}),
	}
}

func BenchmarkGetCached(b *testing.B) {
	root, err := core.Wire(benchDefs())
	if err != nil {
		b.Fatal(err)
	}
	root.MustGet("db.conn")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = root.MustGet("db.conn")
	}
}

func BenchmarkOpenCachedView(b *testing.B) {
	root, err := core.Wire(benchDefs())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view, err := root.Open("db")
		if err != nil {
			b.Fatal(err)
		}
		_ = view.MustGet("conn")
	}
}

func BenchmarkWire(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := core.Wire(benchDefs()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetParallel(b *testing.B) {
	root, err := core.Wire(benchDefs())
	if err != nil {
		b.Fatal(err)
	}

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = root.MustGet("db.conn")
		}
	})
}
