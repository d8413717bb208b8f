package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/wiremap/core"
)

func appDefs() core.Defs {
	return core.Defs{
		"env": "test",
		"db": core.Namespace("db", core.Defs{
			"dsn":    core.Private("sqlite::memory:"),
			"conn":   "db-conn",
			"schema": "public",
		}),
		"cache": core.Namespace("cache", core.Defs{
			"client": core.Factory(func(b *core.Injector) (any, error) {
				// Cross-namespace access only sees public db members.
				return b.Get("db.conn")
			}),
		}),
	}
}

func TestOpenRootToken(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	view, err := root.Open("")
	require.NoError(t, err)
	assert.Equal(t, "", view.Namespace())
	assert.Equal(t, []string{"env"}, view.Keys())
	assert.Equal(t, "test", view.MustGet("env"))
}

func TestOpenLocalTokenExposesPrivate(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	dbInjector, err := root.Block("db")
	require.NoError(t, err)

	view, err := dbInjector.Open(".")
	require.NoError(t, err)
	assert.Equal(t, []string{"conn", "dsn", "schema"}, view.Keys())
	assert.Equal(t, "sqlite::memory:", view.MustGet("dsn"))
}

func TestOpenForeignNamespaceFiltersPrivate(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	view, err := root.Open("db")
	require.NoError(t, err)
	assert.Equal(t, []string{"conn", "schema"}, view.Keys())
	assert.False(t, view.Has("dsn"))

	// A private member fails exactly like a missing one.
	_, errPrivate := view.Get("dsn")
	_, errMissing := view.Get("nope")

	var nf *core.UnitNotFoundError
	require.ErrorAs(t, errPrivate, &nf)
	assert.Equal(t, "db", nf.Block)
	nf = nil
	require.ErrorAs(t, errMissing, &nf)

	assert.IsType(t, errMissing, errPrivate)
}

func TestOpenUnknownNamespace(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	_, err = root.Open("ghost")
	var nf *core.UnitNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ghost", nf.Key)
}

func TestOpenReturnsCachedView(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	a, err := root.Open("db")
	require.NoError(t, err)
	b, err := root.Open("db")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestGetFlatPathSugar(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	// Dotted path from the root injector is absolute.
	v, err := root.Get("db.conn")
	require.NoError(t, err)
	assert.Equal(t, "db-conn", v)

	// Bare name on a namespaced injector is a local member.
	dbInjector, err := root.Block("db")
	require.NoError(t, err)
	dsn, err := dbInjector.Get("dsn")
	require.NoError(t, err)
	assert.Equal(t, "sqlite::memory:", dsn)
}

func TestGetMatchesViewGet(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	view, err := root.Open("db")
	require.NoError(t, err)

	flat, err := root.Get("db.conn")
	require.NoError(t, err)
	twoStep, err := view.Get("conn")
	require.NoError(t, err)
	assert.Equal(t, twoStep, flat)
}

func TestCrossNamespaceFactoryAccess(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	v, err := root.Get("cache.client")
	require.NoError(t, err)
	assert.Equal(t, "db-conn", v)
}

func TestCrossNamespacePrivateRejected(t *testing.T) {
	root, err := core.Wire(core.Defs{
		"db": core.Namespace("db", core.Defs{
			"dsn": core.Private("secret"),
		}),
		"leak": core.Factory(func(b *core.Injector) (any, error) {
			return b.Get("db.dsn")
		}),
	})
	require.NoError(t, err)

	_, err = root.Get("leak")
	var nf *core.UnitNotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestPublicWrapperExposesPrivate(t *testing.T) {
	root, err := core.Wire(core.Defs{
		"db": core.Namespace("db", core.Defs{
			"dsn": core.Private("secret"),
			"masked": core.Factory(func(b *core.Injector) (any, error) {
				dsn, err := b.Get("dsn")
				if err != nil {
					return nil, err
				}
				return "masked:" + dsn.(string), nil
			}),
		}),
	})
	require.NoError(t, err)

	v, err := root.Get("db.masked")
	require.NoError(t, err)
	assert.Equal(t, "masked:secret", v)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	assert.Panics(t, func() { root.MustGet("nope") })
}

func TestBlockDefaultReturnsSameInjector(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	a, err := root.Block("db")
	require.NoError(t, err)
	b, err := root.Block("db")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestBlockStrictRejectsSecondClaim(t *testing.T) {
	root, err := core.Wire(appDefs(), core.WithStrictInjectors())
	require.NoError(t, err)

	_, err = root.Block("db")
	require.NoError(t, err)

	_, err = root.Block("db")
	var inUse *core.InjectorInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, "db", inUse.Namespace)
}

func TestBlockUnknownNamespace(t *testing.T) {
	root, err := core.Wire(appDefs())
	require.NoError(t, err)

	_, err = root.Block("ghost")
	var nf *core.UnitNotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestNamespaceWithoutDirectUnitsNotWireable(t *testing.T) {
	root, err := core.Wire(core.Defs{
		"app": core.Namespace("app", core.Defs{
			"db": core.Namespace("app.db", core.Defs{
				"dsn": "x",
			}),
		}),
	})
	require.NoError(t, err)

	_, err = root.Open("app")
	var nf *core.UnitNotFoundError
	require.ErrorAs(t, err, &nf)

	view, err := root.Open("app.db")
	require.NoError(t, err)
	assert.Equal(t, "x", view.MustGet("dsn"))
}
