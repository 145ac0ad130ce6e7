package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nfrund/onlinehelp/internal/component"
)

type dummy struct {
	component.Declaration
}

func TestProvidedBy(t *testing.T) {
	t.Run("declaration order is kept", func(t *testing.T) {
		obj := dummy{component.Declaration{"test.I3", "test.I1"}}
		assert.Equal(t, []component.Interface{"test.I3", "test.I1"}, component.ProvidedBy(obj))
	})

	t.Run("duplicates keep first position", func(t *testing.T) {
		obj := dummy{component.Declaration{"test.I1", "test.I2", "test.I1", ""}}
		assert.Equal(t, []component.Interface{"test.I1", "test.I2"}, component.ProvidedBy(obj))
	})

	t.Run("non providers provide nothing", func(t *testing.T) {
		assert.Empty(t, component.ProvidedBy(struct{}{}))
		assert.Empty(t, component.ProvidedBy(nil))
	})

	t.Run("nil pointers provide nothing", func(t *testing.T) {
		var obj *dummy
		assert.NotPanics(t, func() {
			assert.Empty(t, component.ProvidedBy(obj))
		})
		assert.False(t, component.Provides(obj, "test.I1"))
	})

	t.Run("provides", func(t *testing.T) {
		obj := dummy{component.Declaration{"test.I1"}}
		assert.True(t, component.Provides(obj, "test.I1"))
		assert.False(t, component.Provides(obj, "test.I2"))
	})
}

func TestInterfaceValid(t *testing.T) {
	assert.True(t, component.Interface("site.IRootFolder").Valid())
	assert.False(t, component.Interface("").Valid())
	assert.False(t, component.Interface(" site.I").Valid())
	assert.False(t, component.Interface("a/b").Valid())
}

func TestBoundView(t *testing.T) {
	ctx := dummy{}
	var v component.View = &component.BoundView{ViewName: "edit.html", Parent: ctx}
	assert.Equal(t, "edit.html", v.Name())
	assert.Equal(t, ctx, v.Context())
}
