package graft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft"
)

func TestDefineValidation(t *testing.T) {
	_, err := graft.Define(graft.Spec{})
	assert.ErrorContains(t, err, "name is required")

	_, err = graft.Define(graft.Spec{
		Name:      "hollow",
		Listeners: map[*graft.Event]graft.Listener{graft.NewEvent("ping"): nil},
	})
	assert.ErrorContains(t, err, "nil listener entry")

	assert.Panics(t, func() { graft.MustDefine(graft.Spec{}) })
}

func TestComponentAccessors(t *testing.T) {
	glow := graft.NewEvent("glow")
	dim := graft.NewEvent("dim")
	def := graft.MustDefine(graft.Spec{
		Name:     "lantern",
		Defaults: map[string]any{"fuel": 10},
		Listeners: map[*graft.Event]graft.Listener{
			glow: func(inst *graft.Instance, args ...any) (any, error) {
				return inst.Get("fuel"), nil
			},
		},
	})

	assert.Equal(t, "lantern", def.Name())

	v, ok := def.Default("fuel")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	_, ok = def.Default("wick")
	assert.False(t, ok)

	assert.True(t, def.ListensTo(glow))
	assert.False(t, def.ListensTo(dim))
	assert.False(t, def.ListensTo(nil))

	other := graft.MustDefine(graft.Spec{Name: "lantern"})
	assert.NotEqual(t, def.ID(), other.ID())
}
