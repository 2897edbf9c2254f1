package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/pkg/manifest"
	"github.com/aretw0/graft/pkg/registry"
)

const sheetManifest = `
events:
  - name: damage
    reducer: sum
    checker: number
    default: 0
  - name: roll
    reducer: collect

templates:
  - name: unit
    components:
      - component: health
        params: {max: 100}
        data: {faction: red}
  - name: soldier
    extends: [unit]
    components:
      - component: health
        params: {max: 150}
`

type healthConfig struct {
	Max int
}

func registerHealth(t *testing.T, reg *registry.Registry) *graft.Component {
	t.Helper()
	def := graft.MustDefine(graft.Spec{
		Name: "health",
		Init: func(inst *graft.Instance, cfg any) error {
			var c healthConfig
			if err := graft.DecodeArgs(cfg, &c); err != nil {
				return err
			}
			inst.Set("max", c.Max)
			return nil
		},
	})
	require.NoError(t, reg.AddComponent("health", def))
	return def
}

func TestLoad(t *testing.T) {
	reg := registry.New()
	health := registerHealth(t, reg)

	set, err := manifest.Load(strings.NewReader(sheetManifest), reg)
	require.NoError(t, err)
	assert.Len(t, set.Events, 2)
	assert.Len(t, set.Templates, 2)

	damage, ok := reg.Event("damage")
	require.True(t, ok)
	assert.Equal(t, "damage", damage.Name())
	assert.Equal(t, 0, damage.Default())

	soldier, ok := reg.Template("soldier")
	require.True(t, ok)

	bin, err := soldier.Instance(nil)
	require.NoError(t, err)
	inst := bin.GetComponent(health)
	require.NotNil(t, inst)
	assert.Equal(t, 150, inst.Get("max"), "own params override the inherited entry")
	assert.Equal(t, "red", inst.Get("faction"), "inherited data survives")
}

func TestLoadedEventDispatch(t *testing.T) {
	reg := registry.New()
	_, err := manifest.Load(strings.NewReader(sheetManifest[:strings.Index(sheetManifest, "templates:")]), reg)
	require.NoError(t, err)

	damage, ok := reg.Event("damage")
	require.True(t, ok)

	def := graft.MustDefine(graft.Spec{
		Name: "blade",
		Init: func(inst *graft.Instance, cfg any) error {
			return inst.Bin().AddListener(damage, inst.Definition())
		},
		Listeners: map[*graft.Event]graft.Listener{
			damage: func(inst *graft.Instance, args ...any) (any, error) { return 4, nil },
		},
	})

	bin := graft.NewBin()
	_, err = bin.AddComponent(def, nil)
	require.NoError(t, err)

	out, err := bin.Announce(damage)
	require.NoError(t, err)
	assert.Equal(t, float64(4), out)

	// The declared checker is live too.
	bad := graft.MustDefine(graft.Spec{
		Name: "liar",
		Init: func(inst *graft.Instance, cfg any) error {
			return inst.Bin().AddListener(damage, inst.Definition())
		},
		Listeners: map[*graft.Event]graft.Listener{
			damage: func(inst *graft.Instance, args ...any) (any, error) { return "ow", nil },
		},
	})
	_, err = bin.AddComponent(bad, nil)
	require.NoError(t, err)
	_, err = bin.Announce(damage)
	var tc *graft.TypeCheckViolationError
	require.ErrorAs(t, err, &tc)
}

func TestLoadMultiDocument(t *testing.T) {
	reg := registry.New()
	registerHealth(t, reg)

	src := `
templates:
  - name: unit
    components:
      - component: health
---
templates:
  - name: soldier
    extends: [unit]
`
	set, err := manifest.Load(strings.NewReader(src), reg)
	require.NoError(t, err)
	assert.Len(t, set.Templates, 2)

	_, ok := reg.Template("soldier")
	assert.True(t, ok)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown reducer",
			src:  "events:\n  - name: x\n    reducer: median\n",
			want: `unknown reducer "median"`,
		},
		{
			name: "unknown checker",
			src:  "events:\n  - name: x\n    checker: complex\n",
			want: "unsupported type: complex",
		},
		{
			name: "missing event name",
			src:  "events:\n  - reducer: sum\n",
			want: "missing name",
		},
		{
			name: "unknown component",
			src:  "templates:\n  - name: x\n    components:\n      - component: ghost\n",
			want: `unknown component "ghost"`,
		},
		{
			name: "unknown base",
			src:  "templates:\n  - name: x\n    extends: [ghost]\n",
			want: `unknown base template "ghost"`,
		},
		{
			name: "missing template name",
			src:  "templates:\n  - extends: []\n",
			want: "missing name",
		},
		{
			name: "unknown field",
			src:  "events:\n  - name: x\n    reducr: sum\n",
			want: "parse manifest",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manifest.Load(strings.NewReader(tc.src), registry.New())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadDuplicateDeclaration(t *testing.T) {
	src := "events:\n  - name: x\n  - name: x\n"
	_, err := manifest.Load(strings.NewReader(src), registry.New())
	var dup *registry.DuplicateDefinitionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "event", dup.Kind)
	assert.Equal(t, "x", dup.Name)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sheetManifest), 0o644))

	reg := registry.New()
	registerHealth(t, reg)
	set, err := manifest.LoadFile(path, reg)
	require.NoError(t, err)
	assert.Len(t, set.Events, 2)

	_, err = manifest.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), reg)
	require.Error(t, err)

	// Load failures carry the file name for context.
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("events:\n  - name: x\n    reducer: median\n"), 0o644))
	_, err = manifest.LoadFile(bad, registry.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
