package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/weave/pkg/core"
	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/options"
	"github.com/go-drift/weave/pkg/telemetry"
	"github.com/go-drift/weave/pkg/weave"
)

const cardDefinitions = `
mixin:
  hooks:
    created: [audit]
components:
  - name: fancy-card
    extends: card
    hooks:
      created: [track]
  - name: card
    global: true
    components: [icon]
    props:
      title:
        required: true
      size:
        default: 2
    data:
      open: false
    inject: [theme]
  - name: icon
`

func newRuntime(t *testing.T) *weave.Runtime {
	t.Helper()
	cfg := weave.DefaultConfig()
	cfg.Silent = true
	rt, err := weave.New(weave.WithConfig(cfg), weave.WithLogger(telemetry.Nop()))
	require.NoError(t, err)
	return rt
}

func testHooks(trace *[]string) core.HookSet {
	hooks := core.HookSet{}
	hooks.Add("audit", func(vm *core.Instance) { *trace = append(*trace, "audit") })
	hooks.Add("track", func(vm *core.Instance) { *trace = append(*trace, "track") })
	return hooks
}

func TestParseDefinitions(t *testing.T) {
	doc, err := ParseDefinitions([]byte(cardDefinitions))
	require.NoError(t, err)

	require.Len(t, doc.Components, 3)
	require.NotNil(t, doc.Mixin)
	assert.Equal(t, []string{"audit"}, doc.Mixin.Hooks["created"])

	card := doc.Components[1]
	assert.Equal(t, "card", card.Name)
	assert.True(t, card.Global)
	assert.True(t, card.Props["title"].Required)
	assert.Equal(t, 2, card.Props["size"].Default)
	assert.Equal(t, []string{"theme"}, card.Inject)
}

func TestParseDefinitionsTOML(t *testing.T) {
	doc, err := ParseDefinitionsTOML([]byte(`
[[components]]
name = "card"

[components.hooks]
mounted = ["track"]

[[components]]
name = "fancy-card"
extends = "card"
`))
	require.NoError(t, err)
	require.Len(t, doc.Components, 2)
	assert.Equal(t, []string{"track"}, doc.Components[0].Hooks["mounted"])
	assert.Equal(t, "card", doc.Components[1].Extends)
}

func TestParseDefinitionsValidation(t *testing.T) {
	tests := map[string]string{
		"missing name":    "components:\n  - extends: card\n",
		"bad name":        "components:\n  - name: 9lives\n",
		"reserved name":   "components:\n  - name: slot\n",
		"unknown hook":    "components:\n  - name: card\n    hooks:\n      rendered: [track]\n",
		"empty hook list": "components:\n  - name: card\n    hooks:\n      created: []\n",
		"unknown field":   "components:\n  - name: card\n    template: <div/>\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDefinitions([]byte(src))
			require.Error(t, err)
			var werr *errors.WeaveError
			require.ErrorAs(t, err, &werr)
			assert.Equal(t, errors.KindConfig, werr.Kind)
		})
	}
}

func TestBuildHierarchy(t *testing.T) {
	var trace []string
	rt := newRuntime(t)
	doc, err := ParseDefinitions([]byte(cardDefinitions))
	require.NoError(t, err)

	nodes, err := Build(rt, doc, testHooks(&trace))
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	card, fancy := nodes["card"], nodes["fancy-card"]
	assert.Same(t, card, fancy.Super())
	assert.True(t, card.Super().IsRoot())

	global, ok := rt.Lookup("components", "card")
	require.True(t, ok)
	assert.Same(t, card, global)
	_, ok = rt.Lookup("components", "fancy-card")
	assert.False(t, ok, "only global definitions are registered")

	local, ok := card.Asset("components", "icon")
	require.True(t, ok)
	assert.Same(t, nodes["icon"], local)

	app := rt.New(options.New(map[string]any{
		"provide": map[string]any{"theme": "dark"},
	}))
	trace = nil
	vm := fancy.Instantiate(nil, &core.InternalRequest{
		Parent:      app,
		ParentVnode: &core.Placeholder{PropsData: map[string]any{"title": "hi"}},
	})
	assert.Equal(t, []string{"audit", "track"}, trace)
	assert.Equal(t, map[string]any{"title": "hi", "size": 2}, vm.Props)
	assert.Equal(t, map[string]any{"open": false}, vm.Data)
	assert.Equal(t, "dark", vm.Injected["theme"])
}

func TestBuildDataIsPerInstance(t *testing.T) {
	rt := newRuntime(t)
	doc, err := ParseDefinitions([]byte("components:\n  - name: counter\n    data:\n      n: 1\n"))
	require.NoError(t, err)
	nodes, err := Build(rt, doc, nil)
	require.NoError(t, err)

	a := rt.Instantiate(nodes["counter"], nil, nil)
	b := rt.Instantiate(nodes["counter"], nil, nil)
	a.Data["n"] = 5
	assert.Equal(t, 1, b.Data["n"])
}

func TestBuildExtendsRegisteredComponent(t *testing.T) {
	rt := newRuntime(t)
	base := rt.Component("base-layout", map[string]any{})

	doc, err := ParseDefinitions([]byte("components:\n  - name: page\n    extends: base-layout\n"))
	require.NoError(t, err)
	nodes, err := Build(rt, doc, nil)
	require.NoError(t, err)
	assert.Same(t, base, nodes["page"].Super())
}

func TestBuildErrors(t *testing.T) {
	tests := map[string]struct {
		src  string
		want string
	}{
		"cycle": {
			src:  "components:\n  - name: a\n    extends: b\n  - name: b\n    extends: a\n",
			want: "cyclic dependency",
		},
		"component cycle": {
			src:  "components:\n  - name: a\n    components: [b]\n  - name: b\n    extends: a\n",
			want: "cyclic dependency",
		},
		"undefined parent": {
			src:  "components:\n  - name: a\n    extends: ghost\n",
			want: `undefined component "ghost"`,
		},
		"duplicate": {
			src:  "components:\n  - name: a\n  - name: a\n",
			want: "component defined twice",
		},
		"unknown hook": {
			src:  "components:\n  - name: a\n    hooks:\n      created: [missing]\n",
			want: `unknown hook "missing"`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rt := newRuntime(t)
			src := "mixin:\n  data:\n    x: 1\n" + tt.src + "  - name: ok\n    global: true\n"
			doc, err := ParseDefinitions([]byte(src))
			require.NoError(t, err)
			root := rt.Root().Resolve()

			_, err = Build(rt, doc, core.HookSet{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			assert.Same(t, root, rt.Root().Resolve(), "root options unchanged")
			for _, name := range []string{"a", "ok"} {
				_, ok := rt.Lookup("components", name)
				assert.False(t, ok, "%s registered", name)
			}
		})
	}
}

func TestBuildRejectedDocumentAppliesNothing(t *testing.T) {
	rt := newRuntime(t)
	var trace []string
	doc, err := ParseDefinitions([]byte(`
mixin:
  hooks:
    created: [audit]
components:
  - name: first
    global: true
  - name: second
    hooks:
      created: [missing]
`))
	require.NoError(t, err)
	root := rt.Root().Resolve()

	nodes, err := Build(rt, doc, testHooks(&trace))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown hook "missing" for created`)
	assert.Nil(t, nodes)

	var werr *errors.WeaveError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, errors.KindConfig, werr.Kind)

	_, ok := rt.Lookup("components", "first")
	assert.False(t, ok, "global component registered by a rejected document")
	assert.Same(t, root, rt.Root().Resolve())
	assert.False(t, rt.Root().Options().Has("created"), "the mixin is not applied")

	rt.New(nil)
	assert.Empty(t, trace)
}

func TestBuildCycleBuildsNothing(t *testing.T) {
	rt := newRuntime(t)
	doc, err := ParseDefinitions([]byte(`
mixin:
  data:
    x: 1
components:
  - name: ok
    global: true
  - name: a
    extends: b
  - name: b
    extends: a
`))
	require.NoError(t, err)

	_, err = Build(rt, doc, nil)
	require.Error(t, err)
	_, ok := rt.Lookup("components", "ok")
	assert.False(t, ok)
	assert.False(t, rt.Root().Options().Has("data"), "the mixin is not applied")
}

func TestBuildNilDocument(t *testing.T) {
	nodes, err := Build(newRuntime(t), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestHookNames(t *testing.T) {
	doc, err := ParseDefinitions([]byte(cardDefinitions))
	require.NoError(t, err)
	assert.Equal(t, []string{"audit", "track"}, doc.HookNames())
}
