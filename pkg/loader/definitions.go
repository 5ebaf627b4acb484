package loader

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/weave/pkg/core"
	"github.com/go-drift/weave/pkg/options"
)

// Document is a file of component definitions.
type Document struct {
	// Mixin is applied to the root configuration before any component is
	// built.
	Mixin *Fragment `yaml:"mixin" toml:"mixin"`
	// Components are built in dependency order, not file order.
	Components []Definition `yaml:"components" toml:"components" validate:"dive"`
}

// Fragment holds the configuration fields a file can express.
type Fragment struct {
	Props map[string]PropDefinition `yaml:"props" toml:"props" validate:"dive"`
	// Hooks maps a lifecycle hook to the names of registered hooks, run in
	// list order.
	Hooks   map[string][]string `yaml:"hooks" toml:"hooks" validate:"dive,keys,lifecycle_hook,endkeys,min=1,dive,required"`
	Data    map[string]any      `yaml:"data" toml:"data"`
	Inject  []string            `yaml:"inject" toml:"inject" validate:"dive,required"`
	Provide map[string]any      `yaml:"provide" toml:"provide"`
}

// Definition describes one component.
type Definition struct {
	Name string `yaml:"name" toml:"name" validate:"required,component_name"`
	// Extends names the parent component. Empty extends the root.
	Extends string `yaml:"extends" toml:"extends" validate:"omitempty,component_name"`
	// Components lists locally registered components by name.
	Components []string `yaml:"components" toml:"components" validate:"dive,component_name"`
	// Global registers the component with the runtime.
	Global bool `yaml:"global" toml:"global"`

	Fragment `yaml:",inline"`
}

// PropDefinition declares a property.
type PropDefinition struct {
	Default  any  `yaml:"default" toml:"default"`
	Required bool `yaml:"required" toml:"required"`
}

// LoadDefinitions reads a definition Document from a .yaml, .yml or .toml
// file.
func LoadDefinitions(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("loader.LoadDefinitions", "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err))
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseDefinitions(data)
	case ".toml":
		return ParseDefinitionsTOML(data)
	default:
		return nil, configError("loader.LoadDefinitions", "", fmt.Errorf("unsupported definition format %q", ext))
	}
}

// ParseDefinitions decodes and validates a YAML definition Document.
func ParseDefinitions(data []byte) (*Document, error) {
	doc := &Document{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && err != io.EOF {
		return nil, configError("loader.ParseDefinitions", "", fmt.Errorf("failed to parse definitions: %w", err))
	}
	if err := validate.Struct(doc); err != nil {
		return nil, configError("loader.ParseDefinitions", "", fmt.Errorf("invalid definitions: %w", err))
	}
	return doc, nil
}

// ParseDefinitionsTOML decodes and validates a TOML definition Document.
func ParseDefinitionsTOML(data []byte) (*Document, error) {
	doc := &Document{}
	md, err := toml.Decode(string(data), doc)
	if err != nil {
		return nil, configError("loader.ParseDefinitionsTOML", "", fmt.Errorf("failed to parse definitions: %w", err))
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, configError("loader.ParseDefinitionsTOML", "", fmt.Errorf("unknown definition field %q", undecoded[0].String()))
	}
	if err := validate.Struct(doc); err != nil {
		return nil, configError("loader.ParseDefinitionsTOML", "", fmt.Errorf("invalid definitions: %w", err))
	}
	return doc, nil
}

// HookNames returns the sorted names of every hook the document refers to.
func (d *Document) HookNames() []string {
	seen := make(map[string]struct{})
	collect := func(f *Fragment) {
		if f == nil {
			return
		}
		for _, names := range f.Hooks {
			for _, name := range names {
				seen[name] = struct{}{}
			}
		}
	}
	collect(d.Mixin)
	for i := range d.Components {
		collect(&d.Components[i].Fragment)
	}
	return slices.Sorted(maps.Keys(seen))
}

// Options converts the fragment to component options. Hook names are
// resolved against hooks.
func (f *Fragment) Options(hooks core.HookSet) (*options.Options, error) {
	opts := options.New(nil)
	if f == nil {
		return opts, nil
	}
	if len(f.Props) > 0 {
		props := options.New(nil)
		for key, p := range f.Props {
			props.Set(key, core.Prop{Default: p.Default, Required: p.Required})
		}
		opts.Set("props", props)
	}
	for _, hook := range slices.Sorted(maps.Keys(f.Hooks)) {
		chain := make(options.Sequence, 0, len(f.Hooks[hook]))
		for _, name := range f.Hooks[hook] {
			h, ok := hooks[name]
			if !ok {
				return nil, fmt.Errorf("unknown hook %q for %s", name, hook)
			}
			chain = append(chain, h)
		}
		opts.Set(hook, chain)
	}
	if f.Data != nil {
		data := f.Data
		opts.Set("data", func(*core.Instance) map[string]any {
			return maps.Clone(data)
		})
	}
	if len(f.Inject) > 0 {
		opts.Set("inject", slices.Clone(f.Inject))
	}
	if f.Provide != nil {
		provide := f.Provide
		opts.Set("provide", func(*core.Instance) map[string]any {
			return maps.Clone(provide)
		})
	}
	return opts, nil
}
