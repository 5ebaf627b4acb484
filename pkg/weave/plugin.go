package weave

import (
	"fmt"
	"reflect"
	"time"

	"golang.org/x/mod/semver"

	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/options"
)

// Plugin is a unit of functionality installed into a Runtime.
type Plugin interface {
	Install(rt *Runtime, args ...any)
}

// PluginFunc adapts a function to the Plugin interface. Functions are
// identified by code address, so two closures from the same literal count
// as one plugin; use a pointer type when that matters.
type PluginFunc func(rt *Runtime, args ...any)

// Install calls f.
func (f PluginFunc) Install(rt *Runtime, args ...any) {
	f(rt, args...)
}

// Versioned is implemented by plugins that declare a semantic version.
type Versioned interface {
	Version() string
}

// InstalledPlugin is an entry of the installed-plugin registry.
type InstalledPlugin struct {
	Plugin      any
	Version     string
	InstalledAt time.Time
}

// Use installs p with args. Installing a plugin that is already installed
// does nothing. See UseAny for the installation rules.
func (rt *Runtime) Use(p Plugin, args ...any) *Runtime {
	return rt.UseAny(p, args...)
}

// UseAny installs a plugin whose shape is only known at run time. A value
// implementing Plugin has its Install method called, a
// func(*Runtime, ...any) is called directly, and anything else is recorded
// without side effects. In every case p is recorded afterwards, so a
// second call with the same plugin is a no-op, including a call made from
// inside p's own installation. A panicking plugin is reported and still
// recorded.
func (rt *Runtime) UseAny(p any, args ...any) *Runtime {
	if p == nil {
		return rt
	}
	rt.pluginMu.Lock()
	if rt.isInstalledLocked(p) || indexOf(rt.pending, p) >= 0 {
		rt.pluginMu.Unlock()
		return rt
	}
	rt.pending = append(rt.pending, p)
	rt.pluginMu.Unlock()

	entry := InstalledPlugin{Plugin: p}
	if v, ok := p.(Versioned); ok {
		entry.Version = rt.checkVersion(v.Version())
	}
	rt.install(p, args)
	entry.InstalledAt = time.Now()

	rt.pluginMu.Lock()
	rt.installed = append(rt.installed, entry)
	if i := indexOf(rt.pending, p); i >= 0 {
		rt.pending = append(rt.pending[:i], rt.pending[i+1:]...)
	}
	rt.pluginMu.Unlock()

	rt.metrics.RecordPluginInstalled()
	rt.logger.Zerolog().Info().
		Str("plugin", pluginName(p)).
		Str("version", entry.Version).
		Msg("plugin installed")
	return rt
}

func indexOf(list []any, p any) int {
	for i, e := range list {
		if samePlugin(e, p) {
			return i
		}
	}
	return -1
}

// samePlugin compares plugins by identity. Values that cannot be compared
// by identity, such as structs holding slices, compare by deep equality so
// installing the same value twice is still a no-op.
func samePlugin(a, b any) bool {
	if options.Same(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	va := reflect.ValueOf(a)
	if va.Comparable() {
		return false
	}
	switch va.Kind() {
	case reflect.Struct, reflect.Array, reflect.Interface:
		return reflect.DeepEqual(a, b)
	}
	return false
}

func (rt *Runtime) install(p any, args []any) {
	defer errors.Recover("weave.Use")
	switch v := p.(type) {
	case Plugin:
		v.Install(rt, args...)
	case func(*Runtime, ...any):
		v(rt, args...)
	}
}

// checkVersion returns the canonical form of version, warning when it is
// not a valid semantic version.
func (rt *Runtime) checkVersion(version string) string {
	if version == "" {
		return ""
	}
	v := version
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		rt.warn("weave.Use", "", "plugin version "+version+" is not a valid semantic version")
		return version
	}
	return semver.Canonical(v)
}

// IsInstalled reports whether p is in the installed-plugin registry.
func (rt *Runtime) IsInstalled(p any) bool {
	rt.pluginMu.Lock()
	defer rt.pluginMu.Unlock()
	return rt.isInstalledLocked(p)
}

func (rt *Runtime) isInstalledLocked(p any) bool {
	for _, entry := range rt.installed {
		if samePlugin(entry.Plugin, p) {
			return true
		}
	}
	return false
}

// Installed returns the installed plugins in installation order.
func (rt *Runtime) Installed() []InstalledPlugin {
	rt.pluginMu.Lock()
	defer rt.pluginMu.Unlock()
	out := make([]InstalledPlugin, len(rt.installed))
	copy(out, rt.installed)
	return out
}

func pluginName(p any) string {
	if named, ok := p.(interface{ Name() string }); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", p)
}
