package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/weave"
)

// LoadConfig reads a runtime Config from a .yaml, .yml or .toml file.
// Fields absent from the file keep their weave.DefaultConfig values.
func LoadConfig(path string) (*weave.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("loader.LoadConfig", "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err))
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseConfigYAML(data)
	case ".toml":
		return ParseConfigTOML(data)
	default:
		return nil, configError("loader.LoadConfig", "", fmt.Errorf("unsupported config format %q", ext))
	}
}

// ParseConfigYAML decodes and validates a YAML runtime config. Unknown
// fields are rejected.
func ParseConfigYAML(data []byte) (*weave.Config, error) {
	cfg := weave.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, configError("loader.ParseConfigYAML", "", fmt.Errorf("failed to parse config: %w", err))
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, configError("loader.ParseConfigYAML", "", fmt.Errorf("invalid config: %w", err))
	}
	return cfg, nil
}

// ParseConfigTOML decodes and validates a TOML runtime config. Unknown
// fields are rejected.
func ParseConfigTOML(data []byte) (*weave.Config, error) {
	cfg := weave.DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, configError("loader.ParseConfigTOML", "", fmt.Errorf("failed to parse config: %w", err))
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, configError("loader.ParseConfigTOML", "", fmt.Errorf("unknown config field %q", undecoded[0].String()))
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, configError("loader.ParseConfigTOML", "", fmt.Errorf("invalid config: %w", err))
	}
	return cfg, nil
}

func configError(op, component string, err error) error {
	return &errors.WeaveError{Op: op, Kind: errors.KindConfig, Component: component, Err: err}
}

// ConfigFiles are the file names LoadOptionalConfig looks for, in order.
var ConfigFiles = []string{"weave.yaml", "weave.yml", "weave.toml"}

// LoadOptionalConfig loads the first of ConfigFiles present in dir, or
// returns weave.DefaultConfig when there is none.
func LoadOptionalConfig(dir string) (*weave.Config, error) {
	for _, name := range ConfigFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}
	return weave.DefaultConfig(), nil
}
