package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/querylab/typesig/registry"
	"github.com/querylab/typesig/types"
)

// CustomType declares a host type to register before parsing. The parser
// treats it as an opaque leaf identified by its name.
type CustomType struct {
	Name string `yaml:"name"`
}

type Config struct {
	Types []CustomType `yaml:"types"`
	// Aliases map additional names onto already-registered types, e.g.
	// text: varchar.
	Aliases map[string]string `yaml:"aliases"`
}

func Read(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	var config Config

	err = yaml.NewDecoder(f).Decode(&config)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}

	return &config, nil
}

// Apply installs the declared custom types and aliases into the registry.
// Alias targets must resolve at apply time, so an alias may point at a
// builtin or at a custom type declared in the same file.
func (config *Config) Apply(reg *registry.Registry) error {
	for i := range config.Types {
		name := config.Types[i].Name
		if name == "" {
			return errors.Errorf("custom type with index %d has an empty name", i)
		}
		reg.Register(name, registry.Static(types.Custom(registry.Canonicalize(name))))
	}

	for alias, target := range config.Aliases {
		resolved, ok := reg.Resolve(target)
		if !ok {
			return errors.Errorf("alias %s refers to unregistered type %s", alias, target)
		}
		reg.Register(alias, registry.Static(resolved))
	}

	return nil
}
