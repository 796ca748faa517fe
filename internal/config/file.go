package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/bundlekit/internal/naming"
)

// LoadFile reads a YAML config file into cfg. Keys absent from the file
// leave the corresponding cfg fields untouched, so call it after
// [DefaultConfig] and before applying flags.
//
// The naming key accepts either form:
//
//	naming: "static/js/[name].[hash].[ext]"
//
//	naming:
//	  entry: "[dir]/[name].[hash].[ext]"
//	  asset: "media/[name].[ext]"
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	var extra struct {
		Naming *namingNode `yaml:"naming"`
	}
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if extra.Naming != nil {
		cfg.Naming = extra.Naming.spec
	}
	cfg.ConfigFile = path
	return nil
}

// namingNode decodes the string-or-mapping naming union.
type namingNode struct {
	spec naming.Spec
}

func (n *namingNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		n.spec = naming.StringSpec(s)
		return nil
	case yaml.MappingNode:
		var m struct {
			Chunk string `yaml:"chunk"`
			Entry string `yaml:"entry"`
			Asset string `yaml:"asset"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		n.spec = naming.Spec{Chunk: m.Chunk, Entry: m.Entry, Asset: m.Asset}
		return nil
	default:
		return errors.New("naming must be a template string or a {chunk, entry, asset} mapping")
	}
}
