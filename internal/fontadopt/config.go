// Package fontadopt transplants font, texture and material
// configuration from a donor container into a target container, driven
// by an explicit id-mapping config.
package fontadopt

import (
	"encoding/json"
	"fmt"
	"os"

	"gloss/internal/services"
)

// IDList selects objects by container path id.
type IDList struct {
	PathIDs []int64 `json:"path_id"`
}

// NamedList selects objects by path id and object name; the two slices
// are parallel.
type NamedList struct {
	PathIDs []int64  `json:"path_id"`
	Names   []string `json:"name"`
}

// Namespace is one side of the mapping. Lists under the same key on the
// source and target sides are matched by position, not by value.
type Namespace struct {
	FontAssets *IDList    `json:"font_assets,omitempty"`
	Textures   *NamedList `json:"textures,omitempty"`
	Materials  *NamedList `json:"materials,omitempty"`
}

// Config maps donor ("source") objects onto target objects.
type Config struct {
	Source Namespace `json:"source"`
	Target Namespace `json:"target"`
}

// LoadConfig reads and validates a mapping config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse font config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that positionally-zipped lists line up.
func (c *Config) Validate() error {
	if err := validateZip("font_assets", idLen(c.Source.FontAssets), idLen(c.Target.FontAssets)); err != nil {
		return err
	}
	if err := validateNamed("source textures", c.Source.Textures); err != nil {
		return err
	}
	if err := validateNamed("target textures", c.Target.Textures); err != nil {
		return err
	}
	if err := validateZip("textures", namedLen(c.Source.Textures), namedLen(c.Target.Textures)); err != nil {
		return err
	}
	return validateNamed("target materials", c.Target.Materials)
}

func validateZip(section string, source, target int) error {
	if source != target {
		return services.Wrap(services.ErrConfiguration, "font", section,
			fmt.Sprintf("source lists %d entries, target lists %d; zipped lists must match", source, target), nil)
	}
	return nil
}

func validateNamed(section string, list *NamedList) error {
	if list == nil {
		return nil
	}
	if len(list.PathIDs) != len(list.Names) {
		return services.Wrap(services.ErrConfiguration, "font", section,
			fmt.Sprintf("path_id has %d entries, name has %d; parallel lists must match", len(list.PathIDs), len(list.Names)), nil)
	}
	return nil
}

func idLen(list *IDList) int {
	if list == nil {
		return 0
	}
	return len(list.PathIDs)
}

func namedLen(list *NamedList) int {
	if list == nil {
		return 0
	}
	return len(list.PathIDs)
}
