// Package taxonomy holds the versioned keyword, sentiment and jurisdiction
// data asset. It is loaded once at startup and treated as read-only.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var embedded []byte

// Sentiment holds the headline classification lexicon.
type Sentiment struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// Jurisdictions maps normalized region names to risk tiers.
type Jurisdictions struct {
	Low    []string `yaml:"low"`
	Medium []string `yaml:"medium"`
	High   []string `yaml:"high"`
}

// Taxonomy is the full data asset.
type Taxonomy struct {
	Version       int           `yaml:"version"`
	Keywords      []string      `yaml:"keywords"`
	Sentiment     Sentiment     `yaml:"sentiment"`
	Controversy   []string      `yaml:"controversy"`
	Jurisdictions Jurisdictions `yaml:"jurisdictions"`
}

// Load reads a taxonomy file from path, falling back to the embedded asset
// when path is empty.
func Load(path string) (*Taxonomy, error) {
	data := embedded
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read taxonomy: %w", err)
		}
		data = b
	}

	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(t.Keywords) == 0 {
		return nil, fmt.Errorf("taxonomy has no keywords")
	}
	return &t, nil
}
