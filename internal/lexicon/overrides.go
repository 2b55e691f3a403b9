package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overrides extends the built-in vocabulary from a YAML file so deployments
// can add company-specific skills or titles without a rebuild. Entries are
// additive only; the built-in data is never removed.
type Overrides struct {
	ExtraSkills    []string `yaml:"extraSkills"`
	ExtraTitles    []string `yaml:"extraTitles"`
	ExtraUSCities  []string `yaml:"extraUsCities"`
	ExtraStopWords []string `yaml:"extraStopWords"`
}

// IsEmpty reports whether the overrides add nothing.
func (o Overrides) IsEmpty() bool {
	return len(o.ExtraSkills) == 0 && len(o.ExtraTitles) == 0 &&
		len(o.ExtraUSCities) == 0 && len(o.ExtraStopWords) == 0
}

// LoadOverrides reads a YAML overrides file. A missing path returns empty
// overrides without error so the config default can point at an optional
// file.
func LoadOverrides(path string) (Overrides, error) {
	var o Overrides
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return o, nil
		}
		return o, fmt.Errorf("read lexicon overrides %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("parse lexicon overrides %s: %w", path, err)
	}
	return o, nil
}

// Apply merges the overrides into a copy of the data. Everything is
// lower-cased to the canonical lexicon form.
func (o Overrides) Apply(d Data) Data {
	d.Skills = appendUnique(d.Skills, o.ExtraSkills)
	d.IrregularTitles = appendUnique(d.IrregularTitles, o.ExtraTitles)
	d.USCities = appendUnique(d.USCities, o.ExtraUSCities)
	d.StopWords = appendUnique(d.StopWords, o.ExtraStopWords)
	return d
}

func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]struct{}, len(base))
	for _, b := range base {
		seen[strings.ToLower(b)] = struct{}{}
	}
	out := append([]string{}, base...)
	for _, e := range extra {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
