/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tags is a set of category tags. Documents may spell it as a single string
// or as a list of strings.
type Tags []string

// Intersects reports whether t and other share at least one tag.
func (t Tags) Intersects(other Tags) bool {
	for _, a := range t {
		for _, b := range other {
			if a == b {
				return true
			}
		}
	}

	return false
}

func (t *Tags) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = compactTags([]string{single})
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("index must be a string or a list of strings: %w", err)
	}

	*t = compactTags(many)

	return nil
}

func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = compactTags([]string{value.Value})
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*t = compactTags(many)
		return nil
	}

	return fmt.Errorf("line %d: index must be a string or a list of strings", value.Line)
}

// compactTags drops empty and repeated tags, keeping first-seen order.
func compactTags(in []string) Tags {
	out := make(Tags, 0, len(in))
	seen := make(map[string]bool, len(in))

	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}

	return out
}
