package source

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is one list item.
type Entry struct {
	Title    string `yaml:"title"              json:"title"`
	Detail   string `yaml:"detail,omitempty"   json:"detail,omitempty"`
	Header   bool   `yaml:"header,omitempty"   json:"header,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// Selectable reports whether e takes part in keyboard navigation.
// Headers and disabled entries are skipped.
func Selectable(e Entry) bool {
	return !e.Header && !e.Disabled
}

// entryFields avoids recursion in the custom unmarshalers.
type entryFields Entry

// UnmarshalYAML accepts either a mapping or a bare string title.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*e = Entry{Title: node.Value}
		return nil
	}

	var fields entryFields
	if err := node.Decode(&fields); err != nil {
		return fmt.Errorf("decoding entry at line %d: %w", node.Line, err)
	}
	*e = Entry(fields)
	return nil
}

// UnmarshalJSON accepts either an object or a bare string title.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*e = Entry{Title: title}
		return nil
	}

	var fields entryFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*e = Entry(fields)
	return nil
}
