package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// flexID decodes a module or question ID written either as a JSON string or
// a JSON number, so 1 and "1" name the same module.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// DecodeIDs parses a JSON array of module IDs, accepting strings and numbers.
func DecodeIDs(data []byte) ([]string, error) {
	var raw []flexID
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw))
	for _, r := range raw {
		if r != "" {
			ids = append(ids, string(r))
		}
	}
	return ids, nil
}
