package mailchimp

import (
	"bytes"
	"encoding/json"
)

// The API serialises empty associative arrays as [] rather than {}. The types
// below accept both so that an empty section does not fail a whole response.

func isEmptyJSONArray(b []byte) bool {
	b = bytes.TrimSpace(b)
	return bytes.Equal(b, []byte("[]")) || bytes.Equal(b, []byte("null"))
}

// StringMap is a string keyed map of strings.
type StringMap map[string]string

func (m *StringMap) UnmarshalJSON(b []byte) error {
	if isEmptyJSONArray(b) {
		*m = StringMap{}
		return nil
	}
	var plain map[string]string
	if err := json.Unmarshal(b, &plain); err != nil {
		return err
	}
	*m = plain
	return nil
}

// AnyMap is a string keyed map of arbitrary JSON values.
type AnyMap map[string]any

func (m *AnyMap) UnmarshalJSON(b []byte) error {
	if isEmptyJSONArray(b) {
		*m = AnyMap{}
		return nil
	}
	var plain map[string]any
	if err := json.Unmarshal(b, &plain); err != nil {
		return err
	}
	*m = plain
	return nil
}
