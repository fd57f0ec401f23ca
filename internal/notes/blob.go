package notes

import (
	"encoding/json"
	"fmt"
)

// blob is the local cache document holding both full note mappings.
type blob struct {
	Questions   map[string]string `json:"questions"`
	Reflections map[string]string `json:"reflections"`
}

// EncodeBlob serializes both mappings into the local cache document.
func EncodeBlob(questions, reflections map[string]string) (string, error) {
	b := blob{Questions: questions, Reflections: reflections}
	if b.Questions == nil {
		b.Questions = map[string]string{}
	}
	if b.Reflections == nil {
		b.Reflections = map[string]string{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encoding note blob: %w", err)
	}
	return string(data), nil
}

// DecodeBlob parses a local cache document. Missing mappings decode as
// empty; malformed input returns empty mappings and an error.
func DecodeBlob(raw string) (questions, reflections map[string]string, err error) {
	var b blob
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return map[string]string{}, map[string]string{}, fmt.Errorf("decoding note blob: %w", err)
	}
	if b.Questions == nil {
		b.Questions = map[string]string{}
	}
	if b.Reflections == nil {
		b.Reflections = map[string]string{}
	}
	return b.Questions, b.Reflections, nil
}
