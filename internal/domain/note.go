package domain

import "unicode/utf8"

// MaxQuestionLen caps a drafted core question. The cap is applied by the
// producing caller (editor, CLI, HTTP handler), never by the note store.
const MaxQuestionLen = 250

// ClampQuestion truncates s to MaxQuestionLen characters.
func ClampQuestion(s string) string {
	if utf8.RuneCountInString(s) <= MaxQuestionLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxQuestionLen])
}

// Notes is a point-in-time copy of the merged note mappings.
type Notes struct {
	Questions   map[string]string `json:"questions"`
	Reflections map[string]string `json:"reflections"`
}

// Field returns the mapping for the given field.
func (n Notes) Field(f NoteField) map[string]string {
	if f == FieldReflection {
		return n.Reflections
	}
	return n.Questions
}

// Count returns how many non-empty notes exist across both fields.
func (n Notes) Count() int {
	count := 0
	for _, v := range n.Questions {
		if v != "" {
			count++
		}
	}
	for _, v := range n.Reflections {
		if v != "" {
			count++
		}
	}
	return count
}
