package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/domain"
)

// resolveStrategy maps a command argument to a strategy id, listing the
// valid ids when nothing or several match.
func resolveStrategy(arg string) (domain.StrategyID, error) {
	id, err := catalog.Resolve(arg)
	if err == nil {
		return id, nil
	}
	ids := make([]string, 0, len(catalog.IDs()))
	for _, id := range catalog.IDs() {
		ids = append(ids, string(id))
	}
	return "", fmt.Errorf("%w\nchoose one of: %s", err, strings.Join(ids, ", "))
}

// parseField validates a note field argument.
func parseField(arg string) (domain.NoteField, error) {
	f, ok := domain.ParseNoteField(strings.ToLower(arg))
	if !ok {
		return "", fmt.Errorf("unknown note field %q (want question or reflection)", arg)
	}
	return f, nil
}
