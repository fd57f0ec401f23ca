// Package catalog exposes the compiled-in table of teaching strategies.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"

	"github.com/alexanderramin/polaris/internal/domain"
)

var (
	ErrUnknownStrategy   = errors.New("unknown strategy")
	ErrAmbiguousStrategy = errors.New("ambiguous strategy")
)

// shownReflectionPrompts is how many reflection prompts the presentation shows.
const shownReflectionPrompts = 3

// All returns copies of every strategy in catalog order.
func All() []domain.Strategy {
	return lo.Map(table, func(s domain.Strategy, _ int) domain.Strategy {
		return clone(s)
	})
}

// IDs returns the strategy identifiers in catalog order.
func IDs() []domain.StrategyID {
	return lo.Map(table, func(s domain.Strategy, _ int) domain.StrategyID {
		return s.ID
	})
}

// Lookup returns the strategy with the given id.
func Lookup(id domain.StrategyID) (domain.Strategy, error) {
	s, ok := lo.Find(table, func(s domain.Strategy) bool { return s.ID == id })
	if !ok {
		return domain.Strategy{}, fmt.Errorf("lookup %q: %w", id, ErrUnknownStrategy)
	}
	return clone(s), nil
}

// MustLookup is Lookup for identifiers known at compile time.
func MustLookup(id domain.StrategyID) domain.Strategy {
	s, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return s
}

// Find returns strategies whose id, purpose or tools fuzzily contain term.
// Matches on the id come first.
func Find(term string) []domain.Strategy {
	term = strings.TrimSpace(term)
	if term == "" {
		return All()
	}
	byID := lo.Filter(table, func(s domain.Strategy, _ int) bool {
		return fuzzy.MatchFold(term, string(s.ID))
	})
	byText := lo.Filter(table, func(s domain.Strategy, _ int) bool {
		if lo.ContainsBy(byID, func(m domain.Strategy) bool { return m.ID == s.ID }) {
			return false
		}
		return len(term) > 2 && (fuzzy.MatchFold(term, s.Purpose) || fuzzy.MatchFold(term, s.Tools))
	})
	return lo.Map(append(byID, byText...), func(s domain.Strategy, _ int) domain.Strategy {
		return clone(s)
	})
}

// Resolve maps user input to a strategy id. An exact, case-insensitive id
// wins; otherwise the input must fuzzily match exactly one id.
func Resolve(input string) (domain.StrategyID, error) {
	input = strings.TrimSpace(input)
	for _, id := range domain.StrategyIDs {
		if strings.EqualFold(input, string(id)) {
			return id, nil
		}
	}
	if input == "" {
		return "", fmt.Errorf("resolve %q: %w", input, ErrUnknownStrategy)
	}
	matches := lo.Filter(domain.StrategyIDs, func(id domain.StrategyID, _ int) bool {
		return fuzzy.MatchFold(input, string(id))
	})
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("resolve %q: %w", input, ErrUnknownStrategy)
	case 1:
		return matches[0], nil
	default:
		names := lo.Map(matches, func(id domain.StrategyID, _ int) string { return string(id) })
		return "", fmt.Errorf("resolve %q (%s): %w", input, strings.Join(names, ", "), ErrAmbiguousStrategy)
	}
}

// SpeakerLines splits a speaker prompt into display lines on ". ", ending
// each line with a period.
func SpeakerLines(prompt string) []string {
	if prompt == "" {
		return nil
	}
	parts := strings.Split(prompt, ". ")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if !strings.HasSuffix(p, ".") {
			p += "."
		}
		lines = append(lines, p)
	}
	return lines
}

// ReflectionPrompts returns the prompts shown for a strategy.
func ReflectionPrompts(s domain.Strategy) []string {
	if len(s.ReflectionPrompts) <= shownReflectionPrompts {
		return s.ReflectionPrompts
	}
	return s.ReflectionPrompts[:shownReflectionPrompts]
}

func clone(s domain.Strategy) domain.Strategy {
	s.Flow = append([]domain.Step(nil), s.Flow...)
	s.Tips = append([]string(nil), s.Tips...)
	s.Mistakes = append([]string(nil), s.Mistakes...)
	s.ReflectionPrompts = append([]string(nil), s.ReflectionPrompts...)
	s.DisciplineExamples = append([]domain.DisciplineExample(nil), s.DisciplineExamples...)
	return s
}
