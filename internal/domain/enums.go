package domain

// StrategyID identifies one of the four teaching strategies. The string
// value is also the key used by both note backends.
type StrategyID string

const (
	StrategyWarmUpPoll       StrategyID = "Warm-Up Poll"
	StrategyCuriosityTrigger StrategyID = "Curiosity Trigger"
	StrategyThinkPairShare   StrategyID = "Think-Pair-Share"
	StrategySelfReflection   StrategyID = "Self-Reflection"
)

// StrategyIDs lists every strategy in navigation order.
var StrategyIDs = []StrategyID{
	StrategyWarmUpPoll,
	StrategyCuriosityTrigger,
	StrategyThinkPairShare,
	StrategySelfReflection,
}

// ValidStrategyIDs is the canonical set of accepted strategy identifiers.
var ValidStrategyIDs = map[StrategyID]bool{
	StrategyWarmUpPoll:       true,
	StrategyCuriosityTrigger: true,
	StrategyThinkPairShare:   true,
	StrategySelfReflection:   true,
}

func (id StrategyID) String() string { return string(id) }

// Valid reports whether id is one of the four known strategies.
func (id StrategyID) Valid() bool { return ValidStrategyIDs[id] }

// NoteField selects which of the two user-authored note fields is meant.
type NoteField string

const (
	FieldQuestion   NoteField = "question"
	FieldReflection NoteField = "reflection"
)

// ValidNoteFields is the canonical set of accepted note field strings.
var ValidNoteFields = map[string]bool{
	"question":   true,
	"reflection": true,
}

// ParseNoteField converts user input into a NoteField.
func ParseNoteField(s string) (NoteField, bool) {
	if !ValidNoteFields[s] {
		return "", false
	}
	return NoteField(s), true
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
