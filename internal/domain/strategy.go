package domain

// Step is one phase of a strategy's facilitation flow.
type Step struct {
	Phase  string `json:"phase"`
	Time   string `json:"time,omitempty"`
	Action string `json:"action"`
	Prompt string `json:"prompt,omitempty"` // speaker notes, split into lines on ". "
	Goal   string `json:"goal,omitempty"`
	Tip    string `json:"aiTip,omitempty"`
}

type DisciplineExample struct {
	Discipline   string `json:"discipline"`
	Example      string `json:"example"`
	PracticeLink string `json:"practiceLink,omitempty"`
}

// Strategy is an immutable catalog record. Values are built once from the
// compiled-in table and never mutated.
type Strategy struct {
	ID                 StrategyID          `json:"id"`
	Purpose            string              `json:"purpose"`
	TotalTime          string              `json:"totalTime"`
	Flow               []Step              `json:"flow"`
	Tips               []string            `json:"tips"`
	Mistakes           []string            `json:"mistakes,omitempty"`
	Tools              string              `json:"tools,omitempty"`
	ToolLink           string              `json:"toolLink,omitempty"`
	ExtraContent       string              `json:"extraContent,omitempty"`
	DemoImage          string              `json:"demoImage,omitempty"`
	DemoCaption        string              `json:"demoCaption,omitempty"`
	ReflectionPrompts  []string            `json:"reflectionPrompts,omitempty"`
	DisciplineExamples []DisciplineExample `json:"disciplineExamples,omitempty"`
	InstructionalNote  string              `json:"instructionalNote,omitempty"`
}

// DefaultToolsLabel is shown when a strategy names no recommended tool.
const DefaultToolsLabel = "Classroom Presentation"

// ToolsLabel returns the recommended tool(s) for display.
func (s *Strategy) ToolsLabel() string {
	return CoalesceStr(s.Tools, DefaultToolsLabel)
}

// OverviewText returns the instructional note, falling back to the purpose.
func (s *Strategy) OverviewText() string {
	return CoalesceStr(s.InstructionalNote, s.Purpose)
}
