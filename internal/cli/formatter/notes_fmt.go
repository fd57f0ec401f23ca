package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/polaris/internal/domain"
)

// Acknowledgement and button labels.
const (
	AckSyncedToCloud   = "Synced to Cloud"
	AckSavedToBrowser  = "Saved to Browser"
	AckReflectionSaved = "Reflection cached."
)

// QuestionLabel returns the editor label for a strategy's drafted question.
func QuestionLabel(id domain.StrategyID) string {
	if id == domain.StrategySelfReflection {
		return "Draft your Reflection Question:"
	}
	return fmt.Sprintf("Draft your %s Question:", id)
}

// SaveLabel returns the save button label for a field.
func SaveLabel(field domain.NoteField, remote bool) string {
	switch {
	case !remote:
		return "Save Locally"
	case field == domain.FieldReflection:
		return "Sync Reflection"
	default:
		return "Save to Cloud"
	}
}

// AckLabel returns the message shown while a save is acknowledged.
func AckLabel(field domain.NoteField, remote bool) string {
	if field == domain.FieldReflection {
		return AckReflectionSaved
	}
	if remote {
		return AckSyncedToCloud
	}
	return AckSavedToBrowser
}

// FormatAck renders an acknowledgement badge.
func FormatAck(field domain.NoteField, remote bool) string {
	return StyleGreen.Render("✔ " + AckLabel(field, remote))
}

// FormatNotes renders the instructor notes of one strategy.
func FormatNotes(id domain.StrategyID, question, reflection string) string {
	var b strings.Builder
	b.WriteString(Header("Instructor Notes") + "\n")
	b.WriteString("  " + Bold(QuestionLabel(id)) + "\n")
	b.WriteString(noteBody(question))
	b.WriteString("  " + Dim(CharCount(len([]rune(question)), domain.MaxQuestionLen)) + "\n\n")
	b.WriteString("  " + Bold("Reflection:") + "\n")
	b.WriteString(noteBody(reflection))
	return b.String()
}

// FormatNotesTable renders every strategy's notes as a table.
func FormatNotesTable(ids []domain.StrategyID, notes domain.Notes, remote bool) string {
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{
			StyleGreen.Render(string(id)),
			notePreview(notes.Questions[string(id)]),
			notePreview(notes.Reflections[string(id)]),
		})
	}
	return "  " + StorageMode(remote) + "\n\n" +
		RenderTable([]string{"STRATEGY", "QUESTION", "REFLECTION"}, rows)
}

// FormatSaveResult renders the outcome of a save.
func FormatSaveResult(field domain.NoteField, remote bool, remoteErr error) string {
	out := FormatAck(field, remote)
	if remoteErr != nil {
		out += "\n" + StyleYellow.Render("  cloud sync failed: "+remoteErr.Error()) + "\n" +
			Dim("  the note is kept locally")
	}
	return out + "\n"
}

func noteBody(text string) string {
	if strings.TrimSpace(text) == "" {
		return "    " + Dim("(empty)") + "\n"
	}
	return indentWrapped(text, 4, textWrapWidth) + "\n"
}

func notePreview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Dim("—")
	}
	return Truncate(text, 40)
}
