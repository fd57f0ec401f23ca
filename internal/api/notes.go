package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/alexanderramin/polaris/internal/notes"
)

type notesResponse struct {
	Questions   map[string]string `json:"questions"`
	Reflections map[string]string `json:"reflections"`
	Remote      bool              `json:"remote"`
}

type noteBody struct {
	Value string `json:"value"`
}

type saveResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	Remote       bool   `json:"remote"`
	RemoteError  string `json:"remote_error,omitempty"`
}

type ackResponse struct {
	Question   bool `json:"question"`
	Reflection bool `json:"reflection"`
}

// GetNotes returns both note mappings and whether cloud sync is active.
func (h *Handler) GetNotes(w http.ResponseWriter, r *http.Request) {
	snap, err := h.notes.Snapshot()
	if err != nil {
		h.noteError(w, err)
		return
	}
	JSON(w, http.StatusOK, notesResponse{
		Questions:   snap.Questions,
		Reflections: snap.Reflections,
		Remote:      h.notes.RemoteEnabled(),
	})
}

// PutNote replaces one note field. Questions are clamped to
// domain.MaxQuestionLen characters.
func (h *Handler) PutNote(w http.ResponseWriter, r *http.Request) {
	id, field, ok := h.noteTarget(w, r)
	if !ok {
		return
	}
	var body noteBody
	if err := decode(r, &body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	value := body.Value
	if field == domain.FieldQuestion {
		value = domain.ClampQuestion(value)
	}
	if err := h.notes.Set(r.Context(), id, field, value); err != nil {
		h.noteError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"value": value})
}

// SaveNote pushes one field to the remote (when enabled) and raises its
// acknowledgement.
func (h *Handler) SaveNote(w http.ResponseWriter, r *http.Request) {
	id, field, ok := h.noteTarget(w, r)
	if !ok {
		return
	}
	out, err := h.notes.Save(r.Context(), id, field)
	if err != nil {
		h.noteError(w, err)
		return
	}
	resp := saveResponse{Acknowledged: true, Remote: out.Remote}
	if out.RemoteErr != nil {
		resp.RemoteError = out.RemoteErr.Error()
	}
	JSON(w, http.StatusOK, resp)
}

// GetAck reports which fields of a strategy are currently acknowledged.
func (h *Handler) GetAck(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resolveStrategy(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	JSON(w, http.StatusOK, ackResponse{
		Question:   h.notes.Acknowledged(id, domain.FieldQuestion),
		Reflection: h.notes.Acknowledged(id, domain.FieldReflection),
	})
}

func (h *Handler) noteTarget(w http.ResponseWriter, r *http.Request) (domain.StrategyID, domain.NoteField, bool) {
	id, ok := h.resolveStrategy(w, chi.URLParam(r, "id"))
	if !ok {
		return "", "", false
	}
	field, ok := domain.ParseNoteField(chi.URLParam(r, "field"))
	if !ok {
		Error(w, http.StatusBadRequest, "field must be question or reflection")
		return "", "", false
	}
	return id, field, true
}

func (h *Handler) noteError(w http.ResponseWriter, err error) {
	if errors.Is(err, notes.ErrNotHydrated) {
		Error(w, http.StatusServiceUnavailable, "notes are still loading")
		return
	}
	h.log.Error("note operation failed", "error", err)
	Error(w, http.StatusInternalServerError, "note operation failed")
}
