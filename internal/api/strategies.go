package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/domain"
)

// ListStrategies returns every catalog strategy in display order.
func (h *Handler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, catalog.All())
}

// GetStrategy returns one strategy by exact or unique fuzzy id.
func (h *Handler) GetStrategy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resolveStrategy(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	JSON(w, http.StatusOK, catalog.MustLookup(id))
}

// GetReference returns the grounding text given to the assistant.
func (h *Handler) GetReference(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"reference": catalog.ReferenceText})
}

// resolveStrategy writes a 404 or 400 and returns false when raw does not
// name exactly one strategy.
func (h *Handler) resolveStrategy(w http.ResponseWriter, raw string) (domain.StrategyID, bool) {
	id, err := catalog.Resolve(raw)
	switch {
	case err == nil:
		return id, true
	case errors.Is(err, catalog.ErrAmbiguousStrategy):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusNotFound, err.Error())
	}
	return "", false
}
