package api

import (
	"net/http"
	"strings"

	"github.com/alexanderramin/polaris/internal/markup"
)

// Render converts assistant text into display lines.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	var body textBody
	if err := decode(r, &body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	JSON(w, http.StatusOK, map[string][]markup.Line{"lines": markup.Parse(body.Text)})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
