package routes

import (
	"net/http"

	pkgdeps "binger-server/pkg/deps"
	pkghttpx "binger-server/pkg/httpx"
)

// Recommendations handles GET /recommendations?text=...: free text resolved
// through the similarity, mood, and trending strategies in that order. This
// path never returns an error status: upstream failures degrade to fewer
// (possibly zero) suggestions.
func Recommendations(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := d.Ranker.Suggest(r.Context(), r.URL.Query().Get("text"))
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"items": entries,
			"count": len(entries),
		})
	}
}
