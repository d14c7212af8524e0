package web

import (
	"net/http"

	"choconati/internal/core"
)

// decodeDraft starts from the editor defaults so omitted fields keep them.
func decodeDraft(w http.ResponseWriter, r *http.Request) (core.RecipeDraft, bool) {
	draft := core.NewRecipeDraft()
	if !decodeJSON(w, r, draft) {
		return core.RecipeDraft{}, false
	}
	return *draft, true
}

func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListRecipes(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetRecipe(r.Context(), idParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) createRecipe(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	res, err := h.svc.SaveRecipe(r.Context(), draft)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) updateRecipe(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	res, err := h.svc.UpdateRecipe(r.Context(), idParam(r), draft)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) quoteRecipe(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	res, err := h.svc.QuoteDraft(r.Context(), draft)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveRecipe(r.Context(), idParam(r)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
