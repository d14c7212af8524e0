package web

import (
	"net/http"

	"choconati/internal/app"
	"choconati/internal/core"

	"github.com/shopspring/decimal"
)

func (h *Handler) listIngredients(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListIngredients(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) getIngredient(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetIngredient(r.Context(), idParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) createIngredient(w http.ResponseWriter, r *http.Request) {
	var draft core.IngredientDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := h.svc.AddIngredient(r.Context(), draft)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) updateIngredient(w http.ResponseWriter, r *http.Request) {
	var draft core.IngredientDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := h.svc.UpdateIngredient(r.Context(), idParam(r), draft)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CurrentStock decimal.NullDecimal `json:"currentStock"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if !body.CurrentStock.Valid {
		writeErrorResponse(w, r, errorResponse{
			Error: "invalid currentStock: is required",
			Code:  "VALIDATION_ERROR",
			Field: "currentStock",
		}, http.StatusBadRequest)
		return
	}
	res, err := h.svc.UpdateStock(r.Context(), app.UpdateStockRequest{
		IngredientID: idParam(r),
		CurrentStock: body.CurrentStock.Decimal,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) deleteIngredient(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveIngredient(r.Context(), idParam(r)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
