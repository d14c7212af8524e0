package web

import (
	"bytes"
	"net/http"
	"strconv"

	"choconati/internal/core"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	top := 0
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErrorResponse(w, r, errorResponse{
				Error: "invalid top: must be a positive integer",
				Code:  "VALIDATION_ERROR",
				Field: "top",
			}, http.StatusBadRequest)
			return
		}
		top = n
	}
	res, err := h.svc.Dashboard(r.Context(), top)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Snapshot(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) snapshotSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.SnapshotSchema())
}

func (h *Handler) valuationWorkbook(w http.ResponseWriter, r *http.Request) {
	// Buffered so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.svc.ExportValuation(r.Context(), &buf); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="valuation.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func (h *Handler) askAdvisor(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	res, err := h.svc.AskAdvisor(r.Context(), body.Message)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
