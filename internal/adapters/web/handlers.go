package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"choconati/internal/app"

	"github.com/go-chi/chi/v5"
)

// Options configures NewHandler.
type Options struct {
	// AllowedOrigins is a comma-separated CORS allow list. Empty disables CORS.
	AllowedOrigins string
	// Metrics, when set, is served at /metrics.
	Metrics http.Handler
	Log     *slog.Logger
}

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc app.ApplicationService
	log *slog.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(opts.AllowedOrigins))

	r.Get("/api/health", h.health)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(LimitBody(maxBodyBytes))

		r.Get("/api/ingredients", h.listIngredients)
		r.Post("/api/ingredients", h.createIngredient)
		r.Get("/api/ingredients/{id}", h.getIngredient)
		r.Put("/api/ingredients/{id}", h.updateIngredient)
		r.Delete("/api/ingredients/{id}", h.deleteIngredient)
		r.Put("/api/ingredients/{id}/stock", h.updateStock)

		r.Get("/api/recipes", h.listRecipes)
		r.Post("/api/recipes", h.createRecipe)
		r.Post("/api/recipes/quote", h.quoteRecipe)
		r.Get("/api/recipes/{id}", h.getRecipe)
		r.Put("/api/recipes/{id}", h.updateRecipe)
		r.Delete("/api/recipes/{id}", h.deleteRecipe)

		r.Get("/api/dashboard", h.dashboard)
		r.Get("/api/snapshot", h.snapshot)
		r.Get("/api/snapshot/schema", h.snapshotSchema)
		r.Get("/api/reports/valuation.xlsx", h.valuationWorkbook)

		r.Post("/api/advisor", h.askAdvisor)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// idParam extracts the {id} URL parameter.
func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by LimitBody middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
