package paddle

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/paddlebook/paddlebook/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the catalog. Reads are public; mutations sit
// behind the admin gate.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireAuth func(http.Handler) http.Handler,
	requireAdmin func(http.Handler) http.Handler,
) {
	r.Route("/paddles", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(requireAdmin)

			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	paddles, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, paddles)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	paddles, err := h.service.Search(r.Context(), query)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, paddles)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	paddle, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, paddle)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaddleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	paddle, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, paddle)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePaddleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	result, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	message := fmt.Sprintf(
		"paddle updated, synced %d player profile(s)", result.AffectedPlayers)
	core.OKMessage(w, result, message)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.SoftDelete(r.Context(), id); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, nil, "paddle deleted")
}
