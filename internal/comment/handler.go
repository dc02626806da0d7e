package comment

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/paddlebook/paddlebook/internal/core"
	"github.com/paddlebook/paddlebook/internal/middleware"
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

// RegisterRoutes mounts the comment engine. Thread reads are public;
// writing requires a login and posting is throttled separately from
// the general limit. Static segments (user/, admin/) are registered
// alongside the {targetType} routes; chi matches them first.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireAuth func(http.Handler) http.Handler,
	requireAdmin func(http.Handler) http.Handler,
	postLimiter func(http.Handler) http.Handler,
) {
	r.Route("/comments", func(r chi.Router) {
		r.Get("/{targetType}/{targetID}", h.ListForTarget)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.With(postLimiter).Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/vote", h.Vote)
			r.Get("/user/my-comments", h.ListMine)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(requireAdmin)

			r.Get("/admin/all", h.AdminListRecent)
			r.Delete("/admin/{id}", h.AdminDelete)
		})
	})
}

func (h *Handler) ListForTarget(w http.ResponseWriter, r *http.Request) {
	targetType := chi.URLParam(r, "targetType")
	targetID := chi.URLParam(r, "targetID")

	tree, err := h.service.ListForTarget(r.Context(), targetType, targetID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, tree)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	authorID := middleware.GetUserID(r.Context())
	authorName := middleware.GetUsername(r.Context())

	comment, err := h.service.Create(r.Context(), authorID, authorName, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, comment)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	comment, err := h.service.Update(
		r.Context(), id, middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, comment)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.service.SoftDelete(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, nil, "comment deleted")
}

func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	comment, err := h.service.Vote(
		r.Context(), id, middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, comment)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListMine(
		r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, comments)
}

func (h *Handler) AdminListRecent(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.AdminListRecent(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, comments)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.service.AdminHardDelete(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, nil, fmt.Sprintf("removed %d comment(s)", removed))
}
