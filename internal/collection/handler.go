// AngelaMos | 2026
// handler.go

package collection

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/contentai/internal/core"
	"github.com/angelamos/contentai/internal/middleware"
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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/collections", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{collectionID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)

			r.Post("/contents", h.CreateContent)
			r.Put("/contents/{contentID}", h.UpdateContent)
			r.Delete("/contents/{contentID}", h.DeleteContent)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	collections, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCollectionResponseList(collections))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.UnprocessableEntity(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Create(r.Context(), ownerID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToCollectionResponse(c))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	collectionID := chi.URLParam(r, "collectionID")

	c, contents, err := h.service.Get(r.Context(), collectionID, ownerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "collection")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCollectionDetailResponse(c, contents))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	collectionID := chi.URLParam(r, "collectionID")

	var req UpdateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Update(r.Context(), collectionID, ownerID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "collection")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCollectionResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	collectionID := chi.URLParam(r, "collectionID")

	if err := h.service.Delete(r.Context(), collectionID, ownerID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "collection")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "collection deleted"})
}

func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	collectionID := chi.URLParam(r, "collectionID")

	var req CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.CreateContent(r.Context(), collectionID, ownerID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "collection")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToContentResponse(c))
}

func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	collectionID := chi.URLParam(r, "collectionID")
	contentID := chi.URLParam(r, "contentID")

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.UpdateContent(
		r.Context(), collectionID, contentID, ownerID, req,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "content")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContentResponse(c))
}

func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	collectionID := chi.URLParam(r, "collectionID")
	contentID := chi.URLParam(r, "contentID")

	err := h.service.DeleteContent(
		r.Context(), collectionID, contentID, ownerID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "content")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "content deleted"})
}
