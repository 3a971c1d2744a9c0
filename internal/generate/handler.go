// AngelaMos | 2026
// handler.go

package generate

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/contentai/internal/core"
	"github.com/angelamos/contentai/internal/middleware"
)

type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=8192"`
}

type GenerateResponse struct {
	Message   string `json:"message"`
	HistoryID string `json:"history_id"`
}

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
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/generate", h.Generate)
	})
}

// Generate acknowledges over HTTP once the stream finishes; the
// generated text itself travels over the caller's push channel.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	entry, err := h.service.Generate(r.Context(), userID, req.Prompt)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, GenerateResponse{
		Message:   "generation complete",
		HistoryID: entry.ID,
	})
}
