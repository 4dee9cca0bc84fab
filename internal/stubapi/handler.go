package stubapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	apperrors "corp-onboarding/internal/common/errors"
	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/models"
	"corp-onboarding/internal/onboarding/form"
	"corp-onboarding/internal/onboarding/format"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	msgMalformedNumber = "Corporation number must be exactly 9 digits"
	msgMalformedBody   = "Request body must be a JSON object"
	msgProfileCreated  = "Profile created"
)

type corporationResponse struct {
	CorporationNumber string `json:"corporationNumber"`
	Valid             bool   `json:"valid"`
	Message           string `json:"message,omitempty"`
}

type profileResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Handler serves the registry check and profile creation endpoints.
type Handler struct {
	registry *Registry
	store    ProfileStore
	events   EventPublisher
	logger   logger.Logger
	newID    func() string
}

func NewHandler(registry *Registry, store ProfileStore, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		registry: registry,
		store:    store,
		logger:   log.WithFields(map[string]interface{}{"component": "stub-api"}),
		newID:    uuid.NewString,
	}
}

// WithEvents publishes an event for every stored profile. Publishing failures are
// logged and do not fail the request.
func (h *Handler) WithEvents(events EventPublisher) *Handler {
	h.events = events
	return h
}

// Register mounts the backend endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/corporation-number/{number}", h.HandleCorporationNumber)
	r.Post("/profile-details", h.HandleCreateProfile)
	r.Get("/profile-details/{id}", h.HandleGetProfile)
}

// HandleCorporationNumber handles GET /corporation-number/{number}.
func (h *Handler) HandleCorporationNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	if !format.IsCompleteCorporation(number) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: msgMalformedNumber})
		return
	}

	if !h.registry.Contains(number) {
		writeJSON(w, http.StatusOK, corporationResponse{
			CorporationNumber: number,
			Valid:             false,
			Message:           apperrors.MsgInvalidCorporation,
		})
		return
	}

	writeJSON(w, http.StatusOK, corporationResponse{CorporationNumber: number, Valid: true})
}

// HandleCreateProfile handles POST /profile-details.
func (h *Handler) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var values models.ProfileFormValues
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: msgMalformedBody})
		return
	}

	if result := form.ValidateValues(values); !result.Valid {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: strings.Join(result.GetErrorMessages(), "; "),
		})
		return
	}

	values = values.Canonical()
	if !h.registry.Contains(values.CorporationNumber) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: apperrors.MsgInvalidCorporation})
		return
	}

	profile := StoredProfile{
		ID:                h.newID(),
		CreatedAt:         time.Now().UTC(),
		ProfileFormValues: values,
	}
	if err := h.store.Save(ctx, profile); err != nil {
		h.logger.Error("Failed to store profile", map[string]interface{}{
			"requestId": middleware.GetReqID(ctx),
			"error":     err.Error(),
		})
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: apperrors.UserMessage(err)})
		return
	}

	h.logger.Info("Profile stored", map[string]interface{}{
		"requestId":         middleware.GetReqID(ctx),
		"profileId":         profile.ID,
		"corporationNumber": values.CorporationNumber,
		"phone":             logger.MaskPhone(values.Phone),
	})
	if h.events != nil {
		if err := h.events.ProfileCreated(ctx, profile); err != nil {
			h.logger.Warn("Failed to publish profile event", map[string]interface{}{
				"requestId": middleware.GetReqID(ctx),
				"profileId": profile.ID,
				"error":     err.Error(),
			})
		}
	}
	writeJSON(w, http.StatusOK, profileResponse{ID: profile.ID, Message: msgProfileCreated})
}

// HandleGetProfile handles GET /profile-details/{id}.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: apperrors.UserMessage(err)})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Profile not found"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
