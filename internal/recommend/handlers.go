package recommend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetPair handles GET /pair?user_id=&city_id=&time_filter=
func (h *Handler) GetPair(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	cityID := r.URL.Query().Get("city_id")
	timeFilter := r.URL.Query().Get("time_filter")

	result, err := h.service.RecommendPair(r.Context(), userID, cityID, timeFilter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build recommendation")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetEvents handles GET /events?user_id=&scope=&category=&city_id=
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	cityID := r.URL.Query().Get("city_id")
	category := r.URL.Query().Get("category")
	scope := r.URL.Query().Get("scope")

	events, err := h.service.ListEvents(r.Context(), userID, cityID, category, scope)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// RecordInteraction handles POST /interactions
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var dto RecordInteractionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	interaction, err := h.service.RecordInteraction(r.Context(), dto.UserID, dto.EventID, dto.Action)
	if err != nil {
		if errors.Is(err, ErrInvalidAction) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record interaction")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, interaction)
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("user_id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "user_id is required")
		return 0, false
	}
	return userID, true
}
