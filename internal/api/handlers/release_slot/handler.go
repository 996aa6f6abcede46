package release_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	"github.com/onmarkov/polyclinic/internal/service/schedule"
)

const (
	msgInvalidSlotID = "некорректный ID талона"
	msgNotFound      = "талон не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}/release
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /slots/{id}/release - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.CancelBooking(r.Context(), slotID); err != nil {
		if errors.Is(err, schedule.ErrSlotNotFound) {
			h.logger.Warn("PATCH /slots/{id}/release - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("PATCH /slots/{id}/release - Failed to release slot: slot_id=%d, error=%v", slotID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /slots/{id}/release - Slot released successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
