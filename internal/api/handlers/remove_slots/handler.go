package remove_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	removeSlots "github.com/onmarkov/polyclinic/internal/usecase/remove_slots"
)

const (
	msgInvalidLineID = "некорректный ID строки расписания"
	msgNotFound      = "строка расписания не найдена"
	msgBlocked       = "среди талонов есть забронированные, удаление невозможно"
)

type Handler struct {
	useCase RemoveSlotsUseCase
	logger  Logger
}

func NewHandler(useCase RemoveSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/schedule-lines/{lineId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lineID, err := strconv.ParseInt(vars["lineId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedule-lines/{id}/slots - Invalid line ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLineID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &removeSlots.Request{ScheduleLineID: lineID})
	if err != nil {
		if errors.Is(err, removeSlots.ErrLineNotFound) {
			h.logger.Warn("DELETE /schedule-lines/{id}/slots - Line not found: line_id=%d", lineID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /schedule-lines/{id}/slots - Failed to remove slots: line_id=%d, error=%v", lineID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.Blocked {
		h.logger.Warn("DELETE /schedule-lines/{id}/slots - Removal blocked by claimed slots: line_id=%d", lineID)
		handlers.RespondConflict(w, msgBlocked)
		return
	}

	h.logger.Info("DELETE /schedule-lines/{id}/slots - Removed %d slots: line_id=%d", result.Removed, lineID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
