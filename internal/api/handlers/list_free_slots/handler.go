package list_free_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	listFreeSlots "github.com/onmarkov/polyclinic/internal/usecase/list_free_slots"
)

const (
	msgInvalidLineID     = "некорректный ID строки расписания"
	msgNotFound          = "строка расписания не найдена"
	msgSlotsNotGenerated = "талоны для этой строки расписания еще не созданы"
)

type Handler struct {
	useCase ListFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule-lines/{lineId}/free-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lineID, err := strconv.ParseInt(vars["lineId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /schedule-lines/{id}/free-slots - Invalid line ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLineID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listFreeSlots.Request{ScheduleLineID: lineID})
	if err != nil {
		switch {
		case errors.Is(err, listFreeSlots.ErrLineNotFound):
			h.logger.Warn("GET /schedule-lines/{id}/free-slots - Line not found: line_id=%d", lineID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, listFreeSlots.ErrSlotsNotGenerated):
			h.logger.Warn("GET /schedule-lines/{id}/free-slots - Slots not generated: line_id=%d", lineID)
			handlers.RespondConflict(w, msgSlotsNotGenerated)

		default:
			h.logger.Error("GET /schedule-lines/{id}/free-slots - Failed to list free slots: line_id=%d, error=%v", lineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
