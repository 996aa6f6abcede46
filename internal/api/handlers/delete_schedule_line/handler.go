package delete_schedule_line

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	"github.com/onmarkov/polyclinic/internal/service/schedule"
)

const (
	msgInvalidLineID = "некорректный ID строки расписания"
	msgNotFound      = "строка расписания не найдена"
	msgHasSlots      = "у строки расписания есть талоны, сначала удалите их"
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

// Handle DELETE /api/v1/schedule-lines/{lineId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lineID, err := strconv.ParseInt(vars["lineId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedule-lines/{id} - Invalid line ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLineID)
		return
	}

	if err := h.service.DeleteLine(r.Context(), lineID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrLineNotFound):
			h.logger.Warn("DELETE /schedule-lines/{id} - Line not found: line_id=%d", lineID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrLineHasSlots):
			h.logger.Warn("DELETE /schedule-lines/{id} - Line has slots: line_id=%d", lineID)
			handlers.RespondConflict(w, msgHasSlots)

		default:
			h.logger.Error("DELETE /schedule-lines/{id} - Failed to delete line: line_id=%d, error=%v", lineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule-lines/{id} - Line deleted successfully: line_id=%d", lineID)
	handlers.RespondNoContent(w)
}
