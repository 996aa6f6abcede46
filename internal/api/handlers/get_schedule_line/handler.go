package get_schedule_line

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

// Handle GET /api/v1/schedule-lines/{lineId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lineID, err := strconv.ParseInt(vars["lineId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /schedule-lines/{id} - Invalid line ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLineID)
		return
	}

	resp, err := h.service.GetLine(r.Context(), lineID)
	if err != nil {
		if errors.Is(err, schedule.ErrLineNotFound) {
			h.logger.Warn("GET /schedule-lines/{id} - Line not found: line_id=%d", lineID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /schedule-lines/{id} - Failed to get line: line_id=%d, error=%v", lineID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(resp))
}
