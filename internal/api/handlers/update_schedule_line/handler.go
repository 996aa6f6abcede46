package update_schedule_line

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onmarkov/polyclinic/internal/api/handlers"
	"github.com/onmarkov/polyclinic/internal/service/schedule"
)

const (
	msgInvalidLineID          = "некорректный ID строки расписания"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDateOrTime      = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgNotFound               = "строка расписания не найдена"
	msgLineImmutable          = "строка расписания с созданными талонами не редактируется, сначала удалите талоны"
	msgLineExists             = "на эту дату у врача уже есть строка расписания"
	msgSpecializationNotFound = "специализация не найдена"
	msgInvalidWindow          = "окончание приема должно быть позже начала"
	msgWindowOutOfHours       = "время приема должно быть в пределах рабочих часов поликлиники"
	msgDateInPast             = "дата приема не может быть в прошлом"
	msgPlanTooDense           = "талонов по времени больше, чем минут в окне приема"
	msgInvalidInput           = "некорректные данные строки расписания"
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

// Handle PUT /api/v1/schedule-lines/{lineId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lineID, err := strconv.ParseInt(vars["lineId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /schedule-lines/{id} - Invalid line ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLineID)
		return
	}

	var req UpdateScheduleLineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule-lines/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /schedule-lines/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	line, err := h.service.UpdateLine(r.Context(), lineID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrLineNotFound):
			h.logger.Warn("PUT /schedule-lines/{id} - Line not found: line_id=%d", lineID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrLineImmutable):
			h.logger.Warn("PUT /schedule-lines/{id} - Line is read-only: line_id=%d", lineID)
			handlers.RespondConflict(w, msgLineImmutable)

		case errors.Is(err, schedule.ErrLineExists):
			handlers.RespondConflict(w, msgLineExists)

		case errors.Is(err, schedule.ErrSpecializationNotFound):
			handlers.RespondNotFound(w, msgSpecializationNotFound)

		case errors.Is(err, schedule.ErrInvalidWindow):
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, schedule.ErrWindowOutOfHours):
			handlers.RespondBadRequest(w, msgWindowOutOfHours)

		case errors.Is(err, schedule.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, schedule.ErrPlanTooDense):
			handlers.RespondBadRequest(w, msgPlanTooDense)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /schedule-lines/{id} - Failed to update line: line_id=%d, error=%v", lineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule-lines/{id} - Line updated successfully: line_id=%d", lineID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(line))
}
